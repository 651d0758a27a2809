package venues

import (
	"context"
	"errors"

	"waitly/internal/waitlist"

	"github.com/google/uuid"
)

// DirectoryAdapter implements the waitlist.VenueDirectory interface on top of
// the venue service, so the queue engine never sees venue CRUD concerns
type DirectoryAdapter struct {
	service Service
}

// NewDirectoryAdapter creates a venue directory for the queue engine
func NewDirectoryAdapter(service Service) *DirectoryAdapter {
	return &DirectoryAdapter{service: service}
}

// GetVenue implements waitlist.VenueDirectory
func (a *DirectoryAdapter) GetVenue(ctx context.Context, venueID uuid.UUID) (*waitlist.VenueInfo, error) {
	venue, err := a.service.Get(ctx, venueID)
	if err != nil {
		if errors.Is(err, ErrVenueNotFound) {
			return nil, waitlist.ErrVenueNotFound
		}
		return nil, err
	}
	return &waitlist.VenueInfo{
		ID:             venue.ID,
		OwnerID:        venue.OwnerID,
		AvgServiceTime: venue.AvgServiceTime,
	}, nil
}
