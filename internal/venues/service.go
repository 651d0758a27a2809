package venues

import (
	"context"
	"errors"
	"fmt"
	"log"

	"waitly/internal/shared/constants"
	"waitly/pkg/cache"

	"github.com/google/uuid"
)

var ErrNotOwner = errors.New("venue belongs to another staff member")

// Single-venue lookups back the waitlist engine on every operation, so these
// are worth keeping warm.
func venueCacheKey(id uuid.UUID) string {
	return constants.CACHE_KEY_VENUE_DETAIL + id.String()
}

// Service interface defines the contract for venue operations
type Service interface {
	Create(ctx context.Context, ownerID uuid.UUID, req *CreateVenueRequest) (*Venue, error)
	Get(ctx context.Context, id uuid.UUID) (*Venue, error)
	List(ctx context.Context) ([]Venue, error)
	ListMine(ctx context.Context, ownerID uuid.UUID) ([]Venue, error)
	Update(ctx context.Context, id, staffID uuid.UUID, req *UpdateVenueRequest) (*Venue, error)
	Delete(ctx context.Context, id, staffID uuid.UUID) error
}

type service struct {
	repo  Repository
	cache cache.Service
}

// NewService creates a new venue service. The cache may be nil, in which case
// every lookup goes to the database.
func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{
		repo:  repo,
		cache: cacheService,
	}
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, req *CreateVenueRequest) (*Venue, error) {
	venue := &Venue{
		Name:           req.Name,
		Location:       req.Location,
		MaxCapacity:    req.MaxCapacity,
		AvgServiceTime: req.AvgServiceTime,
		ImageURL:       req.ImageURL,
		OwnerID:        ownerID,
	}
	if err := s.repo.Create(ctx, venue); err != nil {
		return nil, fmt.Errorf("failed to create venue: %w", err)
	}
	log.Printf("Venue %s (%s) created by staff %s", venue.ID, venue.Name, ownerID)
	return venue, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Venue, error) {
	if s.cache == nil {
		return s.repo.GetByID(ctx, id)
	}

	var venue Venue
	err := s.cache.GetOrSet(ctx, venueCacheKey(id), constants.TTL_VENUE_DETAIL, func() (interface{}, error) {
		return s.repo.GetByID(ctx, id)
	}, &venue)
	if err != nil {
		if errors.Is(err, ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &venue, nil
}

func (s *service) List(ctx context.Context) ([]Venue, error) {
	return s.repo.List(ctx)
}

func (s *service) ListMine(ctx context.Context, ownerID uuid.UUID) ([]Venue, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *service) Update(ctx context.Context, id, staffID uuid.UUID, req *UpdateVenueRequest) (*Venue, error) {
	venue, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if venue.OwnerID != staffID {
		return nil, ErrNotOwner
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.MaxCapacity != nil {
		updates["max_capacity"] = *req.MaxCapacity
	}
	if req.AvgServiceTime != nil {
		updates["avg_service_time"] = *req.AvgServiceTime
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("failed to update venue: %w", err)
		}
		s.invalidate(ctx, id)
	}

	return s.repo.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id, staffID uuid.UUID) error {
	venue, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if venue.OwnerID != staffID {
		return ErrNotOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete venue: %w", err)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *service) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, venueCacheKey(id)); err != nil {
		log.Printf("Failed to invalidate venue cache for %s: %v", id, err)
	}
}
