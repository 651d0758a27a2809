package waitlist

import "github.com/google/uuid"

// JoinRequest is the payload for a customer joining a venue's waitlist
type JoinRequest struct {
	VenueID uuid.UUID `json:"venue_id" binding:"required"`
}
