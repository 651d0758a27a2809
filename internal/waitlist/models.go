package waitlist

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a waitlist entry
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusWaiting   Status = "WAITING"
	StatusSeated    Status = "SEATED"
	StatusCancelled Status = "CANCELLED"
	StatusRejected  Status = "REJECTED"
)

// IsValid checks if the status is one of the known lifecycle states
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusWaiting, StatusSeated, StatusCancelled, StatusRejected:
		return true
	default:
		return false
	}
}

// IsActive returns true for statuses that occupy the one-active-entry-per-venue
// slot of a user
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusWaiting
}

// IsTerminal returns true if no further transition exists out of the status
func (s Status) IsTerminal() bool {
	return s == StatusSeated || s == StatusCancelled || s == StatusRejected
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	validTransitions := map[Status][]Status{
		StatusPending:   {StatusWaiting, StatusRejected, StatusCancelled},
		StatusWaiting:   {StatusSeated, StatusCancelled},
		StatusSeated:    {}, // Terminal state
		StatusCancelled: {}, // Terminal state
		StatusRejected:  {}, // Terminal state
	}

	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// ActiveStatuses are the statuses counted for the duplicate-join check
var ActiveStatuses = []Status{StatusPending, StatusWaiting}

// Entry represents one customer's request to join one venue's queue.
// Position is a 1-based rank among the venue's WAITING entries and is unset in
// every other status. EstimatedWait is minutes until seating and is only
// meaningful while the entry is PENDING or WAITING.
type Entry struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID        uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	VenueID       uuid.UUID `json:"venue_id" gorm:"type:uuid;not null;index:idx_entries_venue_status"`
	Status        Status    `json:"status" gorm:"type:varchar(20);not null;index:idx_entries_venue_status"`
	Position      *int      `json:"position,omitempty"`
	EstimatedWait *int      `json:"estimated_wait_time,omitempty"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Entry) TableName() string {
	return "waitlist_entries"
}

// VenueInfo is the read-only venue projection the engine consumes.
// AvgServiceTime is minutes per party; zero means the venue never configured it.
type VenueInfo struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	AvgServiceTime int
}

// VenueDirectory is the venue lookup the engine depends on (implemented by the
// venues package, kept as an interface to avoid an import cycle)
type VenueDirectory interface {
	GetVenue(ctx context.Context, venueID uuid.UUID) (*VenueInfo, error)
}

// QueueNotification is the message handed to the Notifier on every status or
// position change
type QueueNotification struct {
	UserID  uuid.UUID `json:"user_id"`
	VenueID uuid.UUID `json:"venue_id"`
	EntryID uuid.UUID `json:"entry_id"`
	Status  Status    `json:"status"`
	Message string    `json:"message"`
}

// Notifier is a fire-and-forget event sink. Implementations must never fail the
// triggering mutation; delivery errors are their own problem.
type Notifier interface {
	Notify(ctx context.Context, n QueueNotification)
}

// Configuration constants

const (
	// DefaultServiceTime is the per-party estimate (minutes) used when a venue
	// has no avg_service_time configured
	DefaultServiceTime = 10
)
