package waitlist

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
)

// Service interface defines the contract for queue engine operations
type Service interface {
	// Customer operations
	Join(ctx context.Context, venueID, userID uuid.UUID) (*Entry, error)
	Cancel(ctx context.Context, entryID, userID uuid.UUID) (*Entry, error)

	// Staff operations
	Approve(ctx context.Context, entryID, staffID uuid.UUID) (*Entry, error)
	Reject(ctx context.Context, entryID, staffID uuid.UUID) (*Entry, error)
	Seat(ctx context.Context, entryID, staffID uuid.UUID) (*Entry, error)

	// Read operations
	VenueQueue(ctx context.Context, venueID, staffID uuid.UUID) ([]Entry, error)
	UserHistory(ctx context.Context, userID uuid.UUID) ([]Entry, error)
}

// ServiceConfig contains configuration for the queue engine
type ServiceConfig struct {
	// DefaultServiceTime is the fallback minutes-per-party when a venue has no
	// avg_service_time set
	DefaultServiceTime int
}

// DefaultServiceConfig returns default engine configuration
func DefaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		DefaultServiceTime: DefaultServiceTime,
	}
}

// service implements the Service interface
type service struct {
	repo     Repository
	venues   VenueDirectory
	notifier Notifier
	config   *ServiceConfig
}

// NewService creates a new queue engine
func NewService(repo Repository, venues VenueDirectory, notifier Notifier, config *ServiceConfig) Service {
	if config == nil {
		config = DefaultServiceConfig()
	}
	return &service{
		repo:     repo,
		venues:   venues,
		notifier: notifier,
		config:   config,
	}
}

// positionChange records a renumbering move for post-commit notification
type positionChange struct {
	entry       Entry
	newPosition int
}

// Join creates a PENDING entry for the user at the venue. The duplicate-active
// check and the insert run under the venue lock so two racing joins cannot both
// slip through.
func (s *service) Join(ctx context.Context, venueID, userID uuid.UUID) (*Entry, error) {
	if _, err := s.venues.GetVenue(ctx, venueID); err != nil {
		return nil, err
	}

	entry := &Entry{
		UserID:  userID,
		VenueID: venueID,
		Status:  StatusPending,
	}

	err := s.repo.WithVenueQueue(ctx, venueID, func(q Queue) error {
		active, err := q.HasActive(userID)
		if err != nil {
			return s.storage(err)
		}
		if active {
			return ErrAlreadyQueued
		}
		if err := q.Create(entry); err != nil {
			return s.storage(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("User %s joined waitlist for venue %s (pending approval)", userID, venueID)
	return entry, nil
}

// Approve moves a PENDING entry to WAITING at the tail of the venue's queue
// and assigns its initial wait estimate.
func (s *service) Approve(ctx context.Context, entryID, staffID uuid.UUID) (*Entry, error) {
	entry, venue, err := s.entryForStaff(ctx, entryID, staffID)
	if err != nil {
		return nil, err
	}

	serviceTime := s.serviceTime(venue)
	var approved *Entry
	err = s.repo.WithVenueQueue(ctx, entry.VenueID, func(q Queue) error {
		current, err := q.Get(entryID)
		if err != nil {
			return err
		}
		if current.Status != StatusPending {
			return ErrInvalidTransition
		}

		waiting, err := q.CountWaiting()
		if err != nil {
			return s.storage(err)
		}

		position := waiting + 1
		wait := (position - 1) * serviceTime
		current.Status = StatusWaiting
		current.Position = &position
		current.EstimatedWait = &wait

		if err := q.Save(current); err != nil {
			return s.storage(err)
		}
		approved = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, approved, fmt.Sprintf("You are on the waitlist at position %d (about %d min wait)",
		*approved.Position, *approved.EstimatedWait))

	log.Printf("Entry %s approved at position %d for venue %s", entryID, *approved.Position, approved.VenueID)
	return approved, nil
}

// Reject declines a PENDING entry. A pending entry never held a position, so
// no renumbering is needed.
func (s *service) Reject(ctx context.Context, entryID, staffID uuid.UUID) (*Entry, error) {
	entry, _, err := s.entryForStaff(ctx, entryID, staffID)
	if err != nil {
		return nil, err
	}

	var rejected *Entry
	err = s.repo.WithVenueQueue(ctx, entry.VenueID, func(q Queue) error {
		current, err := q.Get(entryID)
		if err != nil {
			return err
		}
		if current.Status != StatusPending {
			return ErrInvalidTransition
		}

		current.Status = StatusRejected
		current.Position = nil
		current.EstimatedWait = nil

		if err := q.Save(current); err != nil {
			return s.storage(err)
		}
		rejected = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, rejected, "Your waitlist request was declined")
	return rejected, nil
}

// Cancel lets the owning customer withdraw a PENDING or WAITING entry. Leaving
// the waiting set renumbers the rest of the venue's queue.
func (s *service) Cancel(ctx context.Context, entryID, userID uuid.UUID) (*Entry, error) {
	entry, err := s.repo.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		return nil, ErrNotEntryOwner
	}

	venue, err := s.venues.GetVenue(ctx, entry.VenueID)
	if err != nil {
		return nil, err
	}

	serviceTime := s.serviceTime(venue)
	var cancelled *Entry
	var moves []positionChange
	err = s.repo.WithVenueQueue(ctx, entry.VenueID, func(q Queue) error {
		current, err := q.Get(entryID)
		if err != nil {
			return err
		}
		if !current.Status.IsActive() {
			return ErrInvalidTransition
		}
		wasWaiting := current.Status == StatusWaiting

		current.Status = StatusCancelled
		current.Position = nil
		current.EstimatedWait = nil
		if err := q.Save(current); err != nil {
			return s.storage(err)
		}
		cancelled = current

		if wasWaiting {
			moves, err = s.renumber(q, serviceTime)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, cancelled, "Your waitlist entry was cancelled")
	s.notifyMoves(ctx, moves)

	log.Printf("Entry %s cancelled for venue %s (%d entries renumbered)", entryID, cancelled.VenueID, len(moves))
	return cancelled, nil
}

// Seat marks a WAITING entry as served and renumbers the remaining queue.
func (s *service) Seat(ctx context.Context, entryID, staffID uuid.UUID) (*Entry, error) {
	entry, venue, err := s.entryForStaff(ctx, entryID, staffID)
	if err != nil {
		return nil, err
	}

	serviceTime := s.serviceTime(venue)
	var seated *Entry
	var moves []positionChange
	err = s.repo.WithVenueQueue(ctx, entry.VenueID, func(q Queue) error {
		current, err := q.Get(entryID)
		if err != nil {
			return err
		}
		if current.Status != StatusWaiting {
			return ErrInvalidTransition
		}

		current.Status = StatusSeated
		current.Position = nil
		current.EstimatedWait = nil
		if err := q.Save(current); err != nil {
			return s.storage(err)
		}
		seated = current

		moves, err = s.renumber(q, serviceTime)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, seated, "Your table is ready, you have been seated")
	s.notifyMoves(ctx, moves)

	log.Printf("Entry %s seated for venue %s (%d entries renumbered)", entryID, seated.VenueID, len(moves))
	return seated, nil
}

// VenueQueue returns every entry of a venue for its owning staff member.
func (s *service) VenueQueue(ctx context.Context, venueID, staffID uuid.UUID) ([]Entry, error) {
	venue, err := s.venues.GetVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}
	if venue.OwnerID != staffID {
		return nil, ErrNotVenueOwner
	}
	return s.repo.ListVenueEntries(ctx, venueID)
}

// UserHistory returns a customer's entries across venues, newest first.
func (s *service) UserHistory(ctx context.Context, userID uuid.UUID) ([]Entry, error) {
	return s.repo.ListUserEntries(ctx, userID)
}

// renumber reassigns contiguous 1..N positions and cumulative wait estimates to
// the venue's WAITING entries. Entries are visited in their current order
// (position, then created_at), so relative order never changes. Running the
// pass twice without an intervening mutation writes nothing and reports no
// moves. This is the only place positions and estimates are recomputed
// together; approval appends to the tail directly.
func (s *service) renumber(q Queue, serviceTime int) ([]positionChange, error) {
	entries, err := q.ListWaiting()
	if err != nil {
		return nil, s.storage(err)
	}

	var moves []positionChange
	running := 0
	for i := range entries {
		position := i + 1
		wait := running

		positionMoved := entries[i].Position == nil || *entries[i].Position != position
		waitMoved := entries[i].EstimatedWait == nil || *entries[i].EstimatedWait != wait

		if positionMoved || waitMoved {
			entries[i].Position = &position
			entries[i].EstimatedWait = &wait
			if err := q.Save(&entries[i]); err != nil {
				return nil, s.storage(err)
			}
		}
		if positionMoved {
			moves = append(moves, positionChange{entry: entries[i], newPosition: position})
		}

		running += serviceTime
	}

	return moves, nil
}

// entryForStaff loads an entry and checks that the acting staff member owns its
// venue. Used by every staff operation.
func (s *service) entryForStaff(ctx context.Context, entryID, staffID uuid.UUID) (*Entry, *VenueInfo, error) {
	entry, err := s.repo.GetEntry(ctx, entryID)
	if err != nil {
		return nil, nil, err
	}

	venue, err := s.venues.GetVenue(ctx, entry.VenueID)
	if err != nil {
		return nil, nil, err
	}
	if venue.OwnerID != staffID {
		return nil, nil, ErrNotVenueOwner
	}
	return entry, venue, nil
}

// serviceTime resolves the per-slot wait increment for a venue
func (s *service) serviceTime(venue *VenueInfo) int {
	if venue.AvgServiceTime > 0 {
		return venue.AvgServiceTime
	}
	return s.config.DefaultServiceTime
}

// storage wraps persistence failures so store-specific detail never leaks to
// callers
func (s *service) storage(err error) error {
	return fmt.Errorf("%w: %v", ErrStorage, err)
}

// notify emits a status-change event. Fire-and-forget: the mutation already
// committed, a delivery failure must not undo it.
func (s *service) notify(ctx context.Context, entry *Entry, message string) {
	if s.notifier == nil || entry == nil {
		return
	}
	s.notifier.Notify(ctx, QueueNotification{
		UserID:  entry.UserID,
		VenueID: entry.VenueID,
		EntryID: entry.ID,
		Status:  entry.Status,
		Message: message,
	})
}

func (s *service) notifyMoves(ctx context.Context, moves []positionChange) {
	for _, move := range moves {
		s.notify(ctx, &move.entry, fmt.Sprintf("You moved up to position %d", move.newPosition))
	}
}
