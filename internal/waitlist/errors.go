package waitlist

import "errors"

// Typed error kinds reported by the queue engine. Controllers map these to
// HTTP statuses; callers decide whether to retry.
var (
	// ErrVenueNotFound - the target venue does not exist
	ErrVenueNotFound = errors.New("venue not found")

	// ErrEntryNotFound - no waitlist entry with the given id
	ErrEntryNotFound = errors.New("waitlist entry not found")

	// ErrAlreadyQueued - the user already holds a pending or waiting entry for
	// this venue
	ErrAlreadyQueued = errors.New("user already has an active waitlist entry for this venue")

	// ErrNotVenueOwner - the acting staff member does not own the entry's venue
	ErrNotVenueOwner = errors.New("staff member does not own this venue")

	// ErrNotEntryOwner - the entry belongs to a different customer
	ErrNotEntryOwner = errors.New("waitlist entry belongs to another user")

	// ErrInvalidTransition - the entry's current status does not allow the
	// requested operation
	ErrInvalidTransition = errors.New("entry status does not allow this transition")

	// ErrStorage - the persistence layer failed mid-operation; the whole
	// mutation was rolled back and may be retried
	ErrStorage = errors.New("storage failure")
)
