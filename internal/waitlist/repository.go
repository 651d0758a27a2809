package waitlist

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Queue is the transactional view of a single venue's waitlist, held under that
// venue's row lock. Everything done through a Queue commits or rolls back as
// one unit.
type Queue interface {
	Create(entry *Entry) error
	Get(id uuid.UUID) (*Entry, error)
	Save(entry *Entry) error
	HasActive(userID uuid.UUID) (bool, error)
	CountWaiting() (int, error)
	// ListWaiting returns the venue's WAITING entries ordered by current
	// position ascending, created_at ascending as the tie-break
	ListWaiting() ([]Entry, error)
}

// Repository interface defines the contract for waitlist persistence
type Repository interface {
	// WithVenueQueue runs fn inside a transaction holding an exclusive lock on
	// the venue row, serializing concurrent mutations of the same venue's
	// queue. Mutations of other venues proceed in parallel.
	WithVenueQueue(ctx context.Context, venueID uuid.UUID, fn func(q Queue) error) error

	GetEntry(ctx context.Context, id uuid.UUID) (*Entry, error)
	ListVenueEntries(ctx context.Context, venueID uuid.UUID, statuses ...Status) ([]Entry, error)
	ListUserEntries(ctx context.Context, userID uuid.UUID) ([]Entry, error)
}

// repository implements Repository on top of GORM/PostgreSQL
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new waitlist repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithVenueQueue(ctx context.Context, venueID uuid.UUID, fn func(q Queue) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the venue row to serialize same-venue queue mutations
		var locked struct{ ID uuid.UUID }
		err := tx.Table("venues").
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ?", venueID).
			Take(&locked).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVenueNotFound
			}
			return err
		}

		return fn(&txQueue{tx: tx, venueID: venueID})
	})
}

func (r *repository) GetEntry(ctx context.Context, id uuid.UUID) (*Entry, error) {
	var entry Entry
	err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *repository) ListVenueEntries(ctx context.Context, venueID uuid.UUID, statuses ...Status) ([]Entry, error) {
	var entries []Entry
	query := r.db.WithContext(ctx).Where("venue_id = ?", venueID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	err := query.Order("position ASC NULLS LAST, created_at ASC").Find(&entries).Error
	return entries, err
}

func (r *repository) ListUserEntries(ctx context.Context, userID uuid.UUID) ([]Entry, error) {
	var entries []Entry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

// txQueue implements Queue inside an open venue-locked transaction
type txQueue struct {
	tx      *gorm.DB
	venueID uuid.UUID
}

func (q *txQueue) Create(entry *Entry) error {
	return q.tx.Create(entry).Error
}

func (q *txQueue) Get(id uuid.UUID) (*Entry, error) {
	var entry Entry
	err := q.tx.First(&entry, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (q *txQueue) Save(entry *Entry) error {
	// Select forces position/estimated_wait writes even when cleared to NULL
	return q.tx.Model(entry).
		Select("status", "position", "estimated_wait", "updated_at").
		Updates(map[string]interface{}{
			"status":         entry.Status,
			"position":       entry.Position,
			"estimated_wait": entry.EstimatedWait,
		}).Error
}

func (q *txQueue) HasActive(userID uuid.UUID) (bool, error) {
	var count int64
	err := q.tx.Model(&Entry{}).
		Where("user_id = ? AND venue_id = ? AND status IN ?", userID, q.venueID, ActiveStatuses).
		Count(&count).Error
	return count > 0, err
}

func (q *txQueue) CountWaiting() (int, error) {
	var count int64
	err := q.tx.Model(&Entry{}).
		Where("venue_id = ? AND status = ?", q.venueID, StatusWaiting).
		Count(&count).Error
	return int(count), err
}

func (q *txQueue) ListWaiting() ([]Entry, error) {
	var entries []Entry
	err := q.tx.
		Where("venue_id = ? AND status = ?", q.venueID, StatusWaiting).
		Order("position ASC, created_at ASC").
		Find(&entries).Error
	return entries, err
}
