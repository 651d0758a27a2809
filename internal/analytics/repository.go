package analytics

import (
	"context"
	"errors"
	"time"

	"waitly/internal/waitlist"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrVenueNotFound = errors.New("venue not found")

// Repository defines the read-only aggregation queries behind the analytics
// endpoints.
type Repository interface {
	CountUsersByRole(ctx context.Context) (map[string]int, error)
	CountVenues(ctx context.Context) (int, error)
	CountActiveQueues(ctx context.Context) (int, error)
	CountEntriesByStatus(ctx context.Context) (map[string]int, error)
	VenueQueueCounts(ctx context.Context, venueID uuid.UUID, since time.Time) (*venueCounts, error)
}

type venueCounts struct {
	OwnerID        uuid.UUID
	AvgServiceTime int
	Pending        int
	Waiting        int
	Seated         int
}

type statusCount struct {
	Status string
	Count  int
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new analytics repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountUsersByRole(ctx context.Context) (map[string]int, error) {
	var rows []statusCount
	err := r.db.WithContext(ctx).
		Table("users").
		Select("role AS status, COUNT(*) AS count").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	byRole := make(map[string]int, len(rows))
	for _, row := range rows {
		byRole[row.Status] = row.Count
	}
	return byRole, nil
}

func (r *repository) CountVenues(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("venues").Count(&count).Error
	return int(count), err
}

func (r *repository) CountActiveQueues(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("waitlist_entries").
		Where("status IN ?", []waitlist.Status{waitlist.StatusPending, waitlist.StatusWaiting}).
		Distinct("venue_id").
		Count(&count).Error
	return int(count), err
}

func (r *repository) CountEntriesByStatus(ctx context.Context) (map[string]int, error) {
	var rows []statusCount
	err := r.db.WithContext(ctx).
		Table("waitlist_entries").
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	byStatus := make(map[string]int, len(rows))
	for _, row := range rows {
		byStatus[row.Status] = row.Count
	}
	return byStatus, nil
}

func (r *repository) VenueQueueCounts(ctx context.Context, venueID uuid.UUID, since time.Time) (*venueCounts, error) {
	var venue struct {
		OwnerID        uuid.UUID
		AvgServiceTime int
	}
	err := r.db.WithContext(ctx).
		Table("venues").
		Select("owner_id, avg_service_time").
		Where("id = ?", venueID).
		Take(&venue).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}

	counts := &venueCounts{
		OwnerID:        venue.OwnerID,
		AvgServiceTime: venue.AvgServiceTime,
	}

	count := func(query *gorm.DB) (int, error) {
		var n int64
		err := query.Count(&n).Error
		return int(n), err
	}

	entries := func() *gorm.DB {
		return r.db.WithContext(ctx).Table("waitlist_entries").Where("venue_id = ?", venueID)
	}

	if counts.Pending, err = count(entries().Where("status = ?", waitlist.StatusPending)); err != nil {
		return nil, err
	}
	if counts.Waiting, err = count(entries().Where("status = ?", waitlist.StatusWaiting)); err != nil {
		return nil, err
	}
	if counts.Seated, err = count(entries().Where("status = ? AND updated_at >= ?", waitlist.StatusSeated, since)); err != nil {
		return nil, err
	}

	return counts, nil
}
