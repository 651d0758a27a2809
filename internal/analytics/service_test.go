package analytics

import (
	"context"
	"testing"
	"time"

	"waitly/internal/waitlist"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	countUsersByRoleFn     func(ctx context.Context) (map[string]int, error)
	countVenuesFn          func(ctx context.Context) (int, error)
	countActiveQueuesFn    func(ctx context.Context) (int, error)
	countEntriesByStatusFn func(ctx context.Context) (map[string]int, error)
	venueQueueCountsFn     func(ctx context.Context, venueID uuid.UUID, since time.Time) (*venueCounts, error)
}

func (m *mockRepository) CountUsersByRole(ctx context.Context) (map[string]int, error) {
	return m.countUsersByRoleFn(ctx)
}

func (m *mockRepository) CountVenues(ctx context.Context) (int, error) {
	return m.countVenuesFn(ctx)
}

func (m *mockRepository) CountActiveQueues(ctx context.Context) (int, error) {
	return m.countActiveQueuesFn(ctx)
}

func (m *mockRepository) CountEntriesByStatus(ctx context.Context) (map[string]int, error) {
	return m.countEntriesByStatusFn(ctx)
}

func (m *mockRepository) VenueQueueCounts(ctx context.Context, venueID uuid.UUID, since time.Time) (*venueCounts, error) {
	return m.venueQueueCountsFn(ctx, venueID, since)
}

func TestGetDashboardAnalytics_AggregatesCounts(t *testing.T) {
	repo := &mockRepository{
		countUsersByRoleFn: func(ctx context.Context) (map[string]int, error) {
			return map[string]int{"ADMIN": 1, "STAFF": 2, "CUSTOMER": 7}, nil
		},
		countVenuesFn: func(ctx context.Context) (int, error) {
			return 5, nil
		},
		countActiveQueuesFn: func(ctx context.Context) (int, error) {
			return 3, nil
		},
		countEntriesByStatusFn: func(ctx context.Context) (map[string]int, error) {
			return map[string]int{"WAITING": 4, "SEATED": 6, "CANCELLED": 2}, nil
		},
	}

	svc := NewService(repo, nil)

	dashboard, err := svc.GetDashboardAnalytics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10, dashboard.Users.Total)
	assert.Equal(t, 2, dashboard.Users.ByRole["STAFF"])
	assert.Equal(t, 5, dashboard.Venues.Total)
	assert.Equal(t, 3, dashboard.Venues.ActiveQueues)
	assert.Equal(t, 12, dashboard.Waitlist.TotalEntries)
	assert.Equal(t, 4, dashboard.Waitlist.CurrentlyWaiting)
	assert.False(t, dashboard.GeneratedAt.IsZero())
}

func TestGetVenueQueueSummary_RejectsNonOwner(t *testing.T) {
	venueID := uuid.New()
	ownerID := uuid.New()

	repo := &mockRepository{
		venueQueueCountsFn: func(ctx context.Context, id uuid.UUID, since time.Time) (*venueCounts, error) {
			return &venueCounts{OwnerID: ownerID}, nil
		},
	}

	svc := NewService(repo, nil)

	_, err := svc.GetVenueQueueSummary(context.Background(), venueID, uuid.New())
	assert.ErrorIs(t, err, ErrNotVenueOwner)
}

func TestGetVenueQueueSummary_BacklogUsesVenueServiceTime(t *testing.T) {
	venueID := uuid.New()
	staffID := uuid.New()

	repo := &mockRepository{
		venueQueueCountsFn: func(ctx context.Context, id uuid.UUID, since time.Time) (*venueCounts, error) {
			return &venueCounts{
				OwnerID:        staffID,
				AvgServiceTime: 15,
				Pending:        2,
				Waiting:        3,
				Seated:         6,
			}, nil
		},
	}

	svc := NewService(repo, nil)

	summary, err := svc.GetVenueQueueSummary(context.Background(), venueID, staffID)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.PendingRequests)
	assert.Equal(t, 3, summary.WaitingParties)
	assert.Equal(t, 6, summary.SeatedToday)
	assert.Equal(t, 45, summary.EstimatedBacklog)
	assert.Equal(t, float64(15), summary.AvgServiceTime)
}

func TestGetVenueQueueSummary_FallsBackToDefaultServiceTime(t *testing.T) {
	staffID := uuid.New()

	repo := &mockRepository{
		venueQueueCountsFn: func(ctx context.Context, id uuid.UUID, since time.Time) (*venueCounts, error) {
			return &venueCounts{OwnerID: staffID, Waiting: 2}, nil
		},
	}

	svc := NewService(repo, nil)

	summary, err := svc.GetVenueQueueSummary(context.Background(), uuid.New(), staffID)
	require.NoError(t, err)

	assert.Equal(t, 2*waitlist.DefaultServiceTime, summary.EstimatedBacklog)
	assert.Equal(t, float64(waitlist.DefaultServiceTime), summary.AvgServiceTime)
}
