package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"waitly/internal/shared/constants"
	"waitly/internal/waitlist"
	"waitly/pkg/cache"

	"github.com/google/uuid"
)

var ErrNotVenueOwner = errors.New("venue belongs to another staff member")

// Service defines the analytics service interface
type Service interface {
	GetDashboardAnalytics(ctx context.Context) (*DashboardAnalytics, error)
	GetVenueQueueSummary(ctx context.Context, venueID, staffID uuid.UUID) (*VenueQueueSummary, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

// NewService creates a new analytics service instance. The cache may be nil.
func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{
		repo:         repo,
		cacheService: cacheService,
	}
}

func (s *service) GetDashboardAnalytics(ctx context.Context) (*DashboardAnalytics, error) {
	if s.cacheService == nil {
		return s.buildDashboard(ctx)
	}

	var dashboard DashboardAnalytics
	err := s.cacheService.GetOrSet(ctx, constants.CACHE_KEY_ANALYTICS_DASHBOARD, constants.TTL_ANALYTICS_DASHBOARD,
		func() (interface{}, error) {
			return s.buildDashboard(ctx)
		}, &dashboard)
	if err != nil {
		return nil, err
	}
	return &dashboard, nil
}

func (s *service) buildDashboard(ctx context.Context) (*DashboardAnalytics, error) {
	byRole, err := s.repo.CountUsersByRole(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	totalUsers := 0
	for _, n := range byRole {
		totalUsers += n
	}

	totalVenues, err := s.repo.CountVenues(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count venues: %w", err)
	}

	activeQueues, err := s.repo.CountActiveQueues(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count active queues: %w", err)
	}

	byStatus, err := s.repo.CountEntriesByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count waitlist entries: %w", err)
	}
	totalEntries := 0
	for _, n := range byStatus {
		totalEntries += n
	}

	return &DashboardAnalytics{
		Users: UserMetrics{
			Total:  totalUsers,
			ByRole: byRole,
		},
		Venues: VenueMetrics{
			Total:        totalVenues,
			ActiveQueues: activeQueues,
		},
		Waitlist: WaitlistMetrics{
			TotalEntries:     totalEntries,
			ByStatus:         byStatus,
			CurrentlyWaiting: byStatus[string(waitlist.StatusWaiting)],
		},
		GeneratedAt: time.Now(),
	}, nil
}

func (s *service) GetVenueQueueSummary(ctx context.Context, venueID, staffID uuid.UUID) (*VenueQueueSummary, error) {
	startOfDay := time.Now().Truncate(24 * time.Hour)

	counts, err := s.repo.VenueQueueCounts(ctx, venueID, startOfDay)
	if err != nil {
		return nil, err
	}
	if counts.OwnerID != staffID {
		return nil, ErrNotVenueOwner
	}

	serviceTime := counts.AvgServiceTime
	if serviceTime <= 0 {
		serviceTime = waitlist.DefaultServiceTime
	}

	return &VenueQueueSummary{
		VenueID:          venueID.String(),
		PendingRequests:  counts.Pending,
		WaitingParties:   counts.Waiting,
		SeatedToday:      counts.Seated,
		EstimatedBacklog: counts.Waiting * serviceTime,
		AvgServiceTime:   float64(serviceTime),
	}, nil
}
