package analytics

import "time"

// DashboardAnalytics is the admin overview of the whole installation.
type DashboardAnalytics struct {
	Users       UserMetrics     `json:"users"`
	Venues      VenueMetrics    `json:"venues"`
	Waitlist    WaitlistMetrics `json:"waitlist"`
	GeneratedAt time.Time       `json:"generated_at"`
}

type UserMetrics struct {
	Total  int            `json:"total"`
	ByRole map[string]int `json:"by_role"`
}

type VenueMetrics struct {
	Total        int `json:"total"`
	ActiveQueues int `json:"active_queues"`
}

type WaitlistMetrics struct {
	TotalEntries     int            `json:"total_entries"`
	ByStatus         map[string]int `json:"by_status"`
	CurrentlyWaiting int            `json:"currently_waiting"`
}

// VenueQueueSummary is the staff view of a single venue's queue load.
type VenueQueueSummary struct {
	VenueID          string  `json:"venue_id"`
	PendingRequests  int     `json:"pending_requests"`
	WaitingParties   int     `json:"waiting_parties"`
	SeatedToday      int     `json:"seated_today"`
	EstimatedBacklog int     `json:"estimated_backlog_minutes"`
	AvgServiceTime   float64 `json:"avg_service_time"`
}
