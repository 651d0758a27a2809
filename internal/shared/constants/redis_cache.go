package constants

import "time"

// Redis Cache Configuration
// Centralizes cache keys and TTL values for the Waitly application
// Pattern: waitly:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_STATIC_SHORT   = 6 * time.Hour    // user profiles
	TTL_SEMI_STATIC    = 15 * time.Minute // venue details
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute // analytics
	TTL_REALTIME       = 1 * time.Minute  // queue positions
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "waitly"
)

// ================== VENUES MODULE ==================

const (
	CACHE_KEY_VENUE_DETAIL = CACHE_PREFIX + ":venues:id:" // + venue-id
)

const (
	TTL_VENUE_DETAIL = TTL_SEMI_STATIC
)

// ================== ANALYTICS MODULE ==================

const (
	CACHE_KEY_ANALYTICS_DASHBOARD = CACHE_PREFIX + ":analytics:dashboard:admin"
)

const (
	TTL_ANALYTICS_DASHBOARD = TTL_DYNAMIC_MEDIUM
)

// ================== RATE LIMITING ==================

const (
	RATELIMIT_PREFIX = CACHE_PREFIX + ":ratelimit"
)
