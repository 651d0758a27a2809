// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"waitly/internal/analytics"
	"waitly/internal/auth"
	"waitly/internal/notifications"
	"waitly/internal/shared/config"
	"waitly/internal/shared/database"
	"waitly/internal/venues"
	"waitly/internal/waitlist"
	"waitly/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config       *config.Config
	db           *database.DB
	cacheService cache.Service
	notifier     waitlist.Notifier
	venueService venues.Service // For dependency injection into the queue engine
}

// NewRouter creates a new router instance. The cache service and notifier may
// be nil; the services degrade gracefully without them.
func NewRouter(cfg *config.Config, db *database.DB, cacheService cache.Service, notifier waitlist.Notifier) *Router {
	return &Router{
		config:       cfg,
		db:           db,
		cacheService: cacheService,
		notifier:     notifier,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)

		// Venue routes come before waitlist routes, the queue engine reads
		// venues through the directory adapter
		r.setupVenueRoutes(api)
		r.setupWaitlistRoutes(api)
		r.setupNotificationRoutes(api)
		r.setupAnalyticsRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "waitly-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "waitly-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController)

	authRouter.SetupRoutes(rg)
}

// setupVenueRoutes configures venue management routes
func (r *Router) setupVenueRoutes(rg *gin.RouterGroup) {
	venueRepo := venues.NewRepository(r.db.GetPostgreSQL())
	venueService := venues.NewService(venueRepo, r.cacheService)
	venueController := venues.NewController(venueService)

	// Keep the service around for the waitlist engine's venue lookups
	r.venueService = venueService

	venues.SetupVenueRoutes(rg, venueController)
}

// setupWaitlistRoutes configures the queue engine routes
func (r *Router) setupWaitlistRoutes(rg *gin.RouterGroup) {
	directory := venues.NewDirectoryAdapter(r.venueService)

	waitlistRepo := waitlist.NewRepository(r.db.GetPostgreSQL())
	waitlistService := waitlist.NewService(waitlistRepo, directory, r.notifier, &waitlist.ServiceConfig{
		DefaultServiceTime: r.config.Waitlist.DefaultServiceTime,
	})
	waitlistController := waitlist.NewController(waitlistService)

	waitlist.SetupWaitlistRoutes(rg, waitlistController)
}

// setupNotificationRoutes configures the per-user notification feed
func (r *Router) setupNotificationRoutes(rg *gin.RouterGroup) {
	notificationRepo := notifications.NewRepository(r.db.GetPostgreSQL())
	notificationService := notifications.NewService(notificationRepo)
	notificationController := notifications.NewController(notificationService)

	notifications.SetupNotificationRoutes(rg, notificationController)
}

// setupAnalyticsRoutes configures analytics routes
func (r *Router) setupAnalyticsRoutes(rg *gin.RouterGroup) {
	analyticsRepo := analytics.NewRepository(r.db.GetPostgreSQL())
	analyticsService := analytics.NewService(analyticsRepo, r.cacheService)
	analyticsController := analytics.NewController(analyticsService)

	analytics.SetupAnalyticsRoutes(rg, analyticsController)
}
