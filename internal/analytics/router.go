package analytics

import (
	"waitly/internal/shared/middleware"
	"waitly/internal/users"

	"github.com/gin-gonic/gin"
)

func SetupAnalyticsRoutes(rg *gin.RouterGroup, controller Controller) {
	analytics := rg.Group("/analytics")

	admin := analytics.Group("/admin")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.GET("/dashboard", controller.GetDashboardAnalytics)
	}

	staff := analytics.Group("/venues")
	staff.Use(middleware.JWTAuth(), middleware.RequireRole(string(users.RoleStaff)))
	{
		staff.GET("/:venue_id", controller.GetVenueQueueSummary)
	}
}
