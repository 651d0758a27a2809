package notifications

import (
	"waitly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupNotificationRoutes configures the per-user notification feed routes
func SetupNotificationRoutes(rg *gin.RouterGroup, controller *Controller) {
	n := rg.Group("/notifications")
	n.Use(middleware.JWTAuth())
	{
		n.GET("", controller.List)
		n.PUT("/:id/read", controller.MarkRead)
	}
}
