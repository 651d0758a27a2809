package waitlist

import (
	"waitly/internal/shared/middleware"
	"waitly/internal/users"

	"github.com/gin-gonic/gin"
)

// SetupWaitlistRoutes configures all waitlist routes following the same pattern
// as the other modules
func SetupWaitlistRoutes(rg *gin.RouterGroup, controller *Controller) {
	wl := rg.Group("/waitlist")
	wl.Use(middleware.JWTAuth())
	{
		// Customer operations
		customer := wl.Group("")
		customer.Use(middleware.RequireRole(string(users.RoleCustomer)))
		{
			customer.POST("", controller.Join)              // join a venue's waitlist
			customer.PUT("/:id/cancel", controller.Cancel)  // withdraw own entry
			customer.GET("/history", controller.History)    // own entries, newest first
		}

		// Staff operations on their venue's queue
		staff := wl.Group("")
		staff.Use(middleware.RequireRole(string(users.RoleStaff)))
		{
			staff.PUT("/:id/approve", controller.Approve)
			staff.PUT("/:id/reject", controller.Reject)
			staff.PUT("/:id/seat", controller.Seat)
			staff.GET("/venue/:venue_id", controller.VenueQueue)
		}
	}
}
