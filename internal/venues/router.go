package venues

import (
	"waitly/internal/shared/middleware"
	"waitly/internal/users"

	"github.com/gin-gonic/gin"
)

// SetupVenueRoutes configures venue routes. Browsing is public, management
// requires a staff account.
func SetupVenueRoutes(rg *gin.RouterGroup, controller *Controller) {
	v := rg.Group("/venues")
	{
		v.GET("", controller.List)

		staff := v.Group("")
		staff.Use(middleware.JWTAuth(), middleware.RequireRole(string(users.RoleStaff)))
		{
			staff.GET("/my", controller.ListMine)
			staff.POST("", controller.Create)
			staff.PUT("/:id", controller.Update)
			staff.DELETE("/:id", controller.Delete)
		}

		v.GET("/:id", controller.Get)
	}
}
