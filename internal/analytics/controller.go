package analytics

import (
	"errors"
	"net/http"

	"waitly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Controller defines the analytics controller interface
type Controller interface {
	GetDashboardAnalytics(c *gin.Context)
	GetVenueQueueSummary(c *gin.Context)
}

type controller struct {
	service Service
}

// NewController creates a new analytics controller instance
func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetDashboardAnalytics(c *gin.Context) {
	dashboard, err := ctrl.service.GetDashboardAnalytics(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to build dashboard", nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Dashboard analytics", dashboard, nil)
}

func (ctrl *controller) GetVenueQueueSummary(c *gin.Context) {
	venueID, err := uuid.Parse(c.Param("venue_id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid venue ID", nil, nil)
		return
	}

	raw, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}
	staffID, err := uuid.Parse(raw.(string))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid user ID", nil, nil)
		return
	}

	summary, err := ctrl.service.GetVenueQueueSummary(c.Request.Context(), venueID, staffID)
	if err != nil {
		switch {
		case errors.Is(err, ErrVenueNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
		case errors.Is(err, ErrNotVenueOwner):
			response.RespondJSON(c, "error", http.StatusForbidden, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to build queue summary", nil, nil)
		}
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Venue queue summary", summary, nil)
}
