package notifications

import (
	"errors"
	"net/http"

	"waitly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{
		service: service,
	}
}

// List handles GET /notifications
func (c *Controller) List(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}
	notifications, err := c.service.ListMine(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list notifications", nil, nil)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Notifications", notifications, nil)
}

// MarkRead handles PUT /notifications/:id/read
func (c *Controller) MarkRead(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid notification ID", nil, nil)
		return
	}
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	notification, err := c.service.MarkRead(ctx.Request.Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotificationNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, err.Error(), nil, nil)
		case errors.Is(err, ErrNotRecipient):
			response.RespondJSON(ctx, "error", http.StatusForbidden, err.Error(), nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update notification", nil, nil)
		}
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Notification marked as read", notification, nil)
}

func actorID(ctx *gin.Context) (uuid.UUID, bool) {
	raw, exists := ctx.Get("user_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw.(string))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid user ID", nil, nil)
		return uuid.Nil, false
	}
	return id, true
}
