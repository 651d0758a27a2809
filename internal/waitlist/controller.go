package waitlist

import (
	"context"
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

// Join handles POST /waitlist
func (c *Controller) Join(ctx *gin.Context) {
	var request JoinRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	entry, err := c.service.Join(ctx.Request.Context(), request.VenueID, userID)
	if err != nil {
		respondQueueError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Joined waitlist, awaiting approval", entry, nil)
}

// Approve handles PUT /waitlist/:id/approve
func (c *Controller) Approve(ctx *gin.Context) {
	c.staffTransition(ctx, c.service.Approve, "Entry approved and queued")
}

// Reject handles PUT /waitlist/:id/reject
func (c *Controller) Reject(ctx *gin.Context) {
	c.staffTransition(ctx, c.service.Reject, "Entry rejected")
}

// Seat handles PUT /waitlist/:id/seat
func (c *Controller) Seat(ctx *gin.Context) {
	c.staffTransition(ctx, c.service.Seat, "Entry seated")
}

// Cancel handles PUT /waitlist/:id/cancel
func (c *Controller) Cancel(ctx *gin.Context) {
	entryID, ok := entryParam(ctx)
	if !ok {
		return
	}
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	entry, err := c.service.Cancel(ctx.Request.Context(), entryID, userID)
	if err != nil {
		respondQueueError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Entry cancelled", entry, nil)
}

// VenueQueue handles GET /waitlist/venue/:venue_id
func (c *Controller) VenueQueue(ctx *gin.Context) {
	venueID, err := uuid.Parse(ctx.Param("venue_id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid venue ID", nil, nil)
		return
	}
	staffID, ok := actorID(ctx)
	if !ok {
		return
	}

	entries, err := c.service.VenueQueue(ctx.Request.Context(), venueID, staffID)
	if err != nil {
		respondQueueError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Venue queue", entries, nil)
}

// History handles GET /waitlist/history
func (c *Controller) History(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	entries, err := c.service.UserHistory(ctx.Request.Context(), userID)
	if err != nil {
		respondQueueError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Waitlist history", entries, nil)
}

// staffTransition factors the shared shape of approve/reject/seat handlers
func (c *Controller) staffTransition(ctx *gin.Context,
	op func(ctx context.Context, entryID, staffID uuid.UUID) (*Entry, error), message string) {

	entryID, ok := entryParam(ctx)
	if !ok {
		return
	}
	staffID, ok := actorID(ctx)
	if !ok {
		return
	}

	entry, err := op(ctx.Request.Context(), entryID, staffID)
	if err != nil {
		respondQueueError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, message, entry, nil)
}

func entryParam(ctx *gin.Context) (uuid.UUID, bool) {
	entryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid entry ID", nil, nil)
		return uuid.Nil, false
	}
	return entryID, true
}

// actorID pulls the authenticated user's id out of the JWT middleware context
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

// respondQueueError maps engine error kinds to HTTP statuses
func respondQueueError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrVenueNotFound), errors.Is(err, ErrEntryNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, err.Error(), nil, nil)
	case errors.Is(err, ErrAlreadyQueued):
		response.RespondJSON(ctx, "error", http.StatusConflict, err.Error(), nil, nil)
	case errors.Is(err, ErrNotVenueOwner), errors.Is(err, ErrNotEntryOwner):
		response.RespondJSON(ctx, "error", http.StatusForbidden, err.Error(), nil, nil)
	case errors.Is(err, ErrInvalidTransition):
		response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, err.Error(), nil, nil)
	case errors.Is(err, ErrStorage):
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Operation failed, please retry", nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Internal server error", nil, nil)
	}
}
