package venues

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

// List handles GET /venues
func (c *Controller) List(ctx *gin.Context) {
	venues, err := c.service.List(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list venues", nil, nil)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Venues", venues, nil)
}

// ListMine handles GET /venues/my
func (c *Controller) ListMine(ctx *gin.Context) {
	staffID, ok := actorID(ctx)
	if !ok {
		return
	}
	venues, err := c.service.ListMine(ctx.Request.Context(), staffID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list venues", nil, nil)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "My venues", venues, nil)
}

// Get handles GET /venues/:id
func (c *Controller) Get(ctx *gin.Context) {
	id, ok := venueParam(ctx)
	if !ok {
		return
	}
	venue, err := c.service.Get(ctx.Request.Context(), id)
	if err != nil {
		respondVenueError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Venue", venue, nil)
}

// Create handles POST /venues
func (c *Controller) Create(ctx *gin.Context) {
	var req CreateVenueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	staffID, ok := actorID(ctx)
	if !ok {
		return
	}
	venue, err := c.service.Create(ctx.Request.Context(), staffID, &req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create venue", nil, nil)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusCreated, "Venue created", venue, nil)
}

// Update handles PUT /venues/:id
func (c *Controller) Update(ctx *gin.Context) {
	id, ok := venueParam(ctx)
	if !ok {
		return
	}
	var req UpdateVenueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	staffID, ok := actorID(ctx)
	if !ok {
		return
	}
	venue, err := c.service.Update(ctx.Request.Context(), id, staffID, &req)
	if err != nil {
		respondVenueError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Venue updated", venue, nil)
}

// Delete handles DELETE /venues/:id
func (c *Controller) Delete(ctx *gin.Context) {
	id, ok := venueParam(ctx)
	if !ok {
		return
	}
	staffID, ok := actorID(ctx)
	if !ok {
		return
	}
	if err := c.service.Delete(ctx.Request.Context(), id, staffID); err != nil {
		respondVenueError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Venue deleted", nil, nil)
}

func venueParam(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid venue ID", nil, nil)
		return uuid.Nil, false
	}
	return id, true
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

func respondVenueError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrVenueNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, err.Error(), nil, nil)
	case errors.Is(err, ErrNotOwner):
		response.RespondJSON(ctx, "error", http.StatusForbidden, err.Error(), nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Internal server error", nil, nil)
	}
}
