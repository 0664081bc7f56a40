package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecoride/internal/redis"
	"ecoride/internal/service"
)

// UserHandler handles HTTP requests for user-scoped resources beyond auth.
type UserHandler struct {
	authService *service.AuthService
	locations   redis.LocationStoreInterface
}

// NewUserHandler creates a new UserHandler. locations may be nil.
func NewUserHandler(authService *service.AuthService, locations redis.LocationStoreInterface) *UserHandler {
	return &UserHandler{
		authService: authService,
		locations:   locations,
	}
}

// UpdateLocationRequest is the HTTP request body for reporting a position.
type UpdateLocationRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// UpdateLocation handles POST /v1/users/location
// The position is only used to ground route suggestions.
func (h *UserHandler) UpdateLocation(c *gin.Context) {
	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Lat < -90 || req.Lat > 90 || req.Lng < -180 || req.Lng > 180 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid coordinates"})
		return
	}

	user, err := h.authService.CurrentUser(c.Request.Context(), sessionToken(c))
	if err != nil {
		respondError(c, err)
		return
	}

	if h.locations == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "location tracking unavailable"})
		return
	}

	if err := h.locations.UpdateLocation(c.Request.Context(), user.ID, req.Lat, req.Lng); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
