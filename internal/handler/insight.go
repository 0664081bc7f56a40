package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ecoride/internal/insight"
	"ecoride/internal/redis"
	"ecoride/internal/service"
)

// InsightHandler handles HTTP requests for advisory AI content. Failures of
// the external service surface as degraded content, never as errors.
type InsightHandler struct {
	client      *insight.Client
	authService *service.AuthService
	locations   redis.LocationStoreInterface
}

// NewInsightHandler creates a new InsightHandler. locations may be nil.
func NewInsightHandler(client *insight.Client, authService *service.AuthService, locations redis.LocationStoreInterface) *InsightHandler {
	return &InsightHandler{
		client:      client,
		authService: authService,
		locations:   locations,
	}
}

// EcoTip handles GET /v1/insights/eco-tip?distance_km=20&passengers=3
func (h *InsightHandler) EcoTip(c *gin.Context) {
	distanceKm, err := strconv.ParseFloat(c.Query("distance_km"), 64)
	if err != nil || distanceKm <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "distance_km must be a positive number"})
		return
	}

	passengers, err := strconv.Atoi(c.Query("passengers"))
	if err != nil || passengers <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "passengers must be a positive integer"})
		return
	}

	tip := h.client.EcoTip(c.Request.Context(), distanceKm, passengers)
	respondJSON(c, http.StatusOK, tip)
}

// RouteSuggestions handles GET /v1/insights/route-suggestions?origin=&destination=
// The session user's last reported position grounds the suggestion; without
// one the response degrades to the fixed fallback.
func (h *InsightHandler) RouteSuggestions(c *gin.Context) {
	origin := c.Query("origin")
	destination := c.Query("destination")
	if origin == "" || destination == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "origin and destination are required"})
		return
	}

	var loc *insight.Location
	if h.locations != nil {
		if user, err := h.authService.CurrentUser(c.Request.Context(), sessionToken(c)); err == nil {
			if pos, err := h.locations.GetLocation(c.Request.Context(), user.ID); err == nil && pos != nil {
				loc = &insight.Location{Lat: pos.Lat, Lng: pos.Lng}
			}
		}
	}

	suggestions := h.client.RouteSuggestions(c.Request.Context(), origin, destination, loc)
	respondJSON(c, http.StatusOK, suggestions)
}
