package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecoride/internal/service"
)

// StatsHandler handles HTTP requests for impact statistics.
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// StatsResponse is the HTTP response for impact statistics.
type StatsResponse struct {
	TotalCarbonSaved float64 `json:"total_carbon_saved"`
	TotalKmShared    float64 `json:"total_km_shared"`
	TotalMoneySaved  float64 `json:"total_money_saved"`
	TripsCount       int     `json:"trips_count"`
}

// GetStats handles GET /v1/stats
// Without a session it reports all-zero stats rather than an error.
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.ComputeStats(c.Request.Context(), sessionToken(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, StatsResponse{
		TotalCarbonSaved: stats.TotalCarbonSaved,
		TotalKmShared:    stats.TotalKmShared,
		TotalMoneySaved:  stats.TotalMoneySaved,
		TripsCount:       stats.TripsCount,
	})
}
