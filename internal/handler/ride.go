package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ecoride/internal/domain"
	"ecoride/internal/service"
)

// RideHandler handles HTTP requests for rides and bookings.
type RideHandler struct {
	rideService *service.RideService
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(rideService *service.RideService) *RideHandler {
	return &RideHandler{rideService: rideService}
}

// CreateRideRequest is the HTTP request body for offering a ride.
type CreateRideRequest struct {
	Origin         string  `json:"origin"`
	Destination    string  `json:"destination"`
	DepartureTime  string  `json:"departure_time"`
	AvailableSeats int     `json:"available_seats"`
	Price          float64 `json:"price"`
	DistanceKm     float64 `json:"distance_km"`
}

// RideResponse is the HTTP response for ride data.
type RideResponse struct {
	ID             string  `json:"id"`
	DriverID       string  `json:"driver_id"`
	DriverName     string  `json:"driver_name"`
	DriverAvatar   string  `json:"driver_avatar"`
	Origin         string  `json:"origin"`
	Destination    string  `json:"destination"`
	DepartureTime  string  `json:"departure_time"`
	AvailableSeats int     `json:"available_seats"`
	Price          float64 `json:"price"`
	DistanceKm     float64 `json:"distance_km"`
	CarbonSavedKg  float64 `json:"carbon_saved_kg"`
	Status         string  `json:"status"`
}

// BookingResponse is the HTTP response for booking data.
type BookingResponse struct {
	ID          string `json:"id"`
	RideID      string `json:"ride_id"`
	PassengerID string `json:"passenger_id"`
	CreatedAt   string `json:"created_at"`
}

func toRideResponse(r *domain.Ride) RideResponse {
	return RideResponse{
		ID:             r.ID,
		DriverID:       r.DriverID,
		DriverName:     r.DriverName,
		DriverAvatar:   r.DriverAvatar,
		Origin:         r.Origin,
		Destination:    r.Destination,
		DepartureTime:  r.DepartureTime,
		AvailableSeats: r.AvailableSeats,
		Price:          r.Price,
		DistanceKm:     r.DistanceKm,
		CarbonSavedKg:  r.CarbonSavedKg,
		Status:         string(r.Status),
	}
}

func toBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:          b.ID,
		RideID:      b.RideID,
		PassengerID: b.PassengerID,
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
	}
}

// GetAll handles GET /v1/rides
func (h *RideHandler) GetAll(c *gin.Context) {
	rides, err := h.rideService.ListRides(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]RideResponse, 0, len(rides))
	for i := range rides {
		response = append(response, toRideResponse(&rides[i]))
	}

	respondJSON(c, http.StatusOK, response)
}

// GetRide handles GET /v1/rides/:id
func (h *RideHandler) GetRide(c *gin.Context) {
	ride, err := h.rideService.GetRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// CreateRide handles POST /v1/rides
func (h *RideHandler) CreateRide(c *gin.Context) {
	var req CreateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ride, err := h.rideService.CreateRide(c.Request.Context(), sessionToken(c), service.CreateRideRequest{
		Origin:         req.Origin,
		Destination:    req.Destination,
		DepartureTime:  req.DepartureTime,
		AvailableSeats: req.AvailableSeats,
		Price:          req.Price,
		DistanceKm:     req.DistanceKm,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toRideResponse(ride))
}

// BookRide handles POST /v1/rides/:id/book
func (h *RideHandler) BookRide(c *gin.Context) {
	booking, err := h.rideService.BookRide(c.Request.Context(), sessionToken(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toBookingResponse(booking))
}

// CompleteRide handles POST /v1/rides/:id/complete
func (h *RideHandler) CompleteRide(c *gin.Context) {
	ride, err := h.rideService.CompleteRide(c.Request.Context(), sessionToken(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// CancelRide handles POST /v1/rides/:id/cancel
func (h *RideHandler) CancelRide(c *gin.Context) {
	ride, err := h.rideService.CancelRide(c.Request.Context(), sessionToken(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// GetBookings handles GET /v1/bookings
func (h *RideHandler) GetBookings(c *gin.Context) {
	bookings, err := h.rideService.ListBookings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		response = append(response, toBookingResponse(&bookings[i]))
	}

	respondJSON(c, http.StatusOK, response)
}
