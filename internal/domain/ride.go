package domain

// RideStatus represents the lifecycle state of an offered ride.
type RideStatus string

const (
	RideStatusActive    RideStatus = "active"
	RideStatusCompleted RideStatus = "completed"
	RideStatusCancelled RideStatus = "cancelled"
)

// Ride represents a carpool ride offered by a driver. Driver identity is a
// denormalized copy taken at creation time, not a live reference.
type Ride struct {
	ID             string     `json:"id"`
	DriverID       string     `json:"driver_id"`
	DriverName     string     `json:"driver_name"`
	DriverAvatar   string     `json:"driver_avatar"`
	Origin         string     `json:"origin"`
	Destination    string     `json:"destination"`
	DepartureTime  string     `json:"departure_time"`
	AvailableSeats int        `json:"available_seats"`
	Price          float64    `json:"price"`
	DistanceKm     float64    `json:"distance_km"`
	CarbonSavedKg  float64    `json:"carbon_saved_kg"`
	Status         RideStatus `json:"status"`
}
