package domain

// User represents a registered carpooler. The same record acts as driver
// (when offering rides) and as passenger (when booking them).
type User struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	SecretHash string  `json:"secret_hash,omitempty"`
	Avatar     string  `json:"avatar"`
	Rating     float64 `json:"rating"`
	Verified   bool    `json:"verified"`

	// Lifetime totals, accumulated by successful bookings.
	TotalKm          float64 `json:"total_km"`
	TotalCarbonSaved float64 `json:"total_carbon_saved"`
}
