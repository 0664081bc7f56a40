package domain

// ImpactStats is the per-user environmental summary. Derived on demand from
// user, ride and booking state; never persisted on its own.
type ImpactStats struct {
	TotalCarbonSaved float64 `json:"total_carbon_saved"`
	TotalKmShared    float64 `json:"total_km_shared"`
	TotalMoneySaved  float64 `json:"total_money_saved"`
	TripsCount       int     `json:"trips_count"`
}
