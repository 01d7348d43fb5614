package model

// ScoredRestaurant is one entry of an adaptive recommendation list.
type ScoredRestaurant struct {
	Restaurant Restaurant `json:"restaurant"`
	Score      int        `json:"score"`
	DistanceKm *float64   `json:"distance_km,omitempty"`
	Reasons    []string   `json:"reasons"`
}

// Position is a user location in degrees.
type Position struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}
