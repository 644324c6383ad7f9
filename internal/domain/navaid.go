package domain

// Navaid is a radio navigation aid from the previously built navaid database.
type Navaid struct {
	ID          string   `json:"id"`
	Name        string   `json:"name,omitempty"`
	Type        string   `json:"type,omitempty"`
	Lat         float64  `json:"lat"`
	Lon         float64  `json:"lon"`
	ElevationFt *int     `json:"elevation_ft,omitempty"`
	Frequency   *float64 `json:"frequency,omitempty"`
}

// NamedFix is a VFR waypoint from the NASR extract.
type NamedFix struct {
	ID  string  `json:"id"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}
