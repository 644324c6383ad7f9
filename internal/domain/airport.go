package domain

// Runway is one physical runway with both of its ends.
type Runway struct {
	ID        string  `json:"id"` // "LE/HE", e.g. "09L/27R"
	LEIdent   string  `json:"le_ident"`
	HEIdent   string  `json:"he_ident"`
	LEHeading float64 `json:"le_heading"` // degrees true
	HEHeading float64 `json:"he_heading"` // degrees true
	LengthFt  int     `json:"length_ft"`
	WidthFt   int     `json:"width_ft"`
	Surface   string  `json:"surface,omitempty"`
	Lighted   bool    `json:"lighted"`
}

// Airport is a US landing facility keyed by its primary identifier.
type Airport struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Lat          float64  `json:"lat"`
	Lon          float64  `json:"lon"`
	ElevationFt  int      `json:"elevation_ft"`
	Municipality string   `json:"municipality,omitempty"`
	Aliases      []string `json:"aliases"`
	Runways      []Runway `json:"runways"`
}

// Airport types that are retained even when no runway rows reference them.
const (
	AirportTypeHeliport     = "heliport"
	AirportTypeSeaplaneBase = "seaplane_base"
	AirportTypeSmallAirport = "small_airport"
)
