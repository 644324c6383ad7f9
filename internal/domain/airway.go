package domain

// AirwayType classifies a route by the first character of its identifier.
type AirwayType string

const (
	AirwayTypeVictor AirwayType = "VICTOR"
	AirwayTypeJet    AirwayType = "JET"
	AirwayTypeRNAV   AirwayType = "RNAV"
)

// Direction restricts which way a segment may be flown.
type Direction string

const (
	DirectionBoth     Direction = "both"
	DirectionForward  Direction = "forward"
	DirectionBackward Direction = "backward"
)

// AirwaySegment is one resolved fix along an airway.
type AirwaySegment struct {
	AirwayID    string    `json:"airway_id"`
	Sequence    int       `json:"sequence"` // 1-based, contiguous within an airway
	FixID       string    `json:"fix_id"`
	Lat         float64   `json:"lat"`
	Lon         float64   `json:"lon"`
	MinAltitude int       `json:"min_altitude"`
	MaxAltitude *int      `json:"max_altitude"` // nil when the source leaves it blank
	Direction   Direction `json:"direction"`
}

// Airway is an ordered list of at least two resolved segments.
type Airway struct {
	ID          string          `json:"id"`
	Type        AirwayType      `json:"type"`
	Description string          `json:"description"`
	Segments    []AirwaySegment `json:"segments"`
}
