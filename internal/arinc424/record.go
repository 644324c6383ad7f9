// Package arinc424 decodes the enroute records of the FAA CIFP file.
//
// Only two record shapes matter here: enroute waypoints (section E,
// subsection A) and enroute airways (section E, subsection R). A line is
// decoded into exactly one [Record] whose Kind says which shape it was.
package arinc424

import (
	"strconv"
	"strings"

	"github.com/couchcryptid/aero-refdb/internal/domain"
)

// Minimum line lengths for each record shape. A full record is 132 columns.
const (
	AirwayLineLength   = 132
	WaypointLineLength = 51
)

// Column offsets (0-based, half-open) from ARINC 424 sections 4.1.4 and 4.1.6.
const (
	colSection    = 4
	colSubsection = 5

	colWaypointContinuation = 21
	colAirwayContinuation   = 38
)

var (
	waypointID     = span{13, 18}
	waypointRegion = span{19, 21}
	waypointLat    = span{32, 41}
	waypointLon    = span{41, 51}

	airwayRoute    = span{13, 18}
	airwaySequence = span{25, 29}
	airwayFix      = span{29, 34}
	airwayRegion   = span{34, 36}
	airwayMinAlt   = span{83, 88}
	airwayMaxAlt   = span{93, 98}
)

type span struct{ start, end int }

func (s span) of(line string) string {
	return strings.TrimSpace(line[s.start:s.end])
}

// Kind identifies which record shape a line decoded as.
type Kind int

const (
	KindUnrecognized Kind = iota
	KindAirway
	KindWaypoint
)

func (k Kind) String() string {
	switch k {
	case KindAirway:
		return "airway"
	case KindWaypoint:
		return "waypoint"
	default:
		return "unrecognized"
	}
}

// AirwayRecord is one fix of an enroute airway.
type AirwayRecord struct {
	RouteID     string
	Sequence    int
	FixID       string
	FixRegion   string
	MinAltitude int
	MaxAltitude *int
	Type        domain.AirwayType
	Direction   domain.Direction
}

// WaypointRecord is an enroute waypoint with its decoded position.
type WaypointRecord struct {
	ID     string
	Region string // ICAO region code, e.g. "K2"
	Lat    float64
	Lon    float64
}

// Record is the tagged result of decoding one line. Exactly one of Airway and
// Waypoint is meaningful, selected by Kind. An unrecognized record carries a
// Reason when the line looked like one of the shapes but failed to decode.
type Record struct {
	Kind     Kind
	Airway   AirwayRecord
	Waypoint WaypointRecord
	Reason   string
}

// Skip reasons reported for lines that were classified but malformed.
const (
	ReasonShortLine    = "short line"
	ReasonContinuation = "continuation record"
	ReasonBadCoord     = "malformed coordinate"
	ReasonBadSequence  = "malformed sequence number"
	ReasonBadAltitude  = "malformed altitude"
	ReasonMissingIdent = "missing identifier"
)

// Decode classifies line and decodes it. The waypoint shape is probed first;
// the two shapes have different subsection codes so at most one can match.
func Decode(line string) Record {
	line = strings.TrimRight(line, "\r\n")
	if rec, ok := decodeWaypoint(line); ok {
		return rec
	}
	if rec, ok := decodeAirway(line); ok {
		return rec
	}
	return Record{Kind: KindUnrecognized}
}

func classified(line string, section, subsection byte) bool {
	return len(line) > colSubsection && line[colSection] == section && line[colSubsection] == subsection
}

func isPrimary(flag byte) bool {
	return flag == '0' || flag == '1' || flag == ' '
}

// decodeWaypoint reports ok when line is shaped like an enroute waypoint,
// whether or not its fields decoded.
func decodeWaypoint(line string) (Record, bool) {
	if !classified(line, 'E', 'A') {
		return Record{}, false
	}
	if len(line) < WaypointLineLength {
		return unrecognized(ReasonShortLine), true
	}
	if !isPrimary(line[colWaypointContinuation]) {
		return unrecognized(ReasonContinuation), true
	}
	id := waypointID.of(line)
	if id == "" {
		return unrecognized(ReasonMissingIdent), true
	}
	lat, okLat := DecodeLatitude(line[waypointLat.start:waypointLat.end])
	lon, okLon := DecodeLongitude(line[waypointLon.start:waypointLon.end])
	if !okLat || !okLon {
		return unrecognized(ReasonBadCoord), true
	}
	return Record{
		Kind:     KindWaypoint,
		Waypoint: WaypointRecord{ID: id, Region: waypointRegion.of(line), Lat: lat, Lon: lon},
	}, true
}

func decodeAirway(line string) (Record, bool) {
	if !classified(line, 'E', 'R') {
		return Record{}, false
	}
	if len(line) < AirwayLineLength {
		return unrecognized(ReasonShortLine), true
	}
	if !isPrimary(line[colAirwayContinuation]) {
		return unrecognized(ReasonContinuation), true
	}
	route := airwayRoute.of(line)
	fix := airwayFix.of(line)
	if route == "" || fix == "" {
		return unrecognized(ReasonMissingIdent), true
	}
	seq, err := strconv.Atoi(airwaySequence.of(line))
	if err != nil {
		return unrecognized(ReasonBadSequence), true
	}

	minAlt, _, ok := readAltitude(airwayMinAlt.of(line))
	if !ok {
		return unrecognized(ReasonBadAltitude), true
	}
	var maxAlt *int
	v, set, ok := readAltitude(airwayMaxAlt.of(line))
	if !ok {
		return unrecognized(ReasonBadAltitude), true
	}
	if set {
		maxAlt = &v
	}

	return Record{
		Kind: KindAirway,
		Airway: AirwayRecord{
			RouteID:     route,
			Sequence:    seq,
			FixID:       fix,
			FixRegion:   airwayRegion.of(line),
			MinAltitude: minAlt,
			MaxAltitude: maxAlt,
			Type:        ClassifyRoute(route),
			Direction:   domain.DirectionBoth,
		},
	}, true
}

func unrecognized(reason string) Record {
	return Record{Kind: KindUnrecognized, Reason: reason}
}

// Coded altitude values that stand in for a number.
const (
	altitudeUnknown        = "UNKNN"
	altitudeNotEstablished = "NESTB"
)

// readAltitude decodes an altitude field. Blank, unknown and not-established
// fields are valid but carry no value, so set is false.
func readAltitude(s string) (v int, set, ok bool) {
	switch s {
	case "", altitudeUnknown, altitudeNotEstablished:
		return 0, false, true
	}
	v, ok = parseAltitude(s)
	return v, ok, ok
}

// parseAltitude accepts feet ("05000") or a flight level ("FL180").
func parseAltitude(s string) (int, bool) {
	scale := 1
	if rest, ok := strings.CutPrefix(s, "FL"); ok {
		s, scale = rest, 100
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, false
	}
	return v * scale, true
}

// ClassifyRoute derives the airway type from the route identifier.
func ClassifyRoute(route string) domain.AirwayType {
	if route == "" {
		return domain.AirwayTypeVictor
	}
	switch route[0] {
	case 'J':
		return domain.AirwayTypeJet
	case 'T', 'Q':
		return domain.AirwayTypeRNAV
	default:
		return domain.AirwayTypeVictor
	}
}
