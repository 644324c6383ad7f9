// Package arinc424test builds fixed-column CIFP lines for tests.
package arinc424test

import "fmt"

const lineLength = 132

func blank(section, subsection byte) []byte {
	b := make([]byte, lineLength)
	for i := range b {
		b[i] = ' '
	}
	copy(b, "SUSA")
	b[4] = section
	b[5] = subsection
	copy(b[6:], "ENRT")
	return b
}

func put(b []byte, at int, s string) {
	copy(b[at:], s)
}

// WaypointLine returns an enroute waypoint (EA) record in region K2.
func WaypointLine(id, lat, lon string) string {
	return RegionalWaypointLine(id, "K2", lat, lon)
}

// RegionalWaypointLine returns an enroute waypoint (EA) record in region.
func RegionalWaypointLine(id, region, lat, lon string) string {
	b := blank('E', 'A')
	put(b, 13, id)
	put(b, 19, region)
	b[21] = '0'
	put(b, 32, lat)
	put(b, 41, lon)
	put(b, 98, id+" WAYPOINT")
	return string(b)
}

// AirwayLine returns an enroute airway (ER) record. Empty altitudes are left
// blank.
func AirwayLine(route string, seq int, fix, minAlt, maxAlt string) string {
	b := blank('E', 'R')
	put(b, 13, route)
	put(b, 25, fmt.Sprintf("%04d", seq))
	put(b, 29, fix)
	put(b, 34, "K2")
	b[38] = '0'
	put(b, 83, minAlt)
	put(b, 93, maxAlt)
	return string(b)
}

// NavaidLine returns a VHF navaid (D) record, which the enroute decoder does
// not recognize.
func NavaidLine(id string) string {
	b := blank('D', ' ')
	put(b, 13, id)
	return string(b)
}
