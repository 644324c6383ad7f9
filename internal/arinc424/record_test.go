package arinc424

import (
	"testing"

	"github.com/couchcryptid/aero-refdb/internal/arinc424/arinc424test"
	"github.com/couchcryptid/aero-refdb/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testLat = "N38443200"
	testLon = "W077261900"
)

func withByte(line string, at int, c byte) string {
	b := []byte(line)
	b[at] = c
	return string(b)
}

func TestDecode_Waypoint(t *testing.T) {
	rec := Decode(arinc424test.WaypointLine("ADDUX", testLat, testLon))

	require.Equal(t, KindWaypoint, rec.Kind)
	assert.Equal(t, "ADDUX", rec.Waypoint.ID)
	assert.Equal(t, "K2", rec.Waypoint.Region)
	assert.InDelta(t, 38+44.0/60+32.0/3600, rec.Waypoint.Lat, 1e-9)
	assert.InDelta(t, -(77+26.0/60+19.0/3600), rec.Waypoint.Lon, 1e-9)
}

func TestDecode_WaypointTrailingCRLF(t *testing.T) {
	rec := Decode(arinc424test.WaypointLine("ADDUX", testLat, testLon) + "\r\n")
	assert.Equal(t, KindWaypoint, rec.Kind)
}

func TestDecode_WaypointRejections(t *testing.T) {
	good := arinc424test.WaypointLine("ADDUX", testLat, testLon)

	tests := []struct {
		name   string
		line   string
		reason string
	}{
		{"continuation record", withByte(good, 21, '2'), ReasonContinuation},
		{"blank continuation accepted as primary", withByte(good, 21, ' '), ""},
		{"short line", good[:50], ReasonShortLine},
		{"malformed latitude", arinc424test.WaypointLine("ADDUX", "N38A43200", testLon), ReasonBadCoord},
		{"bad hemisphere", arinc424test.WaypointLine("ADDUX", "X38443200", testLon), ReasonBadCoord},
		{"missing ident", arinc424test.WaypointLine("     ", testLat, testLon), ReasonMissingIdent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Decode(tt.line)
			if tt.reason == "" {
				assert.Equal(t, KindWaypoint, rec.Kind)
				return
			}
			assert.Equal(t, KindUnrecognized, rec.Kind)
			assert.Equal(t, tt.reason, rec.Reason)
		})
	}
}

func TestDecode_Airway(t *testing.T) {
	rec := Decode(arinc424test.AirwayLine("V16", 40, "ENO", "03000", "17999"))

	require.Equal(t, KindAirway, rec.Kind)
	a := rec.Airway
	assert.Equal(t, "V16", a.RouteID)
	assert.Equal(t, 40, a.Sequence)
	assert.Equal(t, "ENO", a.FixID)
	assert.Equal(t, "K2", a.FixRegion)
	assert.Equal(t, 3000, a.MinAltitude)
	require.NotNil(t, a.MaxAltitude)
	assert.Equal(t, 17999, *a.MaxAltitude)
	assert.Equal(t, domain.AirwayTypeVictor, a.Type)
	assert.Equal(t, domain.DirectionBoth, a.Direction)
}

func TestDecode_AirwayBlankAltitudes(t *testing.T) {
	rec := Decode(arinc424test.AirwayLine("V16", 50, "SBY", "", ""))

	require.Equal(t, KindAirway, rec.Kind)
	assert.Equal(t, 0, rec.Airway.MinAltitude)
	assert.Nil(t, rec.Airway.MaxAltitude)
}

func TestDecode_AirwayCodedAltitudes(t *testing.T) {
	mea := 17999

	tests := []struct {
		name    string
		minAlt  string
		maxAlt  string
		wantMin int
		wantMax *int
	}{
		{"unknown minimum", "UNKNN", "17999", 0, &mea},
		{"not established minimum", "NESTB", "17999", 0, &mea},
		{"unknown maximum", "03000", "UNKNN", 3000, nil},
		{"not established maximum", "03000", "NESTB", 3000, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Decode(arinc424test.AirwayLine("V9", 20, "BRAVO", tt.minAlt, tt.maxAlt))

			require.Equal(t, KindAirway, rec.Kind)
			assert.Equal(t, tt.wantMin, rec.Airway.MinAltitude)
			assert.Equal(t, tt.wantMax, rec.Airway.MaxAltitude)
		})
	}
}

func TestDecode_AirwayFlightLevel(t *testing.T) {
	rec := Decode(arinc424test.AirwayLine("J75", 10, "GVE", "FL180", "FL450"))

	require.Equal(t, KindAirway, rec.Kind)
	assert.Equal(t, 18000, rec.Airway.MinAltitude)
	assert.Equal(t, 45000, *rec.Airway.MaxAltitude)
	assert.Equal(t, domain.AirwayTypeJet, rec.Airway.Type)
}

func TestDecode_AirwayRejections(t *testing.T) {
	good := arinc424test.AirwayLine("V16", 40, "ENO", "03000", "")

	tests := []struct {
		name   string
		line   string
		reason string
	}{
		{"short line", good[:131], ReasonShortLine},
		{"continuation record", withByte(good, 38, 'A'), ReasonContinuation},
		{"bad sequence", withByte(good, 26, 'X'), ReasonBadSequence},
		{"bad altitude", arinc424test.AirwayLine("V16", 40, "ENO", "03X00", ""), ReasonBadAltitude},
		{"bad max altitude", arinc424test.AirwayLine("V16", 40, "ENO", "03000", "FLXYZ"), ReasonBadAltitude},
		{"missing fix", arinc424test.AirwayLine("V16", 40, "", "03000", ""), ReasonMissingIdent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Decode(tt.line)
			assert.Equal(t, KindUnrecognized, rec.Kind)
			assert.Equal(t, tt.reason, rec.Reason)
		})
	}
}

func TestDecode_Unrecognized(t *testing.T) {
	for _, line := range []string{
		"",
		"HDR01FAACIFP18",
		arinc424test.NavaidLine("ENO"),
	} {
		rec := Decode(line)
		assert.Equal(t, KindUnrecognized, rec.Kind)
		assert.Empty(t, rec.Reason)
	}
}

func TestClassifyRoute(t *testing.T) {
	tests := []struct {
		route    string
		expected domain.AirwayType
	}{
		{"V16", domain.AirwayTypeVictor},
		{"J75", domain.AirwayTypeJet},
		{"T254", domain.AirwayTypeRNAV},
		{"Q100", domain.AirwayTypeRNAV},
		{"A1", domain.AirwayTypeVictor},
		{"", domain.AirwayTypeVictor},
	}
	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyRoute(tt.route))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "airway", KindAirway.String())
	assert.Equal(t, "waypoint", KindWaypoint.String())
	assert.Equal(t, "unrecognized", KindUnrecognized.String())
}
