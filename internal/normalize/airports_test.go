package normalize_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/couchcryptid/aero-refdb/internal/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const airportsHeader = `"id","ident","type","name","latitude_deg","longitude_deg","elevation_ft","continent","iso_country","iso_region","municipality","scheduled_service","icao_code","iata_code","gps_code","local_code"`

const runwaysHeader = `"id","airport_ref","airport_ident","length_ft","width_ft","surface","lighted","closed","le_ident","le_latitude_deg","le_longitude_deg","le_elevation_ft","le_heading_degT","le_displaced_threshold_ft","he_ident","he_latitude_deg","he_longitude_deg","he_elevation_ft","he_heading_degT","he_displaced_threshold_ft"`

func airportFixture() (airports, runways string) {
	airports = text(
		airportsHeader,
		`1,"KAAA","medium_airport","Alpha Field",40.1,-75.2,310,"NA","US","US-PA","Alphaville","yes","KAAA","","KAAA","AAA1"`,
		`2,"KBBB","large_airport","Bravo Intl",41.5,-76.0,500,"NA","US","US-PA","Bravo","yes","KBBB","BBB","KBBB","BBB"`,
		`3,"CYYZ","large_airport","Toronto",43.6,-79.6,569,"NA","CA","CA-ON","Toronto","yes","CYYZ","YYZ","CYYZ",""`,
		`4,"00A","heliport","Total Rf Heliport",40.07,-74.93,11,"NA","US","US-PA","Bensalem","no","","","00A","00A"`,
		`5,"KCCC","medium_airport","No Runway Field",39.0,-77.0,100,"NA","US","US-MD","Charlie","no","KCCC","","",""`,
		`6,"US-0001","closed","Long Ident",38.0,-78.0,0,"NA","US","US-VA","","no","","","",""`,
		`7,"KAAA","small_airport","Duplicate Alpha",0,0,0,"NA","US","US-PA","","no","","","",""`,
		`8,"0W7","seaplane_base","Floats Seaplane Base",47.6,-122.3,10,"NA","US","US-WA","Lakeside","no","","","",""`,
	)

	runways = text(
		runwaysHeader,
		`10,1,"KAAA",5000,100,"ASP",1,0,"09L",,,,,,"27R",,,,,`,
		`11,1,"KAAA",3000,75,"TURF",0,0,"18",,,,178.5,,"36",,,,358.5,`,
		`12,2,"KBBB",9000,150,"CON",1,0,"H1",,,,,,"",,,,,`,
		`13,99,"KZZZ",2000,50,"GRVL",0,0,"04",,,,,,"22",,,,,`,
	)
	return airports, runways
}

func TestBuildAirports_Inclusion(t *testing.T) {
	airports, runways := airportFixture()
	db, report, err := normalize.BuildAirports(strings.NewReader(airports), strings.NewReader(runways), testLogger())
	require.NoError(t, err)

	assert.Equal(t, []string{"KAAA", "KBBB", "00A", "0W7"}, db.Keys())
	assert.Equal(t, 8, report.Read)
	assert.Equal(t, 4, report.Skipped)
	assert.Equal(t, map[string]int{
		"country not US":       1,
		"no runways":           1,
		"identifier length":    1,
		"duplicate identifier": 1,
	}, report.SkipReasons)
	assert.Equal(t, 4, report.Airports)
	assert.Equal(t, 4, report.RunwayRows)
	assert.Equal(t, 3, report.Runways)
	assert.Equal(t, 1, report.OrphanRunwayRows)
}

func TestBuildAirports_FirstOccurrenceWins(t *testing.T) {
	airports, runways := airportFixture()
	db, _, err := normalize.BuildAirports(strings.NewReader(airports), strings.NewReader(runways), testLogger())
	require.NoError(t, err)

	ap, ok := db.Get("KAAA")
	require.True(t, ok)
	assert.Equal(t, "Alpha Field", ap.Name)
}

func TestBuildAirports_Aliases(t *testing.T) {
	airports, runways := airportFixture()
	db, report, err := normalize.BuildAirports(strings.NewReader(airports), strings.NewReader(runways), testLogger())
	require.NoError(t, err)

	tests := []struct {
		ident string
		want  []string
	}{
		{"KAAA", []string{"AAA1"}},
		{"KBBB", []string{"BBB"}},
		{"00A", []string{}},
		{"0W7", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			ap, ok := db.Get(tt.ident)
			require.True(t, ok)
			assert.Equal(t, tt.want, ap.Aliases)
			assert.NotContains(t, ap.Aliases, ap.ID)
		})
	}
	assert.Equal(t, 2, report.Aliases)
}

func TestBuildAirports_RunwayHeadings(t *testing.T) {
	airports, runways := airportFixture()
	db, _, err := normalize.BuildAirports(strings.NewReader(airports), strings.NewReader(runways), testLogger())
	require.NoError(t, err)

	kaaa, _ := db.Get("KAAA")
	require.Len(t, kaaa.Runways, 2)

	assert.Equal(t, "09L/27R", kaaa.Runways[0].ID)
	assert.InDelta(t, 90.0, kaaa.Runways[0].LEHeading, 1e-9)
	assert.InDelta(t, 270.0, kaaa.Runways[0].HEHeading, 1e-9)
	assert.True(t, kaaa.Runways[0].Lighted)

	assert.InDelta(t, 178.5, kaaa.Runways[1].LEHeading, 1e-9)
	assert.InDelta(t, 358.5, kaaa.Runways[1].HEHeading, 1e-9)
	assert.False(t, kaaa.Runways[1].Lighted)

	kbbb, _ := db.Get("KBBB")
	require.Len(t, kbbb.Runways, 1)
	assert.Zero(t, kbbb.Runways[0].LEHeading, "helipad has no numeric prefix")
	assert.Zero(t, kbbb.Runways[0].HEHeading)

	for _, id := range []string{"00A", "0W7"} {
		ap, ok := db.Get(id)
		require.True(t, ok, "%s kept without runways", id)
		assert.NotNil(t, ap.Runways)
		assert.Empty(t, ap.Runways)
	}
}

func TestBuildAirports_SmallAirportWithoutRunways(t *testing.T) {
	airports := text(
		airportsHeader,
		`1,"KAAA","small_airport","Alpha Strip",40.1,-75.2,310,"NA","US","US-PA","Alphaville","no","","","AAA1",""`,
	)
	db, report, err := normalize.BuildAirports(strings.NewReader(airports), lines(runwaysHeader), testLogger())
	require.NoError(t, err)

	ap, ok := db.Get("KAAA")
	require.True(t, ok)
	assert.Equal(t, "small_airport", ap.Type)
	assert.Equal(t, []string{"AAA1"}, ap.Aliases)
	assert.NotNil(t, ap.Runways)
	assert.Empty(t, ap.Runways)
	assert.Equal(t, 1, report.Airports)
	assert.Zero(t, report.Skipped)
}

func TestBuildAirports_Deterministic(t *testing.T) {
	airports, runways := airportFixture()

	first, _, err := normalize.BuildAirports(strings.NewReader(airports), strings.NewReader(runways), testLogger())
	require.NoError(t, err)
	second, _, err := normalize.BuildAirports(strings.NewReader(airports), strings.NewReader(runways), testLogger())
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildAirports_EmptyInputs(t *testing.T) {
	db, report, err := normalize.BuildAirports(lines(), lines(), testLogger())
	require.NoError(t, err)
	assert.Zero(t, db.Len())
	assert.Zero(t, report.Read)
}
