package normalize

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/couchcryptid/aero-refdb/internal/domain"
)

// Skip reasons for airport rows.
const (
	reasonNotUS        = "country not US"
	reasonIdentLength  = "identifier length"
	reasonNoRunways    = "no runways"
	reasonDuplicateID  = "duplicate identifier"
	reasonMissingIdent = "missing identifier"
)

// airportRow is one row of the OurAirports airports.csv extract.
type airportRow struct {
	Ident        string `csv:"ident"`
	Type         string `csv:"type"`
	Name         string `csv:"name"`
	Lat          string `csv:"latitude_deg"`
	Lon          string `csv:"longitude_deg"`
	Elevation    string `csv:"elevation_ft"`
	Country      string `csv:"iso_country"`
	Municipality string `csv:"municipality"`
	ICAOCode     string `csv:"icao_code"`
	IATACode     string `csv:"iata_code"`
	GPSCode      string `csv:"gps_code"`
	LocalCode    string `csv:"local_code"`
}

// runwayRow is one row of the OurAirports runways.csv extract.
type runwayRow struct {
	AirportIdent string `csv:"airport_ident"`
	LengthFt     string `csv:"length_ft"`
	WidthFt      string `csv:"width_ft"`
	Surface      string `csv:"surface"`
	Lighted      string `csv:"lighted"`
	LEIdent      string `csv:"le_ident"`
	LEHeading    string `csv:"le_heading_degT"`
	HEIdent      string `csv:"he_ident"`
	HEHeading    string `csv:"he_heading_degT"`
}

// BuildAirports joins the airports and runways extracts into the airport
// database, keyed by primary identifier in source order.
func BuildAirports(airportsCSV, runwaysCSV io.Reader, logger *slog.Logger) (*domain.Table[domain.Airport], domain.AirportReport, error) {
	var report domain.AirportReport

	runwayRows, err := decodeRows[runwayRow](runwaysCSV, "runways")
	if err != nil {
		return nil, report, err
	}
	runways := make(map[string][]domain.Runway)
	for _, row := range runwayRows {
		report.RunwayRows++
		runways[row.AirportIdent] = append(runways[row.AirportIdent], newRunway(row))
	}

	airportRows, err := decodeRows[airportRow](airportsCSV, "airports")
	if err != nil {
		return nil, report, err
	}

	db := domain.NewTable[domain.Airport]()
	for _, row := range airportRows {
		report.Read++
		if reason := rejectAirport(row, len(runways[row.Ident])); reason != "" {
			report.Skip(reason)
			logger.Debug("airport skipped", "ident", row.Ident, "reason", reason)
			continue
		}

		ap := newAirport(row, runways[row.Ident])
		if !db.Add(ap.ID, ap) {
			report.Skip(reasonDuplicateID)
			logger.Debug("airport skipped", "ident", row.Ident, "reason", reasonDuplicateID)
			continue
		}
		report.Airports++
		report.Aliases += len(ap.Aliases)
		report.Runways += len(ap.Runways)
	}
	report.OrphanRunwayRows = report.RunwayRows - report.Runways

	return db, report, nil
}

// rejectAirport returns the reason a row is excluded, or "" to keep it.
func rejectAirport(row airportRow, runwayCount int) string {
	switch {
	case row.Ident == "":
		return reasonMissingIdent
	case row.Country != "US":
		return reasonNotUS
	case len(row.Ident) < 3 || len(row.Ident) > 4:
		return reasonIdentLength
	case runwayCount == 0 && !retainedWithoutRunways(row.Type):
		return reasonNoRunways
	default:
		return ""
	}
}

func retainedWithoutRunways(typ string) bool {
	switch typ {
	case domain.AirportTypeHeliport, domain.AirportTypeSeaplaneBase, domain.AirportTypeSmallAirport:
		return true
	default:
		return false
	}
}

func newAirport(row airportRow, runways []domain.Runway) domain.Airport {
	if runways == nil {
		runways = []domain.Runway{}
	}
	return domain.Airport{
		ID:           row.Ident,
		Name:         row.Name,
		Type:         row.Type,
		Lat:          parseFloatOrZero(row.Lat),
		Lon:          parseFloatOrZero(row.Lon),
		ElevationFt:  parseIntOrZero(row.Elevation),
		Municipality: row.Municipality,
		Aliases:      collectAliases(row.Ident, row.ICAOCode, row.IATACode, row.GPSCode, row.LocalCode),
		Runways:      runways,
	}
}

// collectAliases keeps each candidate that is non-empty, differs from the
// primary and has not been seen yet, preserving candidate order.
func collectAliases(primary string, candidates ...string) []string {
	aliases := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c == "" || c == primary {
			continue
		}
		dup := false
		for _, a := range aliases {
			if a == c {
				dup = true
				break
			}
		}
		if !dup {
			aliases = append(aliases, c)
		}
	}
	return aliases
}

func newRunway(row runwayRow) domain.Runway {
	return domain.Runway{
		ID:        fmt.Sprintf("%s/%s", row.LEIdent, row.HEIdent),
		LEIdent:   row.LEIdent,
		HEIdent:   row.HEIdent,
		LEHeading: runwayHeading(row.LEHeading, row.LEIdent),
		HEHeading: runwayHeading(row.HEHeading, row.HEIdent),
		LengthFt:  parseIntOrZero(row.LengthFt),
		WidthFt:   parseIntOrZero(row.WidthFt),
		Surface:   row.Surface,
		Lighted:   parseLighted(row.Lighted),
	}
}

// runwayHeading uses the published heading when it is numeric, otherwise the
// heading implied by the runway end number.
func runwayHeading(raw, endIdent string) float64 {
	if v, ok := parseFloat(raw); ok {
		return v
	}
	return derivedHeading(endIdent)
}

// derivedHeading turns a runway end identifier into degrees: "09L" -> 90.
// Identifiers without a numeric prefix (e.g. helipad "H1") yield 0.
func derivedHeading(endIdent string) float64 {
	s := strings.TrimRight(strings.ToUpper(strings.TrimSpace(endIdent)), "LCR")
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	if n == 0 {
		return 0
	}
	v, err := strconv.Atoi(s[:n])
	if err != nil {
		return 0
	}
	return float64(v * 10)
}

func parseLighted(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y":
		return true
	default:
		return false
	}
}
