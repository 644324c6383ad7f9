package normalize

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/couchcryptid/aero-refdb/internal/delimited"
	"github.com/couchcryptid/aero-refdb/internal/domain"
)

// Skip reasons for named-fix rows.
const (
	reasonFixIdent     = "identifier missing or wrong length"
	reasonFixLatitude  = "latitude unparseable"
	reasonFixLongitude = "longitude unparseable"
	reasonOutsideCONUS = "outside CONUS"
	reasonDuplicateFix = "duplicate identifier"
)

const (
	minFixIdentLen = 2
	maxFixIdentLen = 5
)

// headerRule is a two-tier column lookup: exact names in priority order,
// then substring fragments for extracts whose headers have drifted.
type headerRule struct {
	exact     []string
	fragments []string
}

var (
	idColumn = headerRule{
		exact:     []string{"FIX_ID", "IDENT", "IDENTIFIER", "WAYPOINT_ID", "ID"},
		fragments: []string{"IDENT", "FIX", "ID"},
	}
	latColumn = headerRule{
		exact:     []string{"LAT_DECIMAL", "LATITUDE", "LAT"},
		fragments: []string{"LAT"},
	}
	lonColumn = headerRule{
		exact:     []string{"LONG_DECIMAL", "LONGITUDE", "LON", "LONG", "LNG"},
		fragments: []string{"LON", "LNG"},
	}
)

// find returns the index of the matching header column, or -1.
func (h headerRule) find(header []string) int {
	upper := make([]string, len(header))
	for i, name := range header {
		upper[i] = strings.ToUpper(strings.TrimSpace(name))
	}
	for _, want := range h.exact {
		for i, name := range upper {
			if name == want {
				return i
			}
		}
	}
	for _, frag := range h.fragments {
		for i, name := range upper {
			if strings.Contains(name, frag) {
				return i
			}
		}
	}
	return -1
}

// BuildFixes normalizes a NASR named-fix extract into the fix database.
// A header without recognizable identifier or coordinate columns is an error.
func BuildFixes(extract io.Reader, logger *slog.Logger) (*domain.Table[domain.NamedFix], domain.FixReport, error) {
	var report domain.FixReport

	header, rows, err := delimited.ReadTable(extract)
	if err != nil {
		return nil, report, fmt.Errorf("read fix extract: %w", err)
	}

	idIdx, latIdx, lonIdx := idColumn.find(header), latColumn.find(header), lonColumn.find(header)
	if idIdx < 0 || latIdx < 0 || lonIdx < 0 {
		return nil, report, fmt.Errorf("fix extract header %q: identifier, latitude or longitude column not found", header)
	}
	report.IDColumn, report.LatColumn, report.LonColumn = header[idIdx], header[latIdx], header[lonIdx]
	logger.Debug("fix columns discovered",
		"id_column", report.IDColumn,
		"lat_column", report.LatColumn,
		"lon_column", report.LonColumn,
	)

	db := domain.NewTable[domain.NamedFix]()
	for _, row := range rows {
		report.Read++
		fix, reason := parseFixRow(row[idIdx], row[latIdx], row[lonIdx])
		if reason == "" && !db.Add(fix.ID, fix) {
			reason = reasonDuplicateFix
		}
		if reason != "" {
			report.Skip(reason)
			logger.Debug("fix skipped", "ident", row[idIdx], "reason", reason)
			continue
		}
		report.Parsed++
	}

	return db, report, nil
}

func parseFixRow(id, rawLat, rawLon string) (domain.NamedFix, string) {
	if n := len(id); n < minFixIdentLen || n > maxFixIdentLen {
		return domain.NamedFix{}, reasonFixIdent
	}
	lat, ok := ParseCoordinate(rawLat, Latitude)
	if !ok {
		return domain.NamedFix{}, reasonFixLatitude
	}
	lon, ok := ParseCoordinate(rawLon, Longitude)
	if !ok {
		return domain.NamedFix{}, reasonFixLongitude
	}
	if !InCONUS(lat, lon) {
		return domain.NamedFix{}, reasonOutsideCONUS
	}
	return domain.NamedFix{ID: id, Lat: round6(lat), Lon: round6(lon)}, ""
}
