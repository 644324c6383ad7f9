package normalize

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/couchcryptid/aero-refdb/internal/arinc424"
	"github.com/couchcryptid/aero-refdb/internal/domain"
)

const (
	minAirwaySegments = 2
	maxCIFPLineBytes  = 4096
)

// fixSource says where an airway fix got its coordinates.
type fixSource int

const (
	unresolved fixSource = iota
	fromNavaid
	fromWaypoint
)

// BuildAirways assembles Victor airways from a CIFP file in a single pass.
// Fix coordinates come from navaids first and from enroute waypoints decoded
// in the same pass second. navaids is only read.
func BuildAirways(cifp io.Reader, navaids map[string]domain.Navaid, logger *slog.Logger) (*domain.Table[domain.Airway], domain.AirwayReport, error) {
	report := domain.AirwayReport{Unresolved: []string{}}

	waypoints := newWaypointIndex()
	routes := domain.NewTable[[]arinc424.AirwayRecord]()

	sc := bufio.NewScanner(cifp)
	sc.Buffer(make([]byte, 0, maxCIFPLineBytes), maxCIFPLineBytes)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		report.Read++

		rec := arinc424.Decode(line)
		switch rec.Kind {
		case arinc424.KindWaypoint:
			report.WaypointRecords++
			waypoints.add(rec.Waypoint)
		case arinc424.KindAirway:
			report.AirwayRecords++
			if !strings.HasPrefix(rec.Airway.RouteID, "V") {
				report.OutOfScopeRecords++
				continue
			}
			recs, _ := routes.Get(rec.Airway.RouteID)
			routes.Set(rec.Airway.RouteID, append(recs, rec.Airway))
		default:
			if rec.Reason != "" {
				report.Skip(rec.Reason)
				logger.Debug("cifp record skipped", "line", report.Read, "reason", rec.Reason)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, report, fmt.Errorf("scan cifp: %w", err)
	}

	missing := domain.NewTable[struct{}]()
	db := domain.NewTable[domain.Airway]()
	for route, recs := range routes.All() {
		slices.SortStableFunc(recs, func(a, b arinc424.AirwayRecord) int {
			return cmp.Compare(a.Sequence, b.Sequence)
		})

		segments := make([]domain.AirwaySegment, 0, len(recs))
		for _, r := range recs {
			lat, lon, src := resolveFix(r, navaids, waypoints)
			switch src {
			case fromNavaid:
				report.ResolvedFromNavaid++
			case fromWaypoint:
				report.ResolvedFromWaypoint++
			default:
				report.MissingSegments++
				missing.Add(r.FixID, struct{}{})
				continue
			}
			segments = append(segments, domain.AirwaySegment{
				AirwayID:    route,
				Sequence:    len(segments) + 1,
				FixID:       r.FixID,
				Lat:         lat,
				Lon:         lon,
				MinAltitude: r.MinAltitude,
				MaxAltitude: r.MaxAltitude,
				Direction:   r.Direction,
			})
		}

		if len(segments) < minAirwaySegments {
			report.DroppedAirways++
			logger.Debug("airway dropped", "airway", route, "resolved_segments", len(segments))
			continue
		}

		first, last := segments[0].FixID, segments[len(segments)-1].FixID
		db.Set(route, domain.Airway{
			ID:          route,
			Type:        recs[0].Type,
			Description: fmt.Sprintf("%s to %s", displayName(first, navaids), displayName(last, navaids)),
			Segments:    segments,
		})
		report.Airways++
		report.Segments += len(segments)
	}
	report.Unresolved = missing.Keys()

	return db, report, nil
}

type regionKey struct{ id, region string }

// waypointIndex keeps the first waypoint seen for each identifier, and for
// each identifier within an ICAO region. CIFP reuses waypoint identifiers
// across regions.
type waypointIndex struct {
	byID     map[string]arinc424.WaypointRecord
	byRegion map[regionKey]arinc424.WaypointRecord
}

func newWaypointIndex() *waypointIndex {
	return &waypointIndex{
		byID:     make(map[string]arinc424.WaypointRecord),
		byRegion: make(map[regionKey]arinc424.WaypointRecord),
	}
}

func (x *waypointIndex) add(w arinc424.WaypointRecord) {
	if _, seen := x.byID[w.ID]; !seen {
		x.byID[w.ID] = w
	}
	k := regionKey{w.ID, w.Region}
	if _, seen := x.byRegion[k]; !seen {
		x.byRegion[k] = w
	}
}

// lookup prefers the waypoint in region and falls back to the first one
// seen under id.
func (x *waypointIndex) lookup(id, region string) (arinc424.WaypointRecord, bool) {
	if region != "" {
		if w, ok := x.byRegion[regionKey{id, region}]; ok {
			return w, true
		}
	}
	w, ok := x.byID[id]
	return w, ok
}

func resolveFix(r arinc424.AirwayRecord, navaids map[string]domain.Navaid, waypoints *waypointIndex) (lat, lon float64, src fixSource) {
	if n, ok := navaids[r.FixID]; ok {
		return n.Lat, n.Lon, fromNavaid
	}
	if w, ok := waypoints.lookup(r.FixID, r.FixRegion); ok {
		return w.Lat, w.Lon, fromWaypoint
	}
	return 0, 0, unresolved
}

// displayName prefers the navaid's name and falls back to the fix identifier.
func displayName(id string, navaids map[string]domain.Navaid) string {
	if n, ok := navaids[id]; ok && strings.TrimSpace(n.Name) != "" {
		return n.Name
	}
	return id
}
