// Package validate re-checks the structural guarantees of built databases:
// aliases, runway headings, airway sequencing and fix placement.
package validate

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/couchcryptid/aero-refdb/internal/adapter/file"
	"github.com/couchcryptid/aero-refdb/internal/domain"
	"github.com/couchcryptid/aero-refdb/internal/normalize"
	"github.com/couchcryptid/aero-refdb/internal/pipeline"
)

// Phase tracks pass/fail for one group of checks.
type Phase struct {
	Name   string
	Errors []string
}

func (p *Phase) errorf(format string, args ...any) {
	p.Errors = append(p.Errors, fmt.Sprintf(format, args...))
}

// Passed reports whether the phase found no violations.
func (p *Phase) Passed() bool { return len(p.Errors) == 0 }

// RunwayEntry keeps headings nullable so a missing one is detectable.
type RunwayEntry struct {
	ID        string   `json:"id"`
	LEHeading *float64 `json:"le_heading"`
	HEHeading *float64 `json:"he_heading"`
}

// AirportEntry is the subset of an airport record the checks inspect.
type AirportEntry struct {
	ID      string        `json:"id"`
	Aliases []string      `json:"aliases"`
	Runways []RunwayEntry `json:"runways"`
}

// Databases is the built output being validated.
type Databases struct {
	Airports *domain.Table[AirportEntry]
	Aliases  *domain.Table[string]
	Airways  *domain.Table[domain.Airway]
	Fixes    *domain.Table[domain.NamedFix]
}

// Load reads whichever databases exist in dir. A missing database is skipped;
// any other read error is returned.
func Load(dir string) (*Databases, error) {
	dbs := &Databases{}
	airports := domain.NewTable[AirportEntry]()
	aliases := domain.NewTable[string]()
	airways := domain.NewTable[domain.Airway]()
	fixes := domain.NewTable[domain.NamedFix]()

	found := 0
	for _, t := range []struct {
		name   string
		v      any
		assign func()
	}{
		{pipeline.DatabaseAirports, airports, func() { dbs.Airports = airports }},
		{pipeline.DatabaseAliases, aliases, func() { dbs.Aliases = aliases }},
		{pipeline.DatabaseAirways, airways, func() { dbs.Airways = airways }},
		{pipeline.DatabaseFixes, fixes, func() { dbs.Fixes = fixes }},
	} {
		err := file.ReadDatabase(dir, t.name, t.v)
		if errors.Is(err, domain.ErrMissingInput) {
			continue
		}
		if err != nil {
			return nil, err
		}
		t.assign()
		found++
	}
	if found == 0 {
		return nil, fmt.Errorf("%w: no databases in %s", domain.ErrMissingInput, dir)
	}
	return dbs, nil
}

// Run executes every phase whose database is present.
func Run(dbs *Databases) []*Phase {
	var phases []*Phase
	if dbs.Airports != nil {
		phases = append(phases, checkAirports(dbs.Airports))
		if dbs.Aliases != nil {
			phases = append(phases, checkAliasMap(dbs.Aliases, dbs.Airports))
		}
	}
	if dbs.Airways != nil {
		phases = append(phases, checkAirways(dbs.Airways))
	}
	if dbs.Fixes != nil {
		phases = append(phases, checkFixes(dbs.Fixes))
	}
	return phases
}

func checkAirports(airports *domain.Table[AirportEntry]) *Phase {
	p := &Phase{Name: "Airport aliases and runway headings"}
	for id, ap := range airports.All() {
		if ap.ID != id {
			p.errorf("airport %s: id field is %q", id, ap.ID)
		}
		seen := make(map[string]bool, len(ap.Aliases))
		for _, a := range ap.Aliases {
			if a == id {
				p.errorf("airport %s: aliases include the primary identifier", id)
			}
			if seen[a] {
				p.errorf("airport %s: duplicate alias %s", id, a)
			}
			seen[a] = true
		}
		if ap.Runways == nil {
			p.errorf("airport %s: runways is null", id)
		}
		for _, rw := range ap.Runways {
			if rw.LEHeading == nil || rw.HEHeading == nil {
				p.errorf("airport %s runway %s: missing heading", id, rw.ID)
			}
		}
	}
	return p
}

func checkAliasMap(aliases *domain.Table[string], airports *domain.Table[AirportEntry]) *Phase {
	p := &Phase{Name: "Alias map resolution"}
	for id := range airports.All() {
		if primary, ok := aliases.Get(id); !ok || primary != id {
			p.errorf("primary %s does not map to itself", id)
		}
	}
	for alias, primary := range aliases.All() {
		if _, ok := airports.Get(primary); !ok {
			p.errorf("alias %s points at unknown airport %s", alias, primary)
		}
	}
	return p
}

func checkAirways(airways *domain.Table[domain.Airway]) *Phase {
	p := &Phase{Name: "Airway segment sequencing"}
	for id, aw := range airways.All() {
		if !strings.HasPrefix(id, "V") || aw.Type != domain.AirwayTypeVictor {
			p.errorf("airway %s: not a Victor airway (type %s)", id, aw.Type)
		}
		if len(aw.Segments) < 2 {
			p.errorf("airway %s: %d segments, want at least 2", id, len(aw.Segments))
		}
		for i, s := range aw.Segments {
			if s.Sequence != i+1 {
				p.errorf("airway %s segment %d: sequence %d", id, i, s.Sequence)
			}
			if s.AirwayID != id {
				p.errorf("airway %s segment %d: airway_id %q", id, i, s.AirwayID)
			}
		}
	}
	return p
}

func checkFixes(fixes *domain.Table[domain.NamedFix]) *Phase {
	p := &Phase{Name: "Named fix placement"}
	for id, fix := range fixes.All() {
		if n := len(id); n < 2 || n > 5 {
			p.errorf("fix %s: identifier length %d", id, n)
		}
		if !normalize.InCONUS(fix.Lat, fix.Lon) {
			p.errorf("fix %s: %.6f,%.6f outside CONUS", id, fix.Lat, fix.Lon)
		}
		if !roundedTo6(fix.Lat) || !roundedTo6(fix.Lon) {
			p.errorf("fix %s: coordinates not rounded to 6 decimals", id)
		}
	}
	return p
}

func roundedTo6(v float64) bool {
	return math.Round(v*1e6)/1e6 == v
}

// Print writes a pass/fail summary followed by each failure. It returns true
// when every phase passed.
func Print(w io.Writer, phases []*Phase) bool {
	allPassed := true
	for _, p := range phases {
		status := "PASS"
		if !p.Passed() {
			status = fmt.Sprintf("FAIL (%d errors)", len(p.Errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-42s %s\n", p.Name, status)
	}

	for _, p := range phases {
		if p.Passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.Name)
		for i, e := range p.Errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}
	return allPassed
}
