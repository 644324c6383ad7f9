package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/couchcryptid/aero-refdb/internal/domain"
	"github.com/couchcryptid/aero-refdb/internal/normalize"
)

// Opener opens a named input for reading. A missing input is reported as an
// error wrapping domain.ErrMissingInput.
type Opener interface {
	Open(path string) (io.ReadCloser, error)
}

// openAll opens every path or none, so a build never starts with an input missing.
func openAll(op Opener, paths ...string) ([]io.ReadCloser, error) {
	opened := make([]io.ReadCloser, 0, len(paths))
	for _, p := range paths {
		rc, err := op.Open(p)
		if err != nil {
			closeAll(opened)
			return nil, err
		}
		opened = append(opened, rc)
	}
	return opened, nil
}

func closeAll(rcs []io.ReadCloser) {
	for _, rc := range rcs {
		rc.Close() //nolint:errcheck // read-only inputs
	}
}

// Airports builds the airport database and the alias map derived from it.
func Airports(op Opener, airportsPath, runwaysPath string, logger *slog.Logger) Builder {
	return BuilderFunc(func(_ context.Context) ([]Dataset, error) {
		in, err := openAll(op, airportsPath, runwaysPath)
		if err != nil {
			return nil, err
		}
		defer closeAll(in)

		airports, report, err := normalize.BuildAirports(in[0], in[1], logger)
		if err != nil {
			return nil, err
		}
		aliases, aliasReport := normalize.ResolveAliases(airports, logger)

		return []Dataset{
			NewDataset(DatabaseAirports, airportsPath, airports, report),
			NewDataset(DatabaseAliases, airportsPath, aliases.Table(), aliasReport),
		}, nil
	})
}

// Aliases rebuilds the alias map from an already emitted airport database.
func Aliases(op Opener, airportsDBPath string, logger *slog.Logger) Builder {
	return BuilderFunc(func(_ context.Context) ([]Dataset, error) {
		in, err := openAll(op, airportsDBPath)
		if err != nil {
			return nil, err
		}
		defer closeAll(in)

		airports := domain.NewTable[domain.Airport]()
		if err := json.NewDecoder(in[0]).Decode(airports); err != nil {
			return nil, fmt.Errorf("decode airport database %s: %w", airportsDBPath, err)
		}
		aliases, report := normalize.ResolveAliases(airports, logger)

		return []Dataset{NewDataset(DatabaseAliases, airportsDBPath, aliases.Table(), report)}, nil
	})
}

// Airways builds the Victor airway database from a CIFP file, resolving fixes
// against a previously built navaid database.
func Airways(op Opener, cifpPath, navaidDBPath string, logger *slog.Logger) Builder {
	return BuilderFunc(func(_ context.Context) ([]Dataset, error) {
		in, err := openAll(op, cifpPath, navaidDBPath)
		if err != nil {
			return nil, err
		}
		defer closeAll(in)

		navaids, err := ReadNavaids(in[1])
		if err != nil {
			return nil, fmt.Errorf("navaid database %s: %w", navaidDBPath, err)
		}
		logger.Debug("navaid database loaded", "path", navaidDBPath, "navaids", len(navaids))

		airways, report, err := normalize.BuildAirways(in[0], navaids, logger)
		if err != nil {
			return nil, err
		}
		return []Dataset{NewDataset(DatabaseAirways, cifpPath, airways, report)}, nil
	})
}

// Fixes builds the named-fix database from a NASR extract.
func Fixes(op Opener, extractPath string, logger *slog.Logger) Builder {
	return BuilderFunc(func(_ context.Context) ([]Dataset, error) {
		in, err := openAll(op, extractPath)
		if err != nil {
			return nil, err
		}
		defer closeAll(in)

		fixes, report, err := normalize.BuildFixes(in[0], logger)
		if err != nil {
			return nil, err
		}
		return []Dataset{NewDataset(DatabaseFixes, extractPath, fixes, report)}, nil
	})
}

// ReadNavaids decodes a navaid database: a JSON object keyed by identifier.
// Entries without an id take it from their key.
func ReadNavaids(r io.Reader) (map[string]domain.Navaid, error) {
	var navaids map[string]domain.Navaid
	if err := json.NewDecoder(r).Decode(&navaids); err != nil {
		return nil, fmt.Errorf("decode navaids: %w", err)
	}
	for id, n := range navaids {
		if n.ID == "" {
			n.ID = id
			navaids[id] = n
		}
	}
	return navaids, nil
}
