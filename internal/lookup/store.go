// Package lookup serves identifier lookups over built databases.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/couchcryptid/aero-refdb/internal/adapter/file"
	"github.com/couchcryptid/aero-refdb/internal/domain"
	"github.com/couchcryptid/aero-refdb/internal/normalize"
	"github.com/couchcryptid/aero-refdb/internal/pipeline"
)

// Store holds the databases read-only in memory. It is safe for concurrent
// readers because nothing mutates it after Load.
type Store struct {
	airports *domain.Table[domain.Airport]
	aliases  *domain.Table[string]
	airways  *domain.Table[domain.Airway]
	fixes    *domain.Table[domain.NamedFix]
}

// Load reads the databases written to dir. The alias map is rebuilt from the
// airport database when it was not emitted.
func Load(dir string, logger *slog.Logger) (*Store, error) {
	s := &Store{
		airports: domain.NewTable[domain.Airport](),
		aliases:  domain.NewTable[string](),
		airways:  domain.NewTable[domain.Airway](),
		fixes:    domain.NewTable[domain.NamedFix](),
	}

	for name, v := range map[string]any{
		pipeline.DatabaseAirports: s.airports,
		pipeline.DatabaseAirways:  s.airways,
		pipeline.DatabaseFixes:    s.fixes,
	} {
		if err := file.ReadDatabase(dir, name, v); err != nil {
			return nil, fmt.Errorf("load %s: %w", name, err)
		}
	}

	err := file.ReadDatabase(dir, pipeline.DatabaseAliases, s.aliases)
	switch {
	case errors.Is(err, domain.ErrMissingInput):
		m, _ := normalize.ResolveAliases(s.airports, logger)
		s.aliases = m.Table()
		logger.Info("alias database not found, rebuilt from airports", "aliases", s.aliases.Len())
	case err != nil:
		return nil, fmt.Errorf("load %s: %w", pipeline.DatabaseAliases, err)
	}

	logger.Info("databases loaded",
		"dir", dir,
		"airports", s.airports.Len(),
		"aliases", s.aliases.Len(),
		"airways", s.airways.Len(),
		"fixes", s.fixes.Len(),
	)
	return s, nil
}

// NewStore builds a Store from tables already in memory.
func NewStore(airports *domain.Table[domain.Airport], aliases *domain.Table[string], airways *domain.Table[domain.Airway], fixes *domain.Table[domain.NamedFix]) *Store {
	return &Store{airports: airports, aliases: aliases, airways: airways, fixes: fixes}
}

func key(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// Airport looks up an airport by its primary identifier or any alias.
func (s *Store) Airport(id string) (domain.Airport, bool) {
	primary, ok := s.aliases.Get(key(id))
	if !ok {
		primary = key(id)
	}
	return s.airports.Get(primary)
}

func (s *Store) Airway(id string) (domain.Airway, bool) {
	return s.airways.Get(key(id))
}

func (s *Store) Fix(id string) (domain.NamedFix, bool) {
	return s.fixes.Get(key(id))
}

// CheckReadiness reports an error until every database has entries.
func (s *Store) CheckReadiness(_ context.Context) error {
	var empty []string
	if s.airports.Len() == 0 {
		empty = append(empty, pipeline.DatabaseAirports)
	}
	if s.airways.Len() == 0 {
		empty = append(empty, pipeline.DatabaseAirways)
	}
	if s.fixes.Len() == 0 {
		empty = append(empty, pipeline.DatabaseFixes)
	}
	if len(empty) > 0 {
		return fmt.Errorf("empty databases: %s", strings.Join(empty, ", "))
	}
	return nil
}
