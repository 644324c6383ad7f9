package normalize

import (
	"log/slog"

	"github.com/couchcryptid/aero-refdb/internal/domain"
)

// ResolveAliases builds the identifier-to-primary map for the airport
// database. Every primary is registered to itself before any alias, so an
// alias can never claim another airport's primary identifier. Conflicts are
// reported and the first registration is kept.
func ResolveAliases(airports *domain.Table[domain.Airport], logger *slog.Logger) (*domain.AliasMap, domain.AliasReport) {
	report := domain.AliasReport{ConflictList: []domain.Conflict{}}
	m := domain.NewAliasMap()

	for id := range airports.All() {
		m.Register(id, id)
	}

	for id, ap := range airports.All() {
		for _, alias := range ap.Aliases {
			report.Read++
			report.Aliases++
			if c, conflict := m.Register(alias, id); conflict {
				report.Conflicts++
				report.ConflictList = append(report.ConflictList, c)
				logger.Debug("alias conflict",
					"alias", c.Alias,
					"existing_primary", c.ExistingPrimary,
					"new_primary", c.NewPrimary,
				)
			}
		}
	}
	report.Registered = m.Len() - airports.Len()

	return m, report
}
