package normalize_test

import (
	"strings"
	"testing"

	"github.com/couchcryptid/aero-refdb/internal/domain"
	"github.com/couchcryptid/aero-refdb/internal/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func airportTable(airports ...domain.Airport) *domain.Table[domain.Airport] {
	t := domain.NewTable[domain.Airport]()
	for _, ap := range airports {
		t.Set(ap.ID, ap)
	}
	return t
}

func TestResolveAliases_FirstRegistrationWins(t *testing.T) {
	airports := airportTable(
		domain.Airport{ID: "KXYZ", Aliases: []string{"ABC", "XYZ"}},
		domain.Airport{ID: "KLMN", Aliases: []string{"ABC", "LMN"}},
	)

	m, report := normalize.ResolveAliases(airports, testLogger())

	primary, ok := m.Resolve("ABC")
	require.True(t, ok)
	assert.Equal(t, "KXYZ", primary)

	assert.Equal(t, 4, report.Aliases)
	assert.Equal(t, 3, report.Registered)
	assert.Equal(t, 1, report.Conflicts)
	assert.Equal(t, []domain.Conflict{
		{Alias: "ABC", ExistingPrimary: "KXYZ", NewPrimary: "KLMN"},
	}, report.ConflictList)
}

func TestResolveAliases_PrimariesMapToThemselves(t *testing.T) {
	airports := airportTable(
		domain.Airport{ID: "KAAA", Aliases: []string{"KBBB"}},
		domain.Airport{ID: "KBBB", Aliases: []string{}},
	)

	m, report := normalize.ResolveAliases(airports, testLogger())

	for _, id := range []string{"KAAA", "KBBB"} {
		primary, ok := m.Resolve(id)
		require.True(t, ok)
		assert.Equal(t, id, primary)
	}
	assert.Equal(t, 1, report.Conflicts, "an alias cannot claim another primary")
	assert.Zero(t, report.Registered)
	assert.Equal(t, []string{"KAAA", "KBBB"}, m.Table().Keys())
}

func TestResolveAliases_NoConflicts(t *testing.T) {
	m, report := normalize.ResolveAliases(airportTable(), testLogger())

	assert.Zero(t, m.Len())
	assert.NotNil(t, report.ConflictList)
	assert.Empty(t, report.ConflictList)
}

func TestResolveAliases_FromBuiltAirports(t *testing.T) {
	airports, runways := airportFixture()
	db, _, err := normalize.BuildAirports(strings.NewReader(airports), strings.NewReader(runways), testLogger())
	require.NoError(t, err)

	m, report := normalize.ResolveAliases(db, testLogger())

	primary, ok := m.Resolve("AAA1")
	require.True(t, ok)
	assert.Equal(t, "KAAA", primary)
	assert.Equal(t, 2, report.Registered)
	assert.Zero(t, report.Conflicts)
}
