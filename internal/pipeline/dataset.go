package pipeline

import (
	"iter"

	"github.com/couchcryptid/aero-refdb/internal/domain"
)

// Database names, also used as output file stems, topic suffixes and table names.
const (
	DatabaseAirports = "airports"
	DatabaseAirways  = "airways"
	DatabaseFixes    = "fixes"
	DatabaseAliases  = "aliases"
)

// Dataset is one built database ready to publish. Value marshals to the
// whole database; Entries walks it one keyed entry at a time in insertion order.
type Dataset struct {
	Meta    domain.BuildMeta
	Len     int
	Value   any
	Entries iter.Seq2[string, any]
	Report  domain.Report
}

// NewDataset wraps a built table and its report, stamping the build time.
func NewDataset[V any](database, source string, table *domain.Table[V], report domain.Report) Dataset {
	return Dataset{
		Meta:  domain.NewBuildMeta(database, source),
		Len:   table.Len(),
		Value: table,
		Entries: func(yield func(string, any) bool) {
			for k, v := range table.All() {
				if !yield(k, v) {
					return
				}
			}
		},
		Report: report,
	}
}

// Name returns the database name.
func (d Dataset) Name() string {
	return d.Meta.Database
}
