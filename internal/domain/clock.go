package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock is a package-level time source so tests can freeze time via SetClock.
// Production code uses the real clock; tests inject a fake for deterministic output.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source for build metadata. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// BuildMeta identifies one build of one database.
type BuildMeta struct {
	Database string    `json:"database" yaml:"database"`
	Source   string    `json:"source" yaml:"source"`
	BuiltAt  time.Time `json:"built_at" yaml:"built_at"`
}

// NewBuildMeta stamps a build with the current time in UTC.
func NewBuildMeta(database, source string) BuildMeta {
	return BuildMeta{Database: database, Source: source, BuiltAt: clock.Now().UTC()}
}
