package domain

// Counts is the record bookkeeping every builder reports.
type Counts struct {
	Read        int            `json:"read" yaml:"read"`
	Skipped     int            `json:"skipped" yaml:"skipped"`
	SkipReasons map[string]int `json:"skip_reasons,omitempty" yaml:"skip_reasons,omitempty"`
}

// Skip counts one dropped record under reason.
func (c *Counts) Skip(reason string) {
	c.Skipped++
	if c.SkipReasons == nil {
		c.SkipReasons = make(map[string]int)
	}
	c.SkipReasons[reason]++
}

// Totals returns the shared counters.
func (c Counts) Totals() Counts {
	return c
}

// Report is the structured result of one build, returned instead of printed.
type Report interface {
	Totals() Counts
	// Attrs returns slog key/value pairs summarizing the build.
	Attrs() []any
}

// AirportReport summarizes an airport database build.
type AirportReport struct {
	Counts           `yaml:",inline"`
	Airports         int `json:"airports" yaml:"airports"`
	Aliases          int `json:"aliases" yaml:"aliases"`
	Runways          int `json:"runways" yaml:"runways"`
	RunwayRows       int `json:"runway_rows" yaml:"runway_rows"`
	OrphanRunwayRows int `json:"orphan_runway_rows" yaml:"orphan_runway_rows"`
}

func (r AirportReport) Attrs() []any {
	return []any{
		"read", r.Read,
		"skipped", r.Skipped,
		"airports", r.Airports,
		"aliases", r.Aliases,
		"runways", r.Runways,
		"orphan_runway_rows", r.OrphanRunwayRows,
	}
}

// AirwayReport summarizes an airway database build.
type AirwayReport struct {
	Counts               `yaml:",inline"`
	WaypointRecords      int      `json:"waypoint_records" yaml:"waypoint_records"`
	AirwayRecords        int      `json:"airway_records" yaml:"airway_records"`
	OutOfScopeRecords    int      `json:"out_of_scope_records" yaml:"out_of_scope_records"`
	Airways              int      `json:"airways" yaml:"airways"`
	Segments             int      `json:"segments" yaml:"segments"`
	ResolvedFromNavaid   int      `json:"resolved_from_navaid" yaml:"resolved_from_navaid"`
	ResolvedFromWaypoint int      `json:"resolved_from_waypoint" yaml:"resolved_from_waypoint"`
	MissingSegments      int      `json:"missing_segments" yaml:"missing_segments"`
	DroppedAirways       int      `json:"dropped_airways" yaml:"dropped_airways"`
	Unresolved           []string `json:"unresolved" yaml:"unresolved"`
}

func (r AirwayReport) Attrs() []any {
	return []any{
		"read", r.Read,
		"skipped", r.Skipped,
		"airways", r.Airways,
		"segments", r.Segments,
		"resolved_from_navaid", r.ResolvedFromNavaid,
		"resolved_from_waypoint", r.ResolvedFromWaypoint,
		"missing_segments", r.MissingSegments,
		"dropped_airways", r.DroppedAirways,
		"unresolved_fixes", len(r.Unresolved),
	}
}

// FixReport summarizes a named-fix database build.
type FixReport struct {
	Counts    `yaml:",inline"`
	Parsed    int    `json:"parsed" yaml:"parsed"`
	IDColumn  string `json:"id_column" yaml:"id_column"`
	LatColumn string `json:"lat_column" yaml:"lat_column"`
	LonColumn string `json:"lon_column" yaml:"lon_column"`
}

func (r FixReport) Attrs() []any {
	return []any{
		"read", r.Read,
		"parsed", r.Parsed,
		"skipped", r.Skipped,
		"id_column", r.IDColumn,
		"lat_column", r.LatColumn,
		"lon_column", r.LonColumn,
	}
}

// AliasReport summarizes alias registration and the conflicts found.
type AliasReport struct {
	Counts       `yaml:",inline"`
	Aliases      int        `json:"aliases" yaml:"aliases"`
	Registered   int        `json:"registered" yaml:"registered"`
	Conflicts    int        `json:"conflicts" yaml:"conflicts"`
	ConflictList []Conflict `json:"conflict_list" yaml:"conflict_list"`
}

func (r AliasReport) Attrs() []any {
	return []any{
		"aliases", r.Aliases,
		"registered", r.Registered,
		"conflicts", r.Conflicts,
	}
}
