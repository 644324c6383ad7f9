package observability

import (
	"time"

	"github.com/couchcryptid/aero-refdb/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "refdb"

// Metrics holds the Prometheus collectors for database builds and lookups.
type Metrics struct {
	gatherer prometheus.Gatherer

	// Build metrics.
	RecordsRead    *prometheus.CounterVec   // labels: database
	RecordsSkipped *prometheus.CounterVec   // labels: database, reason
	EntriesEmitted *prometheus.GaugeVec     // labels: database
	FixResolutions *prometheus.CounterVec   // labels: source={navaid,waypoint,missing}
	AliasConflicts prometheus.Counter
	BuildDuration  *prometheus.HistogramVec // labels: database
	SinkPublishes  *prometheus.CounterVec   // labels: sink, outcome={success,error}

	// Lookup server metrics.
	LookupRequests *prometheus.CounterVec // labels: database, result={hit,miss}
}

func newCollectors() *Metrics {
	return &Metrics{
		RecordsRead: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_read_total",
			Help:      "Source records read, by database.",
		}, []string{"database"}),
		RecordsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_skipped_total",
			Help:      "Source records dropped, by database and reason.",
		}, []string{"database", "reason"}),
		EntriesEmitted: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "entries_emitted",
			Help:      "Entries in the most recently emitted database.",
		}, []string{"database"}),
		FixResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fix_resolutions_total",
			Help:      "Airway fix coordinate lookups by the source that resolved them.",
		}, []string{"source"}),
		AliasConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alias_conflicts_total",
			Help:      "Airport aliases claimed by more than one primary identifier.",
		}),
		BuildDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Wall time to build and emit one database.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"database"}),
		SinkPublishes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sink_publishes_total",
			Help:      "Database publishes by sink and outcome.",
		}, []string{"sink", "outcome"}),
		LookupRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_requests_total",
			Help:      "Lookup API requests by database and result.",
		}, []string{"database", "result"}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.RecordsRead,
		m.RecordsSkipped,
		m.EntriesEmitted,
		m.FixResolutions,
		m.AliasConflicts,
		m.BuildDuration,
		m.SinkPublishes,
		m.LookupRequests,
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newCollectors()
	prometheus.MustRegister(m.collectors()...)
	m.gatherer = prometheus.DefaultGatherer
	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	reg := prometheus.NewRegistry()
	m := newCollectors()
	reg.MustRegister(m.collectors()...)
	m.gatherer = reg
	return m
}

// Gatherer returns the registry the metrics were registered with.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.gatherer
}

// ObserveBuild records the counters carried by a build report.
func (m *Metrics) ObserveBuild(database string, entries int, report domain.Report, elapsed time.Duration) {
	totals := report.Totals()
	m.RecordsRead.WithLabelValues(database).Add(float64(totals.Read))
	for reason, n := range totals.SkipReasons {
		m.RecordsSkipped.WithLabelValues(database, reason).Add(float64(n))
	}
	m.EntriesEmitted.WithLabelValues(database).Set(float64(entries))
	m.BuildDuration.WithLabelValues(database).Observe(elapsed.Seconds())

	switch r := report.(type) {
	case domain.AirwayReport:
		m.FixResolutions.WithLabelValues("navaid").Add(float64(r.ResolvedFromNavaid))
		m.FixResolutions.WithLabelValues("waypoint").Add(float64(r.ResolvedFromWaypoint))
		m.FixResolutions.WithLabelValues("missing").Add(float64(r.MissingSegments))
	case domain.AliasReport:
		m.AliasConflicts.Add(float64(r.Conflicts))
	}
}
