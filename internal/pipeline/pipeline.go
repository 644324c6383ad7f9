package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/aero-refdb/internal/domain"
	"github.com/couchcryptid/aero-refdb/internal/observability"
)

// Builder produces the datasets of one build. It returns an error only when
// an input is missing or unreadable; bad records are counted in each
// dataset's report.
type Builder interface {
	Build(ctx context.Context) ([]Dataset, error)
}

// BuilderFunc adapts a function to Builder.
type BuilderFunc func(ctx context.Context) ([]Dataset, error)

func (f BuilderFunc) Build(ctx context.Context) ([]Dataset, error) { return f(ctx) }

// Sink publishes a built dataset somewhere.
type Sink interface {
	Name() string
	Publish(ctx context.Context, ds Dataset) error
}

const (
	publishAttempts = 3
	initialBackoff  = 200 * time.Millisecond
	maxBackoff      = 5 * time.Second
)

// Pipeline runs a build and emits its datasets: first to the primary sink,
// whose failure fails the run, then to every optional sink.
type Pipeline struct {
	primary Sink
	sinks   []Sink
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Pipeline. sinks may be empty.
func New(primary Sink, sinks []Sink, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		primary: primary,
		sinks:   sinks,
		logger:  logger,
		metrics: metrics,
	}
}

// Run builds and emits. Nothing is published when the build fails.
func (p *Pipeline) Run(ctx context.Context, b Builder) ([]Dataset, error) {
	start := time.Now()

	datasets, err := b.Build(ctx)
	if err != nil {
		return nil, err
	}

	for _, ds := range datasets {
		if err := p.emit(ctx, ds); err != nil {
			return datasets, err
		}
		p.metrics.ObserveBuild(ds.Name(), ds.Len, ds.Report, time.Since(start))
		p.logger.Info("database built", append([]any{"database", ds.Name(), "entries", ds.Len}, ds.Report.Attrs()...)...)
		p.logDiagnostics(ds)
	}
	return datasets, nil
}

// logDiagnostics surfaces the report entries an operator should look at.
func (p *Pipeline) logDiagnostics(ds Dataset) {
	switch r := ds.Report.(type) {
	case domain.AirwayReport:
		for _, id := range r.Unresolved {
			p.logger.Warn("airway fix unresolved", "fix", id)
		}
	case domain.AliasReport:
		for _, c := range r.ConflictList {
			p.logger.Warn("alias conflict",
				"alias", c.Alias,
				"existing_primary", c.ExistingPrimary,
				"new_primary", c.NewPrimary,
			)
		}
	}
}

func (p *Pipeline) emit(ctx context.Context, ds Dataset) error {
	if err := p.primary.Publish(ctx, ds); err != nil {
		p.metrics.SinkPublishes.WithLabelValues(p.primary.Name(), "error").Inc()
		return fmt.Errorf("write %s: %w", ds.Name(), err)
	}
	p.metrics.SinkPublishes.WithLabelValues(p.primary.Name(), "success").Inc()

	var errs []error
	for _, s := range p.sinks {
		if err := p.publishWithRetry(ctx, s, ds); err != nil {
			p.metrics.SinkPublishes.WithLabelValues(s.Name(), "error").Inc()
			p.logger.Error("sink publish failed", "sink", s.Name(), "database", ds.Name(), "error", err)
			errs = append(errs, fmt.Errorf("%s sink: %w", s.Name(), err))
			continue
		}
		p.metrics.SinkPublishes.WithLabelValues(s.Name(), "success").Inc()
	}
	return errors.Join(errs...)
}

// publishWithRetry retries transient sink failures with exponential backoff:
// start at 200ms, double each retry, cap at 5s.
func (p *Pipeline) publishWithRetry(ctx context.Context, s Sink, ds Dataset) error {
	backoff := initialBackoff
	var err error
	for attempt := 1; attempt <= publishAttempts; attempt++ {
		if err = s.Publish(ctx, ds); err == nil {
			return nil
		}
		if attempt == publishAttempts || ctx.Err() != nil {
			break
		}
		p.logger.Warn("sink publish failed, retrying",
			"sink", s.Name(),
			"database", ds.Name(),
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)
		if !sleepWithContext(ctx, backoff) {
			return ctx.Err()
		}
		backoff = nextBackoff(backoff, maxBackoff)
	}
	return err
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
