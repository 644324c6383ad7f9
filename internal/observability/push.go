package observability

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus/push"
)

const pushJob = "refdb"

// Push sends the build metrics to a Prometheus Pushgateway. Batch builds exit
// before any scraper could see them, so this is the only way they get out.
func (m *Metrics) Push(ctx context.Context, gatewayURL, database string) error {
	err := push.New(gatewayURL, pushJob).
		Gatherer(m.gatherer).
		Grouping("database", database).
		PushContext(ctx)
	if err != nil {
		return fmt.Errorf("push metrics to %s: %w", gatewayURL, err)
	}
	return nil
}
