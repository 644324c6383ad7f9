// Command refdb builds the aeronautical reference databases and serves lookups
// against them.
package main

import (
	"log/slog"
	"os"

	"github.com/couchcryptid/aero-refdb/internal/config"
	"github.com/couchcryptid/aero-refdb/internal/observability"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

// newMetrics registers collectors on the default registry, which allows one
// registration per process.
var newMetrics = observability.NewMetrics

// app carries what every subcommand needs once configuration has loaded.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *observability.Metrics
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "refdb",
		Short: "Build aeronautical reference databases from public FAA and community extracts",
		Long: `refdb normalizes airport, runway, airway and named-fix extracts into
keyed JSON databases for offline flight-planning tools.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// A missing .env is normal; the process environment still applies.
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				slog.Error("failed to load config", "error", err)
				return err
			}
			a.cfg = cfg
			a.logger = observability.NewLogger(cfg)
			a.metrics = newMetrics()
			return nil
		},
	}

	rootCmd.AddCommand(
		newAirportsCmd(a),
		newAirwaysCmd(a),
		newFixesCmd(a),
		newAliasesCmd(a),
		newValidateCmd(a),
		newServeCmd(a),
		newFetchCIFPCmd(a),
	)
	return rootCmd
}
