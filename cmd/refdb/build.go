package main

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/couchcryptid/aero-refdb/internal/adapter/file"
	kafkaadapter "github.com/couchcryptid/aero-refdb/internal/adapter/kafka"
	"github.com/couchcryptid/aero-refdb/internal/adapter/mysql"
	"github.com/couchcryptid/aero-refdb/internal/domain"
	"github.com/couchcryptid/aero-refdb/internal/pipeline"
	"github.com/spf13/cobra"
)

func newAirportsCmd(a *app) *cobra.Command {
	var runways string
	cmd := &cobra.Command{
		Use:   "airports <airports.csv>",
		Short: "Build airports.json and aliases.json from the airports and runways extracts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			if runways == "" {
				runways = a.cfg.RunwaysCSV
			}
			if runways == "" {
				runways = filepath.Join(filepath.Dir(args[0]), "runways.csv")
			}
			return a.build(cmd.Context(), pipeline.Airports(file.Inputs{}, args[0], runways, a.logger))
		},
	}
	cmd.Flags().StringVar(&runways, "runways", "", "runways extract (default: RUNWAYS_CSV, else runways.csv beside the airports file)")
	return cmd
}

func newAirwaysCmd(a *app) *cobra.Command {
	var navaids string
	cmd := &cobra.Command{
		Use:   "airways <FAACIFP18>",
		Short: "Build airways.json from the FAA CIFP file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			if navaids == "" {
				navaids = a.cfg.NavaidDB
			}
			return a.build(cmd.Context(), pipeline.Airways(file.Inputs{}, args[0], navaids, a.logger))
		},
	}
	cmd.Flags().StringVar(&navaids, "navaids", "", "prebuilt navaid database (default: NAVAID_DB)")
	return cmd
}

func newFixesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fixes <fixes.csv>",
		Short: "Build fixes.json from a named-fix extract",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return a.build(cmd.Context(), pipeline.Fixes(file.Inputs{}, args[0], a.logger))
		},
	}
}

func newAliasesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "aliases <airports.json>",
		Short: "Rebuild aliases.json from a built airport database",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return a.build(cmd.Context(), pipeline.Aliases(file.Inputs{}, args[0], a.logger))
		},
	}
}

// build runs b through the file writer plus whichever optional sinks are
// configured, then pushes metrics when a Pushgateway is set.
func (a *app) build(ctx context.Context, b pipeline.Builder) error {
	var sinks []pipeline.Sink

	if a.cfg.KafkaEnabled() {
		w := kafkaadapter.NewWriter(a.cfg, a.logger)
		defer func() {
			if err := w.Close(); err != nil {
				a.logger.Error("kafka writer close error", "error", err)
			}
		}()
		sinks = append(sinks, w)
	}

	if a.cfg.DatabaseDSN != "" {
		store, err := mysql.Open(ctx, a.cfg.DatabaseDSN, a.logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				a.logger.Error("mysql close error", "error", err)
			}
		}()
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		sinks = append(sinks, store)
	}

	p := pipeline.New(file.NewWriter(a.cfg), sinks, a.logger, a.metrics)
	datasets, err := p.Run(ctx, b)
	if err != nil {
		if errors.Is(err, domain.ErrMissingInput) {
			a.logger.Error("required input missing", "error", err)
		} else {
			a.logger.Error("build failed", "error", err)
		}
		return err
	}

	if a.cfg.PushgatewayURL != "" {
		for _, ds := range datasets {
			if err := a.metrics.Push(ctx, a.cfg.PushgatewayURL, ds.Name()); err != nil {
				a.logger.Warn("metrics push failed", "database", ds.Name(), "error", err)
			}
		}
	}
	return nil
}
