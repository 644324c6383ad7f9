package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/aero-refdb/internal/adapter/http"
	"github.com/couchcryptid/aero-refdb/internal/lookup"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve [dir]",
		Short: "Serve read-only lookups against built databases",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.cfg.OutputDir
			if len(args) == 1 {
				dir = args[0]
			}

			store, err := lookup.Load(dir, a.logger)
			if err != nil {
				a.logger.Error("failed to load databases", "dir", dir, "error", err)
				return err
			}

			srv := httpadapter.NewServer(a.cfg.HTTPAddr, store, a.metrics, a.logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("lookup server listening", "addr", a.cfg.HTTPAddr)
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case <-ctx.Done():
			case err := <-errCh:
				a.logger.Error("http server error", "error", err)
				return err
			}
			a.logger.Info("shutting down")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				a.logger.Error("http server shutdown error", "error", err)
			}
			a.logger.Info("shutdown complete")
			return nil
		},
	}
}
