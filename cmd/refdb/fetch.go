package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/couchcryptid/aero-refdb/internal/adapter/faa"
	"github.com/spf13/cobra"
)

func newFetchCIFPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch-cifp <dest>",
		Short: "Download the current FAA CIFP cycle and extract " + faa.CIFPFilename,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			dest := args[0]
			if info, err := os.Stat(dest); err == nil && info.IsDir() {
				dest = filepath.Join(dest, faa.CIFPFilename)
			}

			client := faa.NewClient(a.cfg.CIFPPageURL, a.cfg.FetchTimeout, a.logger)
			data, err := client.Download(cmd.Context())
			if err != nil {
				a.logger.Error("cifp download failed", "error", err)
				return err
			}
			if err := os.WriteFile(dest, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", dest, err)
			}
			a.logger.Info("cifp written", "path", dest, "bytes", len(data))
			return nil
		},
	}
}
