package main

import (
	"errors"
	"fmt"

	"github.com/couchcryptid/aero-refdb/internal/validate"
	"github.com/spf13/cobra"
)

var errValidationFailed = errors.New("validation failed")

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [dir]",
		Short: "Re-check the structural invariants of built databases",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.cfg.OutputDir
			if len(args) == 1 {
				dir = args[0]
			}

			dbs, err := validate.Load(dir)
			if err != nil {
				a.logger.Error("failed to load databases", "dir", dir, "error", err)
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Validating %s\n\n", dir)
			if !validate.Print(out, validate.Run(dbs)) {
				fmt.Fprintln(out, "\nVALIDATION FAILED")
				return errValidationFailed
			}
			fmt.Fprintln(out, "\nALL CHECKS PASSED")
			return nil
		},
	}
}
