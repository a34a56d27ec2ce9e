package main

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Version information, overridable at build time via -ldflags.
var (
	Version   = "0.1.0-dev"
	GitCommit = ""
	BuildDate = ""
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			name := color.New(color.FgYellow, color.Bold).Sprint("nolintfmt")
			if _, err := fmt.Fprintf(out, "%s %s (%s)\n", name, Version, runtime.Version()); err != nil {
				return err
			}
			if GitCommit != "" {
				if _, err := fmt.Fprintf(out, "commit: %s\n", GitCommit); err != nil {
					return err
				}
			}
			if BuildDate != "" {
				if _, err := fmt.Fprintf(out, "built:  %s\n", BuildDate); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
