package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newChecksCmd(e env) *cobra.Command {
	return &cobra.Command{
		Use:   "checks",
		Short: "Print the checks treated as enabled",
		Long: "Print the checks clang-tidy reports as enabled for the configuration, followed by\n" +
			"any --extra-checks, one per line. This is the set NOLINT comments are matched against.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			enabled, err := resolveEnabled(cmd.Context(), cfg, e)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range enabled.Names() {
				if _, err := fmt.Fprintln(out, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
