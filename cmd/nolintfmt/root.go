package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Wladim1r/nolintfmt/internal/checks"
	"github.com/Wladim1r/nolintfmt/internal/config"
	"github.com/Wladim1r/nolintfmt/internal/nolint"
	"github.com/Wladim1r/nolintfmt/internal/runner"
)

func newRootCmd(e env) *cobra.Command {
	root := &cobra.Command{
		Use:   "nolintfmt [flags] <file>...",
		Short: "Remove unused NOLINT comments from C/C++ files",
		Long: "nolintfmt asks clang-tidy which checks a configuration enables and rewrites every\n" +
			"NOLINT, NOLINTBEGIN, NOLINTEND and NOLINTNEXTLINE comment with a check list so that\n" +
			"it names only enabled checks. Comments left without checks are removed.",
		Version:       Version,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			mode, err := cmd.Flags().GetString("color")
			if err != nil {
				return err
			}
			return applyColorMode(mode)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, e)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	pf := root.PersistentFlags()
	pf.String("config-file", checks.DefaultConfigFile,
		"path to the .clang-tidy file used to get the list of enabled checks")
	pf.String("clang-tidy-binary", "",
		"path to the clang-tidy binary (default: clang-tidy found on PATH)")
	pf.String("extra-checks", "",
		"comma-separated checks to treat as enabled in addition to the configuration, e.g. clang-diagnostic-error")
	pf.String("settings", config.DefaultPath, "path to a nolintfmt settings file (.yaml or .toml)")
	pf.String("color", "auto", "colorize output (auto|on|off)")

	f := root.Flags()
	f.Bool("no-fix", false, "do not modify files, only report the ones that would change")
	f.String("separator", nolint.DefaultSeparator,
		"text placed after each comma between checks, e.g. ' ' for '// NOLINT(foo, bar)'")
	f.Bool("diff", false, "print a unified diff for every changed file")
	f.BoolP("verbose", "v", false, "print a status line for every file to stderr")

	root.AddCommand(newChecksCmd(e))
	root.AddCommand(newVersionCmd())
	return root
}

// loadSettings reads the settings file and lets explicitly set flags win.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	path, err := flags.GetString("settings")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if flags.Changed("config-file") {
		if cfg.ConfigFile, err = flags.GetString("config-file"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("clang-tidy-binary") {
		if cfg.ClangTidyBinary, err = flags.GetString("clang-tidy-binary"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("extra-checks") {
		extra, err := flags.GetString("extra-checks")
		if err != nil {
			return nil, err
		}
		cfg.ExtraChecks = append(cfg.ExtraChecks, checks.ParseList(extra)...)
	}
	if flags.Changed("separator") {
		if cfg.Separator, err = flags.GetString("separator"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("diff") {
		if cfg.Diff, err = flags.GetBool("diff"); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// resolveEnabled runs clang-tidy once and appends the extra checks.
func resolveEnabled(ctx context.Context, cfg *config.Config, e env) (*checks.Set, error) {
	bin := cfg.ClangTidyBinary
	if bin == "" {
		bin = checks.FindBinary(e.lookPath)
	}
	tool := &checks.ClangTidy{
		Binary:     bin,
		ConfigFile: cfg.ConfigFile,
		Exec:       e.exec,
	}
	return tool.Resolve(ctx, cfg.ExtraChecks...)
}

func runFix(cmd *cobra.Command, files []string, e env) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	noFix, err := cmd.Flags().GetBool("no-fix")
	if err != nil {
		return err
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return err
	}

	enabled, err := resolveEnabled(cmd.Context(), cfg, e)
	if err != nil {
		return err
	}

	r := runner.New(nolint.NewRewriter(enabled, cfg.Separator), runner.Options{
		NoFix:   noFix,
		Diff:    cfg.Diff,
		Verbose: verbose,
		Stdout:  cmd.OutOrStdout(),
		Stderr:  cmd.ErrOrStderr(),
	})
	sum, err := r.Run(files)
	if err != nil {
		return err
	}
	if len(sum.Changed()) > 0 {
		return errFilesChanged
	}
	return nil
}

func applyColorMode(mode string) error {
	switch mode {
	case "auto", "":
		color.NoColor = color.NoColor || !term.IsTerminal(int(os.Stdout.Fd()))
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}
