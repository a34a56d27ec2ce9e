// Command nolintfmt prunes clang-tidy NOLINT comments down to the checks a
// .clang-tidy configuration still enables.
//
// Usage:
//
//	nolintfmt [flags] <file>...
//
// Examples:
//
//	# Rewrite files in place; changed paths are printed and the exit code is 1
//	nolintfmt src/*.cpp
//
//	# Only report what would change, with a diff
//	nolintfmt --no-fix --diff src/main.cpp
//
//	# Treat checks not listed by clang-tidy as enabled
//	nolintfmt --extra-checks clang-diagnostic-error,clang-analyzer-* src/a.cpp
//
//	# Show the enabled checks for a configuration
//	nolintfmt checks --config-file tools/.clang-tidy
//
// Exit codes: 0 when nothing changed, 1 when at least one file changed (or
// would change with --no-fix), 2 when the run could not complete.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/fatih/color"

	"github.com/Wladim1r/nolintfmt/internal/checks"
)

const (
	exitOK      = 0
	exitChanged = 1
	exitFailure = 2
)

// errFilesChanged is returned by the root command when files were (or would
// be) modified. It is a result, not a failure, and is never printed.
var errFilesChanged = errors.New("files were modified")

// env carries the process-wide dependencies of the command tree so that
// tests can replace them.
type env struct {
	lookPath checks.LookPathFunc
	exec     checks.ExecFunc
	stdout   io.Writer
	stderr   io.Writer
}

func defaultEnv() env {
	return env{
		lookPath: exec.LookPath,
		exec:     checks.RunCommand,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
}

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], defaultEnv()))
}

// execute runs the command tree and maps its outcome to an exit code.
func execute(ctx context.Context, args []string, e env) int {
	cmd := newRootCmd(e)
	cmd.SetArgs(args)
	cmd.SetOut(e.stdout)
	cmd.SetErr(e.stderr)

	err := cmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errFilesChanged):
		return exitChanged
	default:
		fmt.Fprintf(e.stderr, "nolintfmt: %s %v\n", color.New(color.FgRed, color.Bold).Sprint("error:"), err)
		return exitFailure
	}
}
