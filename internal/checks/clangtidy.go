package checks

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// DefaultConfigFile is the conventional clang-tidy configuration file name.
const DefaultConfigFile = ".clang-tidy"

// DefaultBinaryName is the executable looked up on PATH when no binary is
// given explicitly.
const DefaultBinaryName = "clang-tidy"

// listingHeader introduces the list of enabled checks in the output of
// clang-tidy --list-checks.
const listingHeader = "Enabled checks:"

// ErrConfig is the sentinel wrapped by every ConfigError.
var ErrConfig = errors.New("clang-tidy configuration error")

// ConfigError reports that the enabled checks could not be resolved. It is
// fatal for a run and carries clang-tidy's own diagnostic when there is one.
type ConfigError struct {
	Op     string
	Path   string
	Stderr string
	Err    error
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Path != "" {
		fmt.Fprintf(&b, " %q", e.Path)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if msg := strings.TrimSpace(e.Stderr); msg != "" {
		b.WriteString("\n")
		b.WriteString(msg)
	}
	return b.String()
}

func (e *ConfigError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrConfig}
	}
	return []error{ErrConfig, e.Err}
}

// LookPathFunc finds an executable by name, like exec.LookPath.
type LookPathFunc func(file string) (string, error)

// ExecFunc runs name with args and returns what it wrote to stdout and
// stderr. A non-zero exit must be reported as an error.
type ExecFunc func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

// FindBinary returns the path of clang-tidy as found by lookPath, or an
// empty string when it is not installed. A nil lookPath means exec.LookPath.
func FindBinary(lookPath LookPathFunc) string {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	path, err := lookPath(DefaultBinaryName)
	if err != nil {
		return ""
	}
	return path
}

// RunCommand is the default ExecFunc.
func RunCommand(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// ClangTidy resolves enabled checks by running
// "clang-tidy --list-checks --config-file <ConfigFile>".
type ClangTidy struct {
	// Binary is the path to the clang-tidy executable.
	Binary string
	// ConfigFile is the path to the .clang-tidy file to evaluate.
	ConfigFile string
	// Exec runs the binary. Nil means RunCommand.
	Exec ExecFunc
}

// EnabledChecks returns the checks clang-tidy reports as enabled, in the
// order it lists them.
func (c *ClangTidy) EnabledChecks(ctx context.Context) ([]string, error) {
	if c.Binary == "" {
		return nil, &ConfigError{Op: "clang-tidy binary not found", Err: fmt.Errorf("%s is not on PATH", DefaultBinaryName)}
	}
	if _, err := os.Stat(c.Binary); err != nil {
		return nil, &ConfigError{Op: "clang-tidy binary not found", Path: c.Binary, Err: err}
	}
	if _, err := os.Stat(c.ConfigFile); err != nil {
		return nil, &ConfigError{Op: "clang-tidy configuration not found", Path: c.ConfigFile, Err: err}
	}

	run := c.Exec
	if run == nil {
		run = RunCommand
	}
	stdout, stderr, err := run(ctx, c.Binary, "--list-checks", "--config-file", c.ConfigFile)
	if err != nil {
		return nil, &ConfigError{Op: "running clang-tidy", Path: c.Binary, Stderr: string(stderr), Err: err}
	}

	names, err := ParseListing(stdout)
	if err != nil {
		return nil, &ConfigError{Op: "reading clang-tidy output", Path: c.Binary, Stderr: string(stderr), Err: err}
	}
	return names, nil
}

// Resolve builds the enabled Set: clang-tidy's checks followed by extra,
// appended verbatim.
func (c *ClangTidy) Resolve(ctx context.Context, extra ...string) (*Set, error) {
	names, err := c.EnabledChecks(ctx)
	if err != nil {
		return nil, err
	}
	return NewSet(names...).With(extra...), nil
}

// ParseListing extracts check names from clang-tidy --list-checks output:
// every non-blank line after the "Enabled checks:" header, trimmed. Output
// without the header is an error; a header followed by nothing yields an
// empty, non-nil list.
func ParseListing(out []byte) ([]string, error) {
	names := []string{}
	inChecks := false

	sc := bufio.NewScanner(bytes.NewReader(out))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == listingHeader:
			inChecks = true
		case inChecks && line != "":
			names = append(names, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !inChecks {
		return nil, fmt.Errorf("no %q line in output", listingHeader)
	}
	return names, nil
}
