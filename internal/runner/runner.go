// Package runner applies a nolint.Rewriter to files on disk.
//
// Files are handled one at a time in the order given. The path of every file
// whose content changes (or would change, in dry-run mode) is written to
// Stdout on its own line; a caller turns a non-empty list into a non-zero exit
// status.
package runner

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/Wladim1r/nolintfmt/internal/nolint"
)

// Options controls a run.
type Options struct {
	// NoFix reports changes without writing files.
	NoFix bool
	// Diff prints a unified diff after each changed path.
	Diff bool
	// Verbose prints a status line per file to Stderr.
	Verbose bool

	Stdout io.Writer
	Stderr io.Writer
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path      string
	Changed   bool
	Rewritten int
	Deleted   int
}

// Summary collects the results of a run.
type Summary struct {
	Files []FileResult
}

// Changed returns the paths of changed files in processing order.
func (s Summary) Changed() []string {
	var paths []string
	for _, f := range s.Files {
		if f.Changed {
			paths = append(paths, f.Path)
		}
	}
	return paths
}

// Runner processes files with a fixed Rewriter.
type Runner struct {
	rw   *nolint.Rewriter
	opts Options
}

// New returns a Runner. Nil writers default to os.Stdout and os.Stderr.
func New(rw *nolint.Rewriter, opts Options) *Runner {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	return &Runner{rw: rw, opts: opts}
}

// Run processes paths sequentially and stops at the first I/O error. The
// returned Summary covers every file handled before the error.
func (r *Runner) Run(paths []string) (Summary, error) {
	var sum Summary
	for _, path := range paths {
		res, err := r.ProcessFile(path)
		if err != nil {
			return sum, err
		}
		sum.Files = append(sum.Files, res)
	}
	return sum, nil
}

// ProcessFile rewrites one file, writes it back unless NoFix is set and
// reports it.
func (r *Runner) ProcessFile(path string) (FileResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileResult{}, err
	}
	if info.IsDir() {
		return FileResult{}, fmt.Errorf("%q is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return FileResult{}, fmt.Errorf("reading %q: %w", path, err)
	}

	before := string(data)
	applied := r.rw.Apply(before)
	res := FileResult{
		Path:      path,
		Changed:   applied.Text != before,
		Rewritten: applied.Rewritten,
		Deleted:   applied.Deleted,
	}

	if res.Changed && !r.opts.NoFix {
		if err := os.WriteFile(path, []byte(applied.Text), info.Mode().Perm()); err != nil {
			return res, fmt.Errorf("writing %q: %w", path, err)
		}
	}

	if err := r.report(res, before, applied.Text); err != nil {
		return res, err
	}
	return res, nil
}

var (
	fixColor  = color.New(color.FgYellow, color.Bold)
	okColor   = color.New(color.FgGreen)
	nameColor = color.New(color.Bold)
)

// report prints the changed path on stdout and, when asked, a diff and a
// status line.
//
// Example status lines:
//
//	nolintfmt: FIX src/a.cpp (2 rewritten, 1 deleted)
//	nolintfmt: OK src/b.cpp (0 rewritten, 0 deleted)
func (r *Runner) report(res FileResult, before, after string) error {
	if res.Changed {
		if _, err := fmt.Fprintln(r.opts.Stdout, res.Path); err != nil {
			return err
		}
		if r.opts.Diff {
			if err := writeDiff(r.opts.Stdout, res.Path, before, after); err != nil {
				return err
			}
		}
	}

	if !r.opts.Verbose {
		return nil
	}
	status := okColor.Sprint("OK")
	if res.Changed {
		status = fixColor.Sprint("FIX")
		if r.opts.NoFix {
			status = fixColor.Sprint("WOULD FIX")
		}
	}
	_, err := fmt.Fprintf(
		r.opts.Stderr,
		"nolintfmt: %s %s (%d rewritten, %d deleted)\n",
		status,
		nameColor.Sprint(res.Path),
		res.Rewritten,
		res.Deleted,
	)
	return err
}
