package nolint

import (
	"strings"
	"unicode"

	"github.com/Wladim1r/nolintfmt/internal/checks"
)

// DefaultSeparator goes between "," and the next check when a list with
// several checks is rendered.
const DefaultSeparator = " "

// Rewriter prunes suppression comments in text against a fixed set of
// enabled checks. It holds no mutable state and never fails.
type Rewriter struct {
	enabled   *checks.Set
	separator string
}

// NewRewriter returns a Rewriter for enabled. The separator replaces
// whatever spacing the source used between list entries.
func NewRewriter(enabled *checks.Set, separator string) *Rewriter {
	if enabled == nil {
		enabled = checks.NewSet()
	}
	return &Rewriter{enabled: enabled, separator: separator}
}

// Result describes one Apply call.
type Result struct {
	Text string
	// Rewritten counts lines whose content changed but which were kept.
	Rewritten int
	// Deleted counts lines removed because nothing was left on them.
	Deleted int
}

// Changed reports whether Apply touched any line.
func (r Result) Changed() bool {
	return r.Rewritten > 0 || r.Deleted > 0
}

// Rewrite returns text with every suppression comment pruned.
func (r *Rewriter) Rewrite(text string) string {
	return r.Apply(text).Text
}

// Apply rewrites text line by line. Lines are separated by "\n"; a "\r"
// before it stays attached to the line. Surviving lines are collected into
// a fresh slice and joined, so deleting a line never disturbs the others.
func (r *Rewriter) Apply(text string) Result {
	var res Result
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		rewritten, keep := r.RewriteLine(line)
		switch {
		case !keep:
			res.Deleted++
			continue
		case rewritten != line:
			res.Rewritten++
		}
		out = append(out, rewritten)
	}
	res.Text = strings.Join(out, "\n")
	return res
}

// RewriteLine rewrites a single line without its "\n". It returns false
// when the line must be dropped.
//
// Text in front of the comment marker is kept; only the comment portion is
// replaced, and the result loses its trailing whitespace. A line whose
// rewrite is equal to the original, ignoring surrounding whitespace, is
// returned verbatim. Lines without a directive carrying a check list are
// never modified.
func (r *Rewriter) RewriteLine(line string) (string, bool) {
	body, eol := line, ""
	if strings.HasSuffix(body, "\r") {
		body, eol = body[:len(body)-1], "\r"
	}

	touched := false
	next := body
	if c, ok := Parse(body); ok && c.HasList() {
		next = body[:c.Offset] + c.Render(r.enabled, r.separator)
		touched = true
	}
	for emptyListRe.MatchString(next) {
		next = trimRight(emptyListRe.ReplaceAllString(next, ""))
		touched = true
	}
	if !touched {
		return line, true
	}

	next = trimRight(next)
	if next == strings.TrimSpace(body) || next == trimRight(body) {
		return line, true
	}
	if next == "" {
		return "", false
	}
	return next + eol, true
}

func trimRight(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

// Update is a convenience wrapper for a one-off rewrite.
func Update(text string, enabled *checks.Set, separator string) string {
	return NewRewriter(enabled, separator).Rewrite(text)
}
