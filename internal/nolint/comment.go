// Package nolint rewrites clang-tidy suppression comments so that they only
// name checks that are still enabled.
//
// A suppression comment is "//" followed by one of NOLINT, NOLINTBEGIN,
// NOLINTEND or NOLINTNEXTLINE, optionally followed directly by a
// parenthesized, comma-separated check list and free text:
//
//	int *p = 0; // NOLINT(modernize-use-nullptr) legacy ABI
//	// NOLINTNEXTLINE(bugprone-*, cert-err58-cpp)
//
// Comments without a check list suppress everything and are never touched.
// The package works on plain text lines and knows nothing about C++.
package nolint

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/Wladim1r/nolintfmt/internal/checks"
)

// Kind is the scope variant of a suppression comment.
type Kind int

const (
	// KindLine is NOLINT: suppresses on the same line.
	KindLine Kind = iota
	// KindBegin is NOLINTBEGIN: opens a suppressed region.
	KindBegin
	// KindEnd is NOLINTEND: closes a suppressed region.
	KindEnd
	// KindNextLine is NOLINTNEXTLINE: suppresses on the following line.
	KindNextLine
)

var kindTokens = [...]string{
	KindLine:     "NOLINT",
	KindBegin:    "NOLINTBEGIN",
	KindEnd:      "NOLINTEND",
	KindNextLine: "NOLINTNEXTLINE",
}

// String returns the directive token as written in source.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindTokens) {
		return "NOLINT?"
	}
	return kindTokens[k]
}

func kindOf(token string) Kind {
	for k, t := range kindTokens {
		if t == token {
			return Kind(k)
		}
	}
	return KindLine
}

// directiveRe matches the leftmost suppression comment on a line. Group 1 is
// the directive token, group 2 the optional "(...)" list, group 3 the
// trailing text.
var directiveRe = regexp.MustCompile(`//\s*(NOLINT(?:BEGIN|END|NEXTLINE)?)(\([^)]*\))?\s*(.*)`)

// emptyListRe matches a directive with a syntactically empty list at the end
// of a line.
var emptyListRe = regexp.MustCompile(`//\s*NOLINT(?:BEGIN|END|NEXTLINE)?\(\s*\)\s*$`)

// Comment is one suppression comment found on a line.
type Comment struct {
	Kind Kind
	// Checks holds the raw, untrimmed entries of the list. It is nil when the
	// comment has no list, which means "suppress all checks".
	Checks []string
	// Trailing is the text after the directive, trimmed.
	Trailing string
	// Offset is the byte offset of "//" in the line.
	Offset int
}

// HasList reports whether the comment names specific checks.
func (c Comment) HasList() bool {
	return c.Checks != nil
}

// Parse finds the first suppression comment in line. It never fails: lines
// without a directive, or with a list that is not directly attached or not
// closed, simply report no list or no comment.
func Parse(line string) (Comment, bool) {
	m := directiveRe.FindStringSubmatchIndex(line)
	if m == nil {
		return Comment{}, false
	}
	c := Comment{
		Kind:     kindOf(line[m[2]:m[3]]),
		Trailing: strings.TrimSpace(line[m[6]:m[7]]),
		Offset:   m[0],
	}
	if m[4] >= 0 {
		list := line[m[4]+1 : m[5]-1]
		c.Checks = strings.Split(list, ",")
	}
	return c, true
}

// Retained returns the list entries, trimmed, that are still enabled, in
// their original order and spelling.
func (c Comment) Retained(enabled *checks.Set) []string {
	var kept []string
	for _, name := range c.Checks {
		name = strings.TrimSpace(name)
		if enabled.Enabled(name) {
			kept = append(kept, name)
		}
	}
	return kept
}

// Render returns the comment rewritten against enabled, or "" when none of
// its checks survive. Multiple checks are joined with "," + separator.
// Comments without a list are rendered unchanged in normalized form.
func (c Comment) Render(enabled *checks.Set, separator string) string {
	var b strings.Builder
	b.WriteString("// ")
	b.WriteString(c.Kind.String())
	if c.HasList() {
		kept := c.Retained(enabled)
		if len(kept) == 0 {
			return ""
		}
		b.WriteByte('(')
		b.WriteString(strings.Join(kept, ","+separator))
		b.WriteByte(')')
	}
	b.WriteByte(' ')
	b.WriteString(c.Trailing)
	return strings.TrimRightFunc(b.String(), unicode.IsSpace)
}
