package checks

import (
	"regexp"
	"strings"
)

// Pattern is a check name glob where '*' stands for any (possibly empty)
// sequence of characters. Every other character is literal and a match must
// cover the whole candidate string.
type Pattern struct {
	glob string
	re   *regexp.Regexp
}

// CompilePattern translates glob into an anchored pattern.
func CompilePattern(glob string) Pattern {
	parts := strings.Split(glob, "*")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return Pattern{
		glob: glob,
		re:   regexp.MustCompile(`^(?s:` + strings.Join(parts, ".*") + `)$`),
	}
}

// IsWildcard reports whether name carries glob syntax.
func IsWildcard(name string) bool {
	return strings.Contains(name, "*")
}

// Match reports whether s is fully covered by the pattern.
func (p Pattern) Match(s string) bool {
	return p.re.MatchString(s)
}

func (p Pattern) String() string {
	return p.glob
}
