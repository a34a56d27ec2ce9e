// Package checks models the set of clang-tidy checks enabled for a
// configuration and resolves it by asking clang-tidy itself.
//
// Check names in a set are taken literally: an entry such as "modernize-*"
// is just a string that wildcard names in suppression comments may match,
// it is never expanded.
package checks

import "strings"

// Set is an ordered, read-only collection of enabled check names.
// Duplicates are allowed and harmless.
type Set struct {
	names []string
	exact map[string]struct{}
}

// NewSet builds a Set from names in the given order.
func NewSet(names ...string) *Set {
	s := &Set{
		names: append([]string(nil), names...),
		exact: make(map[string]struct{}, len(names)),
	}
	for _, n := range names {
		s.exact[n] = struct{}{}
	}
	return s
}

// With returns a new Set holding the receiver's names followed by extra.
func (s *Set) With(extra ...string) *Set {
	return NewSet(append(s.Names(), extra...)...)
}

// Names returns a copy of the names in insertion order.
func (s *Set) Names() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.names...)
}

// Len returns the number of entries, duplicates included.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// Enabled reports whether a check name written in a suppression comment
// still refers to something enabled. The name is trimmed first and an empty
// name never matches. Names without '*' need an exact, case-sensitive hit;
// names with '*' match if the glob covers any entry completely.
func (s *Set) Enabled(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || s == nil {
		return false
	}
	if _, ok := s.exact[name]; ok {
		return true
	}
	if !IsWildcard(name) {
		return false
	}
	p := CompilePattern(name)
	for _, n := range s.names {
		if p.Match(n) {
			return true
		}
	}
	return false
}

// ParseList splits a comma-separated check list such as the value of
// --extra-checks. Entries are trimmed and empty entries are dropped.
func ParseList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
