package rules

import (
	"fmt"
	"regexp"
)

// DefaultMarker is the marker of the default rule separator. Column and
// cell packs compose column names as "<rule><marker><variable>".
const DefaultMarker = "._."

// Separator splits a composite column name into its rule and variable
// parts. The zero value is not usable; construct one with NewSeparator,
// InsidePunct or DefaultSeparator.
type Separator struct {
	pattern string
	re      *regexp.Regexp
}

// NewSeparator compiles a separator from a regular expression. The
// leftmost match splits a name into rule (prefix) and variable (suffix).
func NewSeparator(pattern string) (Separator, error) {
	if pattern == "" {
		return Separator{}, fmt.Errorf("empty separator pattern")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Separator{}, fmt.Errorf("invalid separator pattern %q: %w", pattern, err)
	}
	return Separator{pattern: pattern, re: re}, nil
}

// InsidePunct builds a separator matching the literal marker surrounded by
// any run of non-alphanumeric characters. The padding tolerates naming
// conventions that insert extra punctuation when composing names, e.g.
// "rule_._.var" still splits into ("rule", "var").
func InsidePunct(marker string) Separator {
	pattern := "[^[:alnum:]]*" + regexp.QuoteMeta(marker) + "[^[:alnum:]]*"
	re := regexp.MustCompile(pattern)
	return Separator{pattern: pattern, re: re}
}

// DefaultSeparator returns the separator for the default marker.
func DefaultSeparator() Separator {
	return InsidePunct(DefaultMarker)
}

// IsZero reports whether the separator is unconstructed.
func (s Separator) IsZero() bool { return s.re == nil }

// Pattern returns the compiled pattern source.
func (s Separator) Pattern() string { return s.pattern }

// Split splits a composite name at the leftmost separator match. It
// returns ok=false when the name is not composite: no match, or a match
// that would leave the rule or variable part empty.
func (s Separator) Split(name string) (rule, variable string, ok bool) {
	loc := s.re.FindStringIndex(name)
	if loc == nil {
		return name, "", false
	}
	rule, variable = name[:loc[0]], name[loc[1]:]
	if rule == "" || variable == "" {
		return name, "", false
	}
	return rule, variable, true
}

// Compose builds a composite column name from a rule and a variable using
// the default marker. It is the inverse of DefaultSeparator().Split for
// alphanumeric names.
func Compose(rule, variable string) string {
	return rule + DefaultMarker + variable
}
