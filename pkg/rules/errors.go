package rules

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNoExposure is returned by exposure accessors when the data carries no
// attached exposure.
var ErrNoExposure = errors.New("no exposure attached")

// AmbiguousPackTypeError reports that a pack's result shape could not be
// determined: guessing is disabled and no type was declared, or the
// structural signals of the result are inconclusive.
type AmbiguousPackTypeError struct {
	Pack   string
	Reason string
}

func (e *AmbiguousPackTypeError) Error() string {
	msg := fmt.Sprintf("ambiguous pack type for %q", e.Pack)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// NonLogicalRuleResultError reports a rule column whose values are not
// boolean verdicts.
type NonLogicalRuleResultError struct {
	Pack  string
	Rule  string
	Value any
}

func (e *NonLogicalRuleResultError) Error() string {
	return fmt.Sprintf("pack %q rule %q produced non-logical value %v (%T)",
		e.Pack, e.Rule, e.Value, e.Value)
}

// PackExecutionError reports that a pack body itself failed or panicked.
type PackExecutionError struct {
	Pack string
	Err  error
}

func (e *PackExecutionError) Error() string {
	return fmt.Sprintf("pack %q failed: %v", e.Pack, e.Err)
}

func (e *PackExecutionError) Unwrap() error { return e.Err }

// KeyMismatchError reports inconsistent row-identity state: the tracked
// keys no longer line up with the data they were assigned to.
type KeyMismatchError struct {
	WantRows int
	GotKeys  int
}

func (e *KeyMismatchError) Error() string {
	return fmt.Sprintf("row key mismatch: %d keys tracked for %d rows", e.GotKeys, e.WantRows)
}

// RuleViolationError is raised by the breaker assertion. It carries the
// offending report subset.
type RuleViolationError struct {
	Breakers []ReportRow
}

func (e *RuleViolationError) Error() string {
	type key struct{ pack, rule string }
	counts := make(map[key]int)
	for _, r := range e.Breakers {
		counts[key{r.Pack, r.Rule}]++
	}
	keys := make([]key, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].pack != keys[j].pack {
			return keys[i].pack < keys[j].pack
		}
		return keys[i].rule < keys[j].rule
	})

	msg := fmt.Sprintf("%d rule breaker(s) found:", len(e.Breakers))
	for _, k := range keys {
		msg += fmt.Sprintf(" %s/%s (%d);", k.pack, k.rule, counts[k])
	}
	return msg
}
