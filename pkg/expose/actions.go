package expose

// actions.go - Post-exposure trigger/actor evaluation

import "github.com/kieroneil/ruler/pkg/rules"

// Trigger decides whether an action fires for exposed data.
type Trigger func(*Exposed) bool

// Actor performs the action. It may carry out side effects and transform
// or pass through its input.
type Actor func(*Exposed) (*Exposed, error)

// Act evaluates trigger over the exposed data. When the trigger does not
// fire, the input is returned unchanged with no side effects; otherwise
// the actor's result is returned verbatim.
func Act(ex *Exposed, trigger Trigger, actor Actor) (*Exposed, error) {
	if !trigger(ex) {
		return ex, nil
	}
	return actor(ex)
}

// AnyBreaker reports whether the attached report contains at least one
// rule violation. Unexposed data has no breakers.
func AnyBreaker(ex *Exposed) bool {
	return len(breakers(ex)) > 0
}

// AssertAnyBreaker raises a RuleViolationError when any rule violation
// exists in the attached report, and returns the input unchanged
// otherwise.
func AssertAnyBreaker(ex *Exposed) (*Exposed, error) {
	return Act(ex, AnyBreaker, func(ex *Exposed) (*Exposed, error) {
		return nil, &rules.RuleViolationError{Breakers: breakers(ex)}
	})
}

func breakers(ex *Exposed) []rules.ReportRow {
	report, err := ex.Report()
	if err != nil {
		return nil
	}
	var out []rules.ReportRow
	for _, r := range report {
		if r.Verdict {
			out = append(out, r)
		}
	}
	return out
}
