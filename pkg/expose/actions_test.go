package expose_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kieroneil/ruler/pkg/expose"
	"github.com/kieroneil/ruler/pkg/frame"
	"github.com/kieroneil/ruler/pkg/rules"
)

// rows32 builds the 32-row dataset of the assertion scenario.
func rows32() *frame.Frame {
	vals := make([]any, 32)
	for i := range vals {
		vals[i] = int64(i)
	}
	return frame.MustNew(frame.Column{Name: "n", Values: vals})
}

func nrowOver(n int) rules.Pack {
	return rules.Pack{
		Name: "dims",
		Fn: func(f *frame.Frame) (*frame.Frame, error) {
			return frame.New(frame.Column{
				Name:   fmt.Sprintf("nrow_over_%d", n),
				Values: []any{f.NumRows() > n},
			})
		},
	}
}

func TestAssertAnyBreaker_Raises(t *testing.T) {
	out, err := expose.Expose(expose.New(rows32()), []rules.Pack{nrowOver(40)})
	require.NoError(t, err)

	_, err = expose.AssertAnyBreaker(out)
	var violation *rules.RuleViolationError
	require.ErrorAs(t, err, &violation)
	require.Len(t, violation.Breakers, 1)
	assert.Equal(t, "dims", violation.Breakers[0].Pack)
	assert.Equal(t, "nrow_over_40", violation.Breakers[0].Rule)
	assert.Contains(t, violation.Error(), "dims/nrow_over_40")
}

func TestAssertAnyBreaker_PassesThrough(t *testing.T) {
	out, err := expose.Expose(expose.New(rows32()), []rules.Pack{nrowOver(10)})
	require.NoError(t, err)

	same, err := expose.AssertAnyBreaker(out)
	require.NoError(t, err)
	assert.Same(t, out, same, "no breaker returns the input unchanged")
}

func TestAct_TriggerGatesActor(t *testing.T) {
	ex := expose.New(rows32())

	fired := false
	never := func(*expose.Exposed) bool { return false }
	always := func(*expose.Exposed) bool { return true }
	actor := func(in *expose.Exposed) (*expose.Exposed, error) {
		fired = true
		return in, nil
	}

	same, err := expose.Act(ex, never, actor)
	require.NoError(t, err)
	assert.Same(t, ex, same)
	assert.False(t, fired, "actor must not run when the trigger is quiet")

	_, err = expose.Act(ex, always, actor)
	require.NoError(t, err)
	assert.True(t, fired)
}

func TestAnyBreaker_UnexposedData(t *testing.T) {
	assert.False(t, expose.AnyBreaker(expose.New(rows32())))
}
