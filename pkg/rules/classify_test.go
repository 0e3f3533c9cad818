package rules_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kieroneil/ruler/pkg/frame"
	"github.com/kieroneil/ruler/pkg/rules"
)

func TestClassify_CanonicalShapes(t *testing.T) {
	sep := rules.DefaultSeparator()

	whole := frame.MustNew(
		frame.Column{Name: "nrow_at_least", Values: []any{true}},
	)
	col := frame.MustNew(
		frame.Column{Name: "complete._.x", Values: []any{true}},
		frame.Column{Name: "complete._.y", Values: []any{false}},
	)
	row := frame.MustNew(
		frame.Column{Name: rules.KeyColumn, Values: []any{"1", "2"}},
		frame.Column{Name: "row_complete", Values: []any{true, false}},
	)
	cell := frame.MustNew(
		frame.Column{Name: rules.KeyColumn, Values: []any{"1", "2"}},
		frame.Column{Name: "in_range._.x", Values: []any{true, true}},
	)

	tests := []struct {
		name string
		res  *frame.Frame
		pack rules.Pack
		want rules.PackType
	}{
		{"whole from single row", whole, rules.Pack{Name: "p"}, rules.TypeWhole},
		{"col from composite names", col, rules.Pack{Name: "p"}, rules.TypeCol},
		{"row from key column", row, rules.Pack{Name: "p"}, rules.TypeRow},
		{"cell from key plus composite", cell, rules.Pack{Name: "p"}, rules.TypeCell},
		{"group vars force group", whole, rules.Pack{Name: "p", GroupVars: []string{"g"}}, rules.TypeGroup},
		{"declared type wins", row, rules.Pack{Name: "p", Type: rules.TypeCell}, rules.TypeCell},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rules.Classify(tt.res, tt.pack, sep, true)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			// Guessing is deterministic: repeated classification of the
			// same result must agree.
			again, err := rules.Classify(tt.res, tt.pack, sep, true)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestClassify_GuessingDisabled(t *testing.T) {
	res := frame.MustNew(frame.Column{Name: "r", Values: []any{true}})

	_, err := rules.Classify(res, rules.Pack{Name: "mystery"}, rules.DefaultSeparator(), false)
	var ambiguous *rules.AmbiguousPackTypeError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, "mystery", ambiguous.Pack)

	// A declared type makes guessing unnecessary.
	typ, err := rules.Classify(res, rules.Pack{Name: "typed", Type: rules.TypeWhole},
		rules.DefaultSeparator(), false)
	require.NoError(t, err)
	assert.Equal(t, rules.TypeWhole, typ)
}

func TestClassify_Inconclusive(t *testing.T) {
	// Multiple rows, no key column, no composite names: no safe shape.
	res := frame.MustNew(frame.Column{Name: "r", Values: []any{true, false}})

	_, err := rules.Classify(res, rules.Pack{Name: "p"}, rules.DefaultSeparator(), true)
	var ambiguous *rules.AmbiguousPackTypeError
	require.True(t, errors.As(err, &ambiguous))
}
