package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kieroneil/ruler/pkg/frame"
	"github.com/kieroneil/ruler/pkg/rules"
)

func noop(f *frame.Frame) (*frame.Frame, error) { return f, nil }

func TestFlatten(t *testing.T) {
	a := rules.Pack{Name: "a", Fn: noop}
	b := rules.Pack{Name: "b", Fn: noop}
	c := rules.Pack{Name: "c", Fn: noop}

	packs, err := rules.Flatten(a, []rules.Pack{b}, []any{&c})
	require.NoError(t, err)
	require.Len(t, packs, 3)
	assert.Equal(t, []string{"a", "b", "c"},
		[]string{packs[0].Name, packs[1].Name, packs[2].Name})
}

func TestFlatten_DeepNesting(t *testing.T) {
	a := rules.Pack{Name: "a", Fn: noop}
	b := rules.Pack{Name: "b", Fn: noop}

	packs, err := rules.Flatten([]any{[]any{a, []any{b}}})
	require.NoError(t, err)
	require.Len(t, packs, 2)
	assert.Equal(t, "a", packs[0].Name)
	assert.Equal(t, "b", packs[1].Name)
}

func TestFlatten_RejectsNonPacks(t *testing.T) {
	_, err := rules.Flatten("not a pack")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a pack")

	_, err = rules.Flatten((*rules.Pack)(nil))
	require.Error(t, err)
}

func TestPack_Validate(t *testing.T) {
	assert.Error(t, rules.Pack{Name: "empty"}.Validate())
	assert.NoError(t, rules.Pack{Name: "ok", Fn: noop}.Validate())

	conflicting := rules.Pack{
		Name:      "bad",
		Type:      rules.TypeRow,
		GroupVars: []string{"g"},
		Fn:        noop,
	}
	assert.Error(t, conflicting.Validate())
}

func TestParsePackType(t *testing.T) {
	tests := []struct {
		in      string
		want    rules.PackType
		wantErr bool
	}{
		{"whole", rules.TypeWhole, false},
		{"grouped", rules.TypeGroup, false},
		{"column", rules.TypeCol, false},
		{"ROW", rules.TypeRow, false},
		{"cell", rules.TypeCell, false},
		{"", rules.TypeUnknown, false},
		{"bogus", rules.TypeUnknown, true},
	}
	for _, tt := range tests {
		got, err := rules.ParsePackType(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, got, mustParse(t, got.String()))
	}
}

func mustParse(t *testing.T, s string) rules.PackType {
	t.Helper()
	typ, err := rules.ParsePackType(s)
	require.NoError(t, err)
	return typ
}
