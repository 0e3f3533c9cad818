package packs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kieroneil/ruler/pkg/expose"
	"github.com/kieroneil/ruler/pkg/frame"
	"github.com/kieroneil/ruler/pkg/rules"
	"github.com/kieroneil/ruler/pkg/rules/packs"
)

func sample() *frame.Frame {
	return frame.MustNew(
		frame.Column{Name: "team", Values: []any{"red", "blue", "red"}},
		frame.Column{Name: "score", Values: []any{int64(5), nil, int64(200)}},
	)
}

// runOne exposes the sample data through one pack, keeping obeyers.
func runOne(t *testing.T, p rules.Pack) ([]rules.PackInfo, []rules.ReportRow) {
	t.Helper()
	out, err := expose.Expose(expose.New(sample()), []rules.Pack{p}, expose.KeepObeyers())
	require.NoError(t, err)
	infos, err := out.PacksInfo()
	require.NoError(t, err)
	report, err := out.Report()
	require.NoError(t, err)
	require.True(t, infos[0].OK, "pack failed: %s", infos[0].Error)
	return infos, report
}

func TestDims(t *testing.T) {
	infos, report := runOne(t, packs.Dims(2, 5))
	assert.Equal(t, rules.TypeWhole, infos[0].Type)
	require.Len(t, report, 2)

	byRule := map[string]rules.ReportRow{report[0].Rule: report[0], report[1].Rule: report[1]}
	assert.False(t, byRule["nrow_at_least"].Verdict, "3 rows satisfy min 2")
	assert.True(t, byRule["ncol_at_least"].Verdict, "2 cols break min 5")
	assert.Equal(t, rules.All, report[0].ID)
	assert.Equal(t, rules.All, report[0].Var)
}

func TestComplete(t *testing.T) {
	infos, report := runOne(t, packs.Complete())
	assert.Equal(t, rules.TypeCol, infos[0].Type)
	require.Len(t, report, 2)

	byVar := map[string]rules.ReportRow{report[0].Var: report[0], report[1].Var: report[1]}
	assert.False(t, byVar["team"].Verdict)
	assert.True(t, byVar["score"].Verdict, "score has a missing value")
	assert.Equal(t, "complete", report[0].Rule)
}

func TestRowComplete(t *testing.T) {
	infos, report := runOne(t, packs.RowComplete())
	assert.Equal(t, rules.TypeRow, infos[0].Type)
	require.Len(t, report, 3)

	assert.False(t, report[0].Verdict)
	assert.True(t, report[1].Verdict, "row 2 has the missing score")
	assert.Equal(t, "2", report[1].ID)
}

func TestInRange(t *testing.T) {
	infos, report := runOne(t, packs.InRange(0, 100, "score"))
	assert.Equal(t, rules.TypeCell, infos[0].Type)
	require.Len(t, report, 3)

	assert.Equal(t, "in_range", report[0].Rule)
	assert.Equal(t, "score", report[0].Var)
	assert.False(t, report[0].Verdict)
	assert.True(t, report[1].Verdict, "missing cell fails the range check")
	assert.True(t, report[2].Verdict, "200 is out of range")
}

func TestGroupSize(t *testing.T) {
	infos, report := runOne(t, packs.GroupSize(2, "team"))
	assert.Equal(t, rules.TypeGroup, infos[0].Type)
	require.Len(t, report, 2)

	byVar := map[string]rules.ReportRow{report[0].Var: report[0], report[1].Var: report[1]}
	assert.False(t, byVar["red"].Verdict)
	assert.True(t, byVar["blue"].Verdict, "blue has a single row")
	assert.Equal(t, rules.All, report[0].ID)
}

func TestRegistry(t *testing.T) {
	assert.GreaterOrEqual(t, packs.Count(), 5)

	spec, ok := packs.Get("in-range")
	require.True(t, ok)
	assert.Equal(t, rules.TypeCell, spec.Type)

	names := make([]string, 0)
	for _, s := range packs.All() {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, "dims")
	assert.Contains(t, names, "group-size")
}

func TestBuild(t *testing.T) {
	p, err := packs.Build("dims", map[string]any{"min_rows": 10})
	require.NoError(t, err)
	_, report := runOne(t, p)
	require.Len(t, report, 2)

	_, err = packs.Build("nope", nil)
	require.Error(t, err)

	_, err = packs.Build("in-range", nil)
	require.Error(t, err, "in-range requires cols")
}
