package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kieroneil/ruler/pkg/rules"
)

func TestNewCheckCommand(t *testing.T) {
	cmd := NewCheckCommand()

	assert.Equal(t, "check [dataset.csv]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	flags := []string{"format", "out", "assert", "dataset", "keep-obeyers", "no-guess", "rule-sep"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewPacksCommand(t *testing.T) {
	cmd := NewPacksCommand()

	assert.Equal(t, "packs [pack-name]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("format"), "flag %q should exist", "format")
}

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.2.3", "abc1234")
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "ruler v1.2.3")
	assert.Contains(t, buf.String(), "abc1234")
}

func TestPacksCommand_List(t *testing.T) {
	cmd := NewPacksCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	require.NoError(t, cmd.Execute())
	out := buf.String()
	for _, name := range []string{"dims", "complete", "row-complete", "in-range", "group-size"} {
		assert.Contains(t, out, name)
	}
}

func TestPacksCommand_ShowJSON(t *testing.T) {
	cmd := NewPacksCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"in-range", "--format", "json"})

	require.NoError(t, cmd.Execute())

	var got struct {
		Name    string   `json:"name"`
		Type    string   `json:"type"`
		Options []string `json:"options"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "in-range", got.Name)
	assert.Equal(t, "cell", got.Type)
	assert.Contains(t, got.Options, "cols")
}

func TestPacksCommand_Unknown(t *testing.T) {
	cmd := NewPacksCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"nope"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown pack")
}

// checkFixture writes a dataset and config into a temp dir and returns their paths.
func checkFixture(t *testing.T) (csvPath, cfgPath string) {
	t.Helper()
	dir := t.TempDir()

	csvPath = filepath.Join(dir, "scores.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(
		"team,score\nred,10\nred,-2\nblue,7\nblue,0\n",
	), 0o644))

	cfgPath = filepath.Join(dir, "ruler.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
packs:
  - use: dims
    with:
      min_rows: 10
  - name: positive
    type: row
    rules:
      positive: "score > 0"
`), 0o644))
	return csvPath, cfgPath
}

// runCheckCmd executes check through a root command so the persistent
// --config flag is available.
func runCheckCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "ruler", SilenceUsage: true}
	root.PersistentFlags().String("config", "", "")
	root.PersistentFlags().BoolP("verbose", "v", false, "")
	root.AddCommand(NewCheckCommand())
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(append([]string{"check"}, args...))
	err := root.Execute()
	return buf.String(), err
}

func TestCheckCommand_TableReport(t *testing.T) {
	csvPath, cfgPath := checkFixture(t)

	out, err := runCheckCmd(t, csvPath, "--config", cfgPath)
	require.NoError(t, err)

	assert.Contains(t, out, "dims")
	assert.Contains(t, out, "positive")
	assert.Contains(t, out, "nrow_at_least")
}

func TestCheckCommand_JSONArtifact(t *testing.T) {
	csvPath, cfgPath := checkFixture(t)
	artifact := filepath.Join(t.TempDir(), "report.json")

	_, err := runCheckCmd(t, csvPath, "--config", cfgPath, "--format", "json", "--out", artifact)
	require.NoError(t, err)

	data, err := os.ReadFile(artifact)
	require.NoError(t, err)

	var report struct {
		RunID     string            `json:"run_id"`
		Dataset   string            `json:"dataset"`
		PacksInfo []rules.PackInfo  `json:"packs_info"`
		Report    []rules.ReportRow `json:"report"`
	}
	require.NoError(t, json.Unmarshal(data, &report))
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, csvPath, report.Dataset)
	assert.Len(t, report.PacksInfo, 2)
	assert.NotEmpty(t, report.Report)
	for _, row := range report.Report {
		assert.True(t, row.Verdict, "breakers only by default")
	}
}

func TestCheckCommand_AssertFailsOnBreakers(t *testing.T) {
	csvPath, cfgPath := checkFixture(t)

	_, err := runCheckCmd(t, csvPath, "--config", cfgPath, "--assert")
	require.Error(t, err)
	var violation *rules.RuleViolationError
	require.ErrorAs(t, err, &violation)
	assert.NotEmpty(t, violation.Breakers)
}

func TestCheckCommand_MissingDataset(t *testing.T) {
	_, cfgPath := checkFixture(t)

	_, err := runCheckCmd(t, "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no dataset")
}
