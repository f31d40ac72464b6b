package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execSolve(t *testing.T, format string, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewSolveCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return buf, cmd.Execute()
}

func TestSolveText(t *testing.T) {
	buf, err := execSolve(t, "text", "testdata/woodshop.cue")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Plan found: 2 step(s), cost 2")
	assert.Contains(t, out, "1. craft plank")
	assert.Contains(t, out, "2. craft stick")
}

func TestSolveJSON(t *testing.T) {
	buf, err := execSolve(t, "json", "testdata/woodshop.cue")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   SolveResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "found", resp.Data.Status)
	assert.Equal(t, int64(2), resp.Data.Cost)
	assert.Equal(t, []string{"craft plank", "craft stick"}, resp.Data.Plan)
	assert.NotEmpty(t, resp.Data.PlanHash)
	assert.NotEmpty(t, resp.Data.SpecHash)
}

func TestSolveNoPlanExitCode(t *testing.T) {
	buf, err := execSolve(t, "text", "testdata/unreachable.cue")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "No plan exists")
}

func TestSolveDeadlineExitCode(t *testing.T) {
	_, err := execSolve(t, "text", "testdata/woodshop.cue", "--deadline", "0s")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestSolveMaxExpanded(t *testing.T) {
	buf, err := execSolve(t, "json", "testdata/woodshop.cue", "--max-expanded", "1")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Data SolveResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "noplan", resp.Data.Status)
}

func TestSolveSampleSpec(t *testing.T) {
	// The sample's full rail goal is a benchmark, not a unit test; a
	// wooden pickaxe keeps the search small.
	buf, err := execSolve(t, "json", "../../examples/crafting.cue",
		"--goal", "wooden_pickaxe=1", "--deadline", "25s")
	require.NoError(t, err)

	var resp struct {
		Data SolveResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "found", resp.Data.Status)
	assert.Positive(t, resp.Data.Cost)
	assert.Contains(t, resp.Data.Plan, "craft wooden_pickaxe at bench")
}

func TestSolveBadGoalOverride(t *testing.T) {
	_, err := execSolve(t, "text", "testdata/woodshop.cue", "--goal", "stick")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = execSolve(t, "text", "testdata/woodshop.cue", "--goal", "diamond=1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestSolveRecordsHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	buf, err := execSolve(t, "json", "testdata/woodshop.cue", "--history", dbPath)
	require.NoError(t, err)

	var resp struct {
		Data SolveResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.RunID)

	// The run is queryable through the history commands.
	listBuf := &bytes.Buffer{}
	listCmd := NewHistoryCommand(&RootOptions{Format: "text"})
	listCmd.SetOut(listBuf)
	listCmd.SetArgs([]string{"list", dbPath, "--status", "found"})
	require.NoError(t, listCmd.Execute())
	assert.Contains(t, listBuf.String(), resp.Data.RunID)

	showBuf := &bytes.Buffer{}
	showCmd := NewHistoryCommand(&RootOptions{Format: "text"})
	showCmd.SetOut(showBuf)
	showCmd.SetArgs([]string{"show", dbPath, resp.Data.RunID})
	require.NoError(t, showCmd.Execute())
	assert.Contains(t, showBuf.String(), "craft plank -> craft stick")
	assert.Contains(t, showBuf.String(), resp.Data.SpecHash)
}

func TestSolveCompileErrorExitCode(t *testing.T) {
	_, err := execSolve(t, "text", "testdata/invalid.cue")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
