package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/stick-plan.yaml")
	require.NoError(t, err)

	assert.Equal(t, "stick-plan", s.Name)
	assert.Equal(t, filepath.Join("testdata", "specs", "woodshop.cue"), s.Spec)
	assert.Equal(t, "found", s.Expect.Status)
	require.NotNil(t, s.Expect.Cost)
	assert.Equal(t, int64(2), *s.Expect.Cost)
	assert.Equal(t, []string{"craft plank", "craft stick"}, s.Expect.Actions)
}

func TestLoadScenarioOverrides(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/plank-plan.yaml")
	require.NoError(t, err)

	assert.Nil(t, s.Initial)
	assert.Equal(t, map[string]int64{"plank": 4}, s.Goal)
}

func TestLoadScenarioMissingFile(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/does-not-exist.yaml")
	require.Error(t, err)
}

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()

	// Give invalid scenarios a real spec file so only the field under
	// test fails validation.
	specPath := filepath.Join(dir, "spec.cue")
	spec := `items: ["x"], goal: {x: 1}, recipes: {r: {cost: 1, produces: {x: 1}}}`
	require.NoError(t, os.WriteFile(specPath, []byte(spec), 0o644))

	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenarioValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{
			name:    "missing name",
			content: "description: d\nspec: spec.cue\nexpect:\n  status: found\n",
			wantMsg: "name is required",
		},
		{
			name:    "missing description",
			content: "name: n\nspec: spec.cue\nexpect:\n  status: found\n",
			wantMsg: "description is required",
		},
		{
			name:    "missing spec",
			content: "name: n\ndescription: d\nexpect:\n  status: found\n",
			wantMsg: "spec is required",
		},
		{
			name:    "spec not found",
			content: "name: n\ndescription: d\nspec: nope.cue\nexpect:\n  status: found\n",
			wantMsg: "spec file not found",
		},
		{
			name:    "missing status",
			content: "name: n\ndescription: d\nspec: spec.cue\nexpect:\n  cost: 1\n",
			wantMsg: "expect.status is required",
		},
		{
			name:    "bad status",
			content: "name: n\ndescription: d\nspec: spec.cue\nexpect:\n  status: maybe\n",
			wantMsg: "expect.status must be",
		},
		{
			name:    "negative deadline",
			content: "name: n\ndescription: d\nspec: spec.cue\ndeadline_ms: -5\nexpect:\n  status: found\n",
			wantMsg: "deadline_ms must be non-negative",
		},
		{
			name:    "unknown field",
			content: "name: n\ndescription: d\nspec: spec.cue\nexpects:\n  status: found\n",
			wantMsg: "failed to parse YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenario(t, tt.content)
			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestFindScenariosFile(t *testing.T) {
	files, err := FindScenarios("testdata/scenarios/stick-plan.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"testdata/scenarios/stick-plan.yaml"}, files)
}

func TestFindScenariosDir(t *testing.T) {
	files, err := FindScenarios("testdata/scenarios")
	require.NoError(t, err)
	require.Len(t, files, 5)
	// Sorted by path.
	assert.Equal(t, filepath.Join("testdata", "scenarios", "bench-stick.yaml"), files[0])
}

func TestFindScenariosMissing(t *testing.T) {
	_, err := FindScenarios("testdata/nope")
	require.Error(t, err)
}
