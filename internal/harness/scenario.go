package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario: one crafting spec, one
// solve, one expected outcome.
type Scenario struct {
	// Name uniquely identifies this scenario. Also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Spec is the path to the crafting spec file (CUE or JSON).
	// Relative paths resolve against the scenario file location.
	Spec string `yaml:"spec"`

	// Initial, if non-nil, replaces the spec's initial inventory.
	Initial map[string]int64 `yaml:"initial,omitempty"`

	// Goal, if non-nil, replaces the spec's goal condition.
	Goal map[string]int64 `yaml:"goal,omitempty"`

	// DeadlineMS is the search budget in milliseconds of deterministic
	// clock time. Defaults to 10000.
	DeadlineMS int64 `yaml:"deadline_ms,omitempty"`

	// MaxExpanded caps expanded states. 0 means unlimited.
	MaxExpanded int `yaml:"max_expanded,omitempty"`

	// Expect specifies the expected solve outcome.
	Expect Expectation `yaml:"expect"`
}

// Expectation specifies the expected outcome of a solve.
type Expectation struct {
	// Status is the expected terminal status: found, noplan or deadline.
	Status string `yaml:"status"`

	// Cost is the expected total plan cost. Nil skips the check.
	Cost *int64 `yaml:"cost,omitempty"`

	// Actions is the expected plan, as ordered action names.
	// Nil skips the check; an empty list asserts an empty plan.
	Actions []string `yaml:"actions,omitempty"`

	// FinalState contains expected item counts in the final state.
	// Subset match - only listed items are checked.
	FinalState map[string]int64 `yaml:"final_state,omitempty"`
}

// DefaultDeadlineMS is the search budget applied when a scenario does not
// set one.
const DefaultDeadlineMS = 10000

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields. The spec path is
// resolved relative to the scenario file's directory.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving the spec path relative to the provided base path.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "expects:" vs "expect:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if !filepath.IsAbs(scenario.Spec) && basePath != "" {
		scenario.Spec = filepath.Join(basePath, scenario.Spec)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// FindScenarios returns the scenario files under path, sorted by name.
// A file path returns just that file; a directory is walked for .yaml and
// .yml files.
func FindScenarios(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch filepath.Ext(p) {
		case ".yaml", ".yml":
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	sort.Strings(files)
	return files, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Spec == "" {
		return fmt.Errorf("spec is required")
	}
	if _, err := os.Stat(s.Spec); os.IsNotExist(err) {
		return fmt.Errorf("spec file not found: %s", s.Spec)
	}

	if s.DeadlineMS < 0 {
		return fmt.Errorf("deadline_ms must be non-negative")
	}
	if s.MaxExpanded < 0 {
		return fmt.Errorf("max_expanded must be non-negative")
	}

	switch s.Expect.Status {
	case "found", "noplan", "deadline":
	case "":
		return fmt.Errorf("expect.status is required")
	default:
		return fmt.Errorf("expect.status must be found, noplan or deadline, got %q", s.Expect.Status)
	}

	return nil
}
