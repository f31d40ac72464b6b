package store

import (
	"encoding/json"
	"fmt"

	"craftplan/internal/ir"
)

// marshalGoal converts a goal map to canonical JSON TEXT for storage.
// Uses RFC 8785 canonical JSON for deterministic serialization, so the same
// goal always produces the same stored bytes.
func marshalGoal(goal map[string]int64) (string, error) {
	data, err := ir.MarshalCanonical(ir.QuantityObj(goal))
	if err != nil {
		return "", fmt.Errorf("marshal goal: %w", err)
	}
	return string(data), nil
}

// marshalPlan converts a plan (ordered action names) to canonical JSON TEXT.
func marshalPlan(plan []string) (string, error) {
	arr := make(ir.Arr, len(plan))
	for i, action := range plan {
		arr[i] = ir.Str(action)
	}
	data, err := ir.MarshalCanonical(arr)
	if err != nil {
		return "", fmt.Errorf("marshal plan: %w", err)
	}
	return string(data), nil
}

// unmarshalGoal parses stored goal JSON back to a map.
// Stored goals are plain string-to-integer objects, so encoding/json
// suffices for the read path.
func unmarshalGoal(data string) (map[string]int64, error) {
	if data == "" || data == "{}" {
		return map[string]int64{}, nil
	}
	var goal map[string]int64
	if err := json.Unmarshal([]byte(data), &goal); err != nil {
		return nil, fmt.Errorf("unmarshal goal: %w", err)
	}
	return goal, nil
}

// unmarshalPlan parses stored plan JSON back to an action slice.
func unmarshalPlan(data string) ([]string, error) {
	if data == "" || data == "[]" {
		return []string{}, nil
	}
	var plan []string
	if err := json.Unmarshal([]byte(data), &plan); err != nil {
		return nil, fmt.Errorf("unmarshal plan: %w", err)
	}
	return plan, nil
}
