// Package harness provides a conformance testing framework for the planner.
//
// Scenarios are YAML files describing one solve: which crafting spec to
// load, optional initial/goal overrides, the search budget, and the
// expected outcome. The harness compiles the spec and runs the real search
// engine with a deterministic clock, so the same scenario always produces
// the same result.
//
// Outcomes can also be snapshotted as golden files (canonical JSON) for
// byte-exact regression comparison; see RunWithGolden.
package harness
