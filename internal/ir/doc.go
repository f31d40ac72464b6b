// Package ir provides the canonical data model for the crafting planner.
//
// This package contains type definitions only. All other internal packages
// import ir; ir imports nothing internal. This ensures IR remains the
// foundational layer with no circular dependencies.
//
// Key design constraints:
//   - NO float types anywhere - costs and quantities are int64
//   - States are value-immutable: every transition produces a new State
//   - All JSON tags use snake_case
//   - Canonical JSON (sorted keys, NFC strings) is the only serialization
//     used for content-addressed hashing and golden files
package ir
