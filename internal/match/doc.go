// Package match predicts, from go/types alone, how the mapper will treat each field
// pair: copied as is, assigned, converted by an enabled category, or rejected.
//
// Key functions:
//   - ScoreTypeCompatibility: mirrors the runtime assignment ladder for two types
//   - BuildPlan: predicts the outcome of a transfer between two struct types
package match
