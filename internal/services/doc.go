// Package services defines shared utilities consumed by the pipeline stages
// and the wrappers around external media tools.
//
// Key responsibilities:
//   - Context helpers that stamp track IDs, track list IDs, stage names, and
//     run identifiers for logging.
//   - Structured error markers plus the Wrap helper, and Classify, which maps
//     a failure onto the pipeline's error taxonomy (tool failure, malformed
//     job, determination failure).
//
// Use these helpers when wiring new stage logic so failures stay local to one
// track and are reported the same way everywhere.
package services
