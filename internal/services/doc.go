// Package services defines shared utilities consumed by the pipeline stages
// and the external converter integration.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, song groups, stage names, and input
//     paths for logging.
//   - Structured error markers plus the Wrap helper, and Classify, which maps
//     a failure onto the category recorded in the run history.
//
// The midich subpackage drives the browser-hosted converter.
package services
