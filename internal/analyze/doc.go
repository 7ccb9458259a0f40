// Package analyze orchestrates one full analysis run: fetch the current
// markup, classify elements, build the heading and landmark trees, detect
// violations, and publish the result. Every run recomputes from scratch;
// there is no partial or incremental update. Completions are keyed to a
// monotonically increasing run token so an older run can never overwrite a
// newer run's published result.
package analyze
