// Package model defines the data structures shared across the auditor:
// heading and landmark trees, diagnostics, analysis results, and the audit
// report envelope consumed by the report writers and the history database.
package model
