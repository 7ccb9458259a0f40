// Package log provides structured logging helpers for the auditor.
//
// The auditor routinely logs fragments of fetched markup and resolved
// accessible names. TruncatingHandler wraps any slog.Handler and clamps
// oversized string attribute values so a logged document fragment cannot
// flood the output.
package log
