// Package database persists completed audit reports to SQLite so past
// audits of a document can be listed and re-printed. The engine itself
// never reads from here; each analysis run recomputes from scratch.
package database
