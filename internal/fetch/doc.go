// Package fetch retrieves the current markup of a document over HTTP.
// It is the analysis engine's only suspension point: everything downstream
// of the fetch is synchronous and CPU-bound. The engine consumes the Source
// interface, so alternative markup providers (tests, caches) plug in
// without touching the analysis code.
package fetch
