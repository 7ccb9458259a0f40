// Package report provides audit report output in multiple formats.
//
// The package supports human-readable text (SimpleWriter), JSON
// (JSONWriter), and Markdown (MarkdownWriter) formats. All writers
// implement the Writer interface and can be combined with MultiWriter
// to output to several destinations at once.
package report
