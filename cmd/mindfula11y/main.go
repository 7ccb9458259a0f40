// Package main provides the entry point for the mindfula11y CLI.
//
// mindfula11y audits rendered HTML documents for heading and landmark
// structure problems that affect assistive technology users.
//
// Usage:
//
//	mindfula11y audit <document-url>
//	mindfula11y history <document-url>
//
// See --help for all available options.
package main

// main is the entry point for mindfula11y.
func main() {
	Execute()
}
