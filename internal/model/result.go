package model

// AnalysisResult is the immutable output of one complete analysis run.
// It is superseded in full by the next run and never patched in place.
type AnalysisResult struct {
	// Headings are the roots of the reconstructed heading forest, in
	// document order.
	Headings []*HeadingNode `json:"headings,omitempty"`

	// Landmarks are the roots of the reconstructed landmark forest, in
	// document order.
	Landmarks []*LandmarkNode `json:"landmarks,omitempty"`

	// Diagnostics are the page-level findings, deduplicated by key pair,
	// in first-emission order.
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`

	// Announce is false for the first completed run of a task instance and
	// true afterwards. Consumers use it to suppress assertive live-region
	// announcements on initial load while still rendering the diagnostics.
	Announce bool `json:"announce"`
}

// EmptyAnalysisResult returns a result with no trees and no diagnostics.
// This is what a failed run publishes: fail-open to "nothing detected".
func EmptyAnalysisResult(announce bool) *AnalysisResult {
	return &AnalysisResult{
		Headings:    make([]*HeadingNode, 0),
		Landmarks:   make([]*LandmarkNode, 0),
		Diagnostics: make([]Diagnostic, 0),
		Announce:    announce,
	}
}

// WalkHeadings visits every heading node in the forest in document order,
// parents before children.
func (r *AnalysisResult) WalkHeadings(fn func(*HeadingNode)) {
	var walk func(nodes []*HeadingNode)
	walk = func(nodes []*HeadingNode) {
		for _, n := range nodes {
			fn(n)
			walk(n.Children)
		}
	}
	walk(r.Headings)
}

// WalkLandmarks visits every landmark node in the forest in document order,
// parents before children.
func (r *AnalysisResult) WalkLandmarks(fn func(*LandmarkNode)) {
	var walk func(nodes []*LandmarkNode)
	walk = func(nodes []*LandmarkNode) {
		for _, n := range nodes {
			fn(n)
			walk(n.Children)
		}
	}
	walk(r.Landmarks)
}

// CountBySeverity returns the number of findings (summed diagnostic counts)
// at the given severity.
func (r *AnalysisResult) CountBySeverity(severity Severity) int {
	total := 0
	for _, d := range r.Diagnostics {
		if d.Severity == severity {
			total += d.Count
		}
	}
	return total
}
