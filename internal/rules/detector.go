package rules

import (
	"github.com/crinis/mindfula11y-sub001/internal/model"
)

// Input carries the built forests a rule operates on.
//
// Design decision: We pass both forests in a single struct rather than
// separate parameters because:
//  1. Not all rules need both trees
//  2. Adding new inputs doesn't change rule signatures
//  3. Easier to construct in tests
type Input struct {
	// Headings are the roots of the heading forest.
	Headings []*model.HeadingNode

	// Landmarks are the roots of the landmark forest.
	Landmarks []*model.LandmarkNode
}

// FlattenLandmarks returns every landmark in the forest in document order.
// The landmark rules operate on this flat list; forest shape does not affect
// them, only role and name attributes do.
func (in *Input) FlattenLandmarks() []*model.LandmarkNode {
	flat := make([]*model.LandmarkNode, 0)
	var walk func(nodes []*model.LandmarkNode)
	walk = func(nodes []*model.LandmarkNode) {
		for _, n := range nodes {
			flat = append(flat, n)
			walk(n.Children)
		}
	}
	walk(in.Landmarks)
	return flat
}

// FlattenHeadings returns every heading in the forest in document order.
func (in *Input) FlattenHeadings() []*model.HeadingNode {
	flat := make([]*model.HeadingNode, 0)
	var walk func(nodes []*model.HeadingNode)
	walk = func(nodes []*model.HeadingNode) {
		for _, n := range nodes {
			flat = append(flat, n)
			walk(n.Children)
		}
	}
	walk(in.Headings)
	return flat
}

// Rule is a single violation check. Apply annotates nodes in place and
// merges its page-level findings into diags.
//
// Design decision: We use an interface rather than function types because
// it provides a Name() method for logging and keeps the door open for
// configurable rules later.
type Rule interface {
	// Name returns the rule's name for logging purposes.
	Name() string

	// Apply runs the check against the input, tagging affected nodes and
	// adding page-level diagnostics to diags.
	Apply(in *Input, diags *model.DiagnosticSet)
}

// Detector runs a fixed set of rules over one run's trees.
type Detector struct {
	rules []Rule
}

// NewDetector creates a Detector with all built-in heading and landmark
// rules registered.
func NewDetector() *Detector {
	d := &Detector{rules: make([]Rule, 0)}

	// Heading rules
	d.Register(MissingH1Rule{})
	d.Register(SkippedLevelRule{})

	// Landmark rules
	d.Register(MissingMainRule{})
	d.Register(DuplicateMainRule{})
	d.Register(DuplicateLabelRule{})
	d.Register(UnlabeledSameRoleRule{})

	return d
}

// Register adds a rule to the detector.
func (d *Detector) Register(rule Rule) {
	d.rules = append(d.rules, rule)
}

// Detect applies every rule and returns the merged page-level diagnostics
// in first-emission order. Node annotations happen in place on the input
// trees.
func (d *Detector) Detect(in *Input) []model.Diagnostic {
	diags := model.NewDiagnosticSet()
	for _, rule := range d.rules {
		rule.Apply(in, diags)
	}
	return diags.Diagnostics()
}

// RuleNames returns the names of all registered rules in application order.
func (d *Detector) RuleNames() []string {
	names := make([]string, len(d.rules))
	for i, rule := range d.rules {
		names[i] = rule.Name()
	}
	return names
}
