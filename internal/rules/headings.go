package rules

import (
	"github.com/crinis/mindfula11y-sub001/internal/model"
)

// MissingH1Rule reports a document without a level-one heading anywhere in
// the forest. It fires at most once per run with count 1, no matter how
// many other headings exist.
type MissingH1Rule struct{}

// Name returns the rule's name.
func (MissingH1Rule) Name() string { return "missing-h1" }

// Apply implements Rule.
func (MissingH1Rule) Apply(in *Input, diags *model.DiagnosticSet) {
	for _, h := range in.FlattenHeadings() {
		if h.Level == 1 {
			return
		}
	}

	diags.Add(model.Diagnostic{
		TitleKey:       model.TitleKeyMissingH1,
		DescriptionKey: model.DescriptionKeyMissingH1,
		Severity:       model.SeverityError,
		Count:          1,
	})
}

// SkippedLevelRule reports headings that jump over intermediate levels. The
// aggregated diagnostic counts affected nodes, not the sum of their skip
// magnitudes; a heading that skips two levels still counts once.
type SkippedLevelRule struct{}

// Name returns the rule's name.
func (SkippedLevelRule) Name() string { return "skipped-heading-level" }

// Apply implements Rule.
func (SkippedLevelRule) Apply(in *Input, diags *model.DiagnosticSet) {
	skipped := 0
	for _, h := range in.FlattenHeadings() {
		if h.SkippedLevels > 0 {
			skipped++
		}
	}

	diags.Add(model.Diagnostic{
		TitleKey:       model.TitleKeySkippedLevel,
		DescriptionKey: model.DescriptionKeySkippedLevel,
		Severity:       model.SeverityError,
		Count:          skipped,
	})
}
