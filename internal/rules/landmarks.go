package rules

import (
	"github.com/crinis/mindfula11y-sub001/internal/model"
)

// MissingMainRule reports a document without a main landmark.
// Mutually exclusive with DuplicateMainRule within one run: the main count
// cannot be both zero and greater than one.
type MissingMainRule struct{}

// Name returns the rule's name.
func (MissingMainRule) Name() string { return "missing-main" }

// Apply implements Rule.
func (MissingMainRule) Apply(in *Input, diags *model.DiagnosticSet) {
	for _, lm := range in.FlattenLandmarks() {
		if lm.Role == model.RoleMain {
			return
		}
	}

	diags.Add(model.Diagnostic{
		TitleKey:       model.TitleKeyMissingMain,
		DescriptionKey: model.DescriptionKeyMissingMain,
		Severity:       model.SeverityError,
		Count:          1,
	})
}

// DuplicateMainRule reports more than one main landmark. Every main node is
// tagged, and the diagnostic counts all of them, not just the excess.
type DuplicateMainRule struct{}

// Name returns the rule's name.
func (DuplicateMainRule) Name() string { return "duplicate-main" }

// Apply implements Rule.
func (DuplicateMainRule) Apply(in *Input, diags *model.DiagnosticSet) {
	mains := make([]*model.LandmarkNode, 0)
	for _, lm := range in.FlattenLandmarks() {
		if lm.Role == model.RoleMain {
			mains = append(mains, lm)
		}
	}
	if len(mains) < 2 {
		return
	}

	for _, lm := range mains {
		lm.AddErrorReason(model.ErrorReasonDuplicateMain)
	}

	diags.Add(model.Diagnostic{
		TitleKey:       model.TitleKeyDuplicateMain,
		DescriptionKey: model.DescriptionKeyDuplicateMain,
		Severity:       model.SeverityError,
		Count:          len(mains),
	})
}

// DuplicateLabelRule reports landmarks of any role that share the same
// non-empty accessible name. All members of every such group are tagged,
// and their counts fold into a single diagnostic across all groups.
type DuplicateLabelRule struct{}

// Name returns the rule's name.
func (DuplicateLabelRule) Name() string { return "duplicate-label" }

// Apply implements Rule.
func (DuplicateLabelRule) Apply(in *Input, diags *model.DiagnosticSet) {
	byName := make(map[string][]*model.LandmarkNode)
	order := make([]string, 0)
	for _, lm := range in.FlattenLandmarks() {
		if lm.AccessibleName == "" {
			continue
		}
		if _, seen := byName[lm.AccessibleName]; !seen {
			order = append(order, lm.AccessibleName)
		}
		byName[lm.AccessibleName] = append(byName[lm.AccessibleName], lm)
	}

	for _, name := range order {
		group := byName[name]
		if len(group) < 2 {
			continue
		}
		for _, lm := range group {
			lm.AddErrorReason(model.ErrorReasonDuplicateLabel)
		}
		diags.Add(model.Diagnostic{
			TitleKey:       model.TitleKeyDuplicateLabel,
			DescriptionKey: model.DescriptionKeyDuplicateLabel,
			Severity:       model.SeverityWarning,
			Count:          len(group),
		})
	}
}

// UnlabeledSameRoleRule reports unlabeled landmarks that become
// indistinguishable because two or more of the same role lack an accessible
// name. The main role is excluded (handled by the main rules), as are role
// groups with fewer than two members. Counts accumulate into a single
// diagnostic across all role groups.
type UnlabeledSameRoleRule struct{}

// Name returns the rule's name.
func (UnlabeledSameRoleRule) Name() string { return "unlabeled-same-role" }

// Apply implements Rule.
func (UnlabeledSameRoleRule) Apply(in *Input, diags *model.DiagnosticSet) {
	byRole := make(map[model.Role][]*model.LandmarkNode)
	order := make([]model.Role, 0)
	for _, lm := range in.FlattenLandmarks() {
		if lm.Role == model.RoleMain {
			continue
		}
		if _, seen := byRole[lm.Role]; !seen {
			order = append(order, lm.Role)
		}
		byRole[lm.Role] = append(byRole[lm.Role], lm)
	}

	for _, role := range order {
		group := byRole[role]
		if len(group) < 2 {
			continue
		}

		unlabeled := make([]*model.LandmarkNode, 0)
		for _, lm := range group {
			if lm.AccessibleName == "" {
				unlabeled = append(unlabeled, lm)
			}
		}
		if len(unlabeled) < 2 {
			continue
		}

		for _, lm := range unlabeled {
			lm.AddErrorReason(model.ErrorReasonMultipleUnlabeledPerRole)
		}
		diags.Add(model.Diagnostic{
			TitleKey:       model.TitleKeyUnlabeledSameRole,
			DescriptionKey: model.DescriptionKeyUnlabeledSameRole,
			Severity:       model.SeverityWarning,
			Count:          len(unlabeled),
		})
	}
}
