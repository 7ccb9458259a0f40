package rules

import (
	"testing"

	"github.com/crinis/mindfula11y-sub001/internal/model"
)

// headings builds a flat heading forest from (level, skipped) pairs.
func headings(pairs ...[2]int) []*model.HeadingNode {
	nodes := make([]*model.HeadingNode, len(pairs))
	for i, p := range pairs {
		nodes[i] = &model.HeadingNode{Level: p[0], SkippedLevels: p[1]}
	}
	return nodes
}

// landmark builds a single landmark node.
func landmark(role model.Role, name string) *model.LandmarkNode {
	return &model.LandmarkNode{Role: role, AccessibleName: name}
}

// diagnosticByKey returns the diagnostic with the given title key, if any.
func diagnosticByKey(diags []model.Diagnostic, titleKey string) (model.Diagnostic, bool) {
	for _, d := range diags {
		if d.TitleKey == titleKey {
			return d, true
		}
	}
	return model.Diagnostic{}, false
}

// TestMissingH1Rule tests the missing-h1 check.
func TestMissingH1Rule(t *testing.T) {
	t.Parallel()

	t.Run("fires once with count 1 when no h1 exists", func(t *testing.T) {
		t.Parallel()

		in := &Input{Headings: headings([2]int{2, 1}, [2]int{3, 0}, [2]int{2, 0})}
		diags := NewDetector().Detect(in)

		d, ok := diagnosticByKey(diags, model.TitleKeyMissingH1)
		if !ok {
			t.Fatal("expected missing-h1 diagnostic")
		}
		if d.Count != 1 {
			t.Errorf("expected count 1, got %d", d.Count)
		}
		if d.Severity != model.SeverityError {
			t.Errorf("expected error severity, got %v", d.Severity)
		}
	})

	t.Run("silent when an h1 exists anywhere in the forest", func(t *testing.T) {
		t.Parallel()

		in := &Input{Headings: []*model.HeadingNode{
			{Level: 2, Children: []*model.HeadingNode{{Level: 3}}},
			{Level: 1},
		}}
		diags := NewDetector().Detect(in)

		if _, ok := diagnosticByKey(diags, model.TitleKeyMissingH1); ok {
			t.Error("did not expect missing-h1 diagnostic")
		}
	})
}

// TestSkippedLevelRule tests the skipped-level check.
func TestSkippedLevelRule(t *testing.T) {
	t.Parallel()

	t.Run("counts affected nodes not skip magnitudes", func(t *testing.T) {
		t.Parallel()

		// One node skips two levels, another skips one; the count is 2.
		in := &Input{Headings: headings([2]int{1, 0}, [2]int{4, 2}, [2]int{6, 1})}
		diags := NewDetector().Detect(in)

		d, ok := diagnosticByKey(diags, model.TitleKeySkippedLevel)
		if !ok {
			t.Fatal("expected skipped-level diagnostic")
		}
		if d.Count != 2 {
			t.Errorf("expected count 2, got %d", d.Count)
		}
	})

	t.Run("silent on a sound hierarchy", func(t *testing.T) {
		t.Parallel()

		in := &Input{Headings: headings([2]int{1, 0}, [2]int{2, 0})}
		diags := NewDetector().Detect(in)

		if _, ok := diagnosticByKey(diags, model.TitleKeySkippedLevel); ok {
			t.Error("did not expect skipped-level diagnostic")
		}
	})
}

// TestMainLandmarkRules tests the missing-main and duplicate-main checks.
func TestMainLandmarkRules(t *testing.T) {
	t.Parallel()

	t.Run("no main yields missing-main with count 1", func(t *testing.T) {
		t.Parallel()

		in := &Input{Landmarks: []*model.LandmarkNode{landmark(model.RoleNavigation, "")}}
		diags := NewDetector().Detect(in)

		d, ok := diagnosticByKey(diags, model.TitleKeyMissingMain)
		if !ok {
			t.Fatal("expected missing-main diagnostic")
		}
		if d.Count != 1 {
			t.Errorf("expected count 1, got %d", d.Count)
		}
		if _, ok := diagnosticByKey(diags, model.TitleKeyDuplicateMain); ok {
			t.Error("missing-main and duplicate-main must not co-occur")
		}
	})

	t.Run("exactly one main yields neither main diagnostic", func(t *testing.T) {
		t.Parallel()

		in := &Input{Landmarks: []*model.LandmarkNode{landmark(model.RoleMain, "")}}
		diags := NewDetector().Detect(in)

		if _, ok := diagnosticByKey(diags, model.TitleKeyMissingMain); ok {
			t.Error("did not expect missing-main diagnostic")
		}
		if _, ok := diagnosticByKey(diags, model.TitleKeyDuplicateMain); ok {
			t.Error("did not expect duplicate-main diagnostic")
		}
	})

	t.Run("two mains tags all of them and counts both", func(t *testing.T) {
		t.Parallel()

		first := landmark(model.RoleMain, "")
		second := landmark(model.RoleMain, "")
		in := &Input{Landmarks: []*model.LandmarkNode{first, second}}
		diags := NewDetector().Detect(in)

		d, ok := diagnosticByKey(diags, model.TitleKeyDuplicateMain)
		if !ok {
			t.Fatal("expected duplicate-main diagnostic")
		}
		if d.Count != 2 {
			t.Errorf("expected count 2, got %d", d.Count)
		}
		if !first.HasErrorReason(model.ErrorReasonDuplicateMain) || !second.HasErrorReason(model.ErrorReasonDuplicateMain) {
			t.Error("expected both mains to carry the duplicate-main tag")
		}
	})

	t.Run("nested mains are found anywhere in the forest", func(t *testing.T) {
		t.Parallel()

		inner := landmark(model.RoleMain, "")
		outer := landmark(model.RoleMain, "")
		outer.Children = []*model.LandmarkNode{inner}
		in := &Input{Landmarks: []*model.LandmarkNode{outer}}
		diags := NewDetector().Detect(in)

		d, ok := diagnosticByKey(diags, model.TitleKeyDuplicateMain)
		if !ok || d.Count != 2 {
			t.Fatalf("expected duplicate-main with count 2, got %+v (found %v)", d, ok)
		}
	})
}

// TestDuplicateLabelRule tests the shared accessible name check.
func TestDuplicateLabelRule(t *testing.T) {
	t.Parallel()

	t.Run("two groups fold into one diagnostic with summed count", func(t *testing.T) {
		t.Parallel()

		// A two-member group and a three-member group in different roles.
		in := &Input{Landmarks: []*model.LandmarkNode{
			landmark(model.RoleMain, ""),
			landmark(model.RoleNavigation, "Menu"),
			landmark(model.RoleNavigation, "Menu"),
			landmark(model.RoleRegion, "News"),
			landmark(model.RoleComplementary, "News"),
			landmark(model.RoleBanner, "News"),
		}}
		diags := NewDetector().Detect(in)

		d, ok := diagnosticByKey(diags, model.TitleKeyDuplicateLabel)
		if !ok {
			t.Fatal("expected duplicate-label diagnostic")
		}
		if d.Count != 5 {
			t.Errorf("expected merged count 5, got %d", d.Count)
		}
		if d.Severity != model.SeverityWarning {
			t.Errorf("expected warning severity, got %v", d.Severity)
		}
	})

	t.Run("empty names never form a duplicate group", func(t *testing.T) {
		t.Parallel()

		in := &Input{Landmarks: []*model.LandmarkNode{
			landmark(model.RoleMain, ""),
			landmark(model.RoleRegion, "Unique"),
			landmark(model.RoleRegion, "Other"),
		}}
		diags := NewDetector().Detect(in)

		if _, ok := diagnosticByKey(diags, model.TitleKeyDuplicateLabel); ok {
			t.Error("did not expect duplicate-label diagnostic")
		}
	})

	t.Run("duplicate names across roles still form a group", func(t *testing.T) {
		t.Parallel()

		nav := landmark(model.RoleNavigation, "Info")
		aside := landmark(model.RoleComplementary, "Info")
		in := &Input{Landmarks: []*model.LandmarkNode{landmark(model.RoleMain, ""), nav, aside}}
		NewDetector().Detect(in)

		if !nav.HasErrorReason(model.ErrorReasonDuplicateLabel) || !aside.HasErrorReason(model.ErrorReasonDuplicateLabel) {
			t.Error("expected both members tagged regardless of role")
		}
	})
}

// TestUnlabeledSameRoleRule tests the ambiguous unlabeled landmark check.
func TestUnlabeledSameRoleRule(t *testing.T) {
	t.Parallel()

	t.Run("two unlabeled navs are tagged and counted", func(t *testing.T) {
		t.Parallel()

		first := landmark(model.RoleNavigation, "")
		second := landmark(model.RoleNavigation, "")
		in := &Input{Landmarks: []*model.LandmarkNode{landmark(model.RoleMain, ""), first, second}}
		diags := NewDetector().Detect(in)

		d, ok := diagnosticByKey(diags, model.TitleKeyUnlabeledSameRole)
		if !ok {
			t.Fatal("expected unlabeled-same-role diagnostic")
		}
		if d.Count != 2 {
			t.Errorf("expected count 2, got %d", d.Count)
		}
		if !first.HasErrorReason(model.ErrorReasonMultipleUnlabeledPerRole) {
			t.Error("expected first nav to carry the tag")
		}
	})

	t.Run("labeled members of the group stay untagged", func(t *testing.T) {
		t.Parallel()

		labeled := landmark(model.RoleNavigation, "Primary")
		unlabeledA := landmark(model.RoleNavigation, "")
		unlabeledB := landmark(model.RoleNavigation, "")
		in := &Input{Landmarks: []*model.LandmarkNode{landmark(model.RoleMain, ""), labeled, unlabeledA, unlabeledB}}
		diags := NewDetector().Detect(in)

		d, ok := diagnosticByKey(diags, model.TitleKeyUnlabeledSameRole)
		if !ok || d.Count != 2 {
			t.Fatalf("expected count 2, got %+v (found %v)", d, ok)
		}
		if labeled.HasErrorReason(model.ErrorReasonMultipleUnlabeledPerRole) {
			t.Error("labeled nav must not be tagged")
		}
	})

	t.Run("one unlabeled member is fine", func(t *testing.T) {
		t.Parallel()

		in := &Input{Landmarks: []*model.LandmarkNode{
			landmark(model.RoleMain, ""),
			landmark(model.RoleNavigation, "Primary"),
			landmark(model.RoleNavigation, ""),
		}}
		diags := NewDetector().Detect(in)

		if _, ok := diagnosticByKey(diags, model.TitleKeyUnlabeledSameRole); ok {
			t.Error("did not expect unlabeled-same-role diagnostic")
		}
	})

	t.Run("main role is excluded from the check", func(t *testing.T) {
		t.Parallel()

		in := &Input{Landmarks: []*model.LandmarkNode{
			landmark(model.RoleMain, ""),
			landmark(model.RoleMain, ""),
		}}
		diags := NewDetector().Detect(in)

		if _, ok := diagnosticByKey(diags, model.TitleKeyUnlabeledSameRole); ok {
			t.Error("unlabeled mains are handled by the main rules, not this one")
		}
	})
}

// TestDetect tests detector-level behavior across rules.
func TestDetect(t *testing.T) {
	t.Parallel()

	t.Run("clean document yields no diagnostics", func(t *testing.T) {
		t.Parallel()

		in := &Input{
			Headings:  headings([2]int{1, 0}, [2]int{2, 0}),
			Landmarks: []*model.LandmarkNode{landmark(model.RoleMain, "")},
		}
		diags := NewDetector().Detect(in)

		if len(diags) != 0 {
			t.Errorf("expected no diagnostics, got %+v", diags)
		}
	})

	t.Run("detection is idempotent on the same trees", func(t *testing.T) {
		t.Parallel()

		nav1 := landmark(model.RoleNavigation, "")
		nav2 := landmark(model.RoleNavigation, "")
		in := &Input{
			Headings:  headings([2]int{2, 1}),
			Landmarks: []*model.LandmarkNode{landmark(model.RoleMain, ""), nav1, nav2},
		}

		first := NewDetector().Detect(in)
		second := NewDetector().Detect(in)

		if len(first) != len(second) {
			t.Fatalf("diagnostic counts differ: %d vs %d", len(first), len(second))
		}
		for i := range first {
			if first[i] != second[i] {
				t.Errorf("diagnostic %d differs: %+v vs %+v", i, first[i], second[i])
			}
		}
		// Re-tagging is a set union, so reasons do not accumulate either.
		if len(nav1.ErrorReasons) != 1 {
			t.Errorf("expected exactly 1 reason after two runs, got %d", len(nav1.ErrorReasons))
		}
	})

	t.Run("rule names are stable for logging", func(t *testing.T) {
		t.Parallel()

		names := NewDetector().RuleNames()
		if len(names) != 6 {
			t.Fatalf("expected 6 rules, got %d: %v", len(names), names)
		}
		if names[0] != "missing-h1" {
			t.Errorf("expected missing-h1 first, got %q", names[0])
		}
	})
}
