package model

import "testing"

// TestDiagnosticSetAdd tests merge semantics of the diagnostic set.
func TestDiagnosticSetAdd(t *testing.T) {
	t.Parallel()

	t.Run("appends distinct diagnostics in insertion order", func(t *testing.T) {
		t.Parallel()

		s := NewDiagnosticSet()
		s.Add(Diagnostic{TitleKey: TitleKeyMissingH1, DescriptionKey: DescriptionKeyMissingH1, Severity: SeverityError, Count: 1})
		s.Add(Diagnostic{TitleKey: TitleKeyMissingMain, DescriptionKey: DescriptionKeyMissingMain, Severity: SeverityError, Count: 1})

		got := s.Diagnostics()
		if len(got) != 2 {
			t.Fatalf("expected 2 diagnostics, got %d", len(got))
		}
		if got[0].TitleKey != TitleKeyMissingH1 {
			t.Errorf("expected first entry to keep insertion order, got %q", got[0].TitleKey)
		}
	})

	t.Run("merges same key pair by summing counts", func(t *testing.T) {
		t.Parallel()

		s := NewDiagnosticSet()
		s.Add(Diagnostic{TitleKey: TitleKeyDuplicateLabel, DescriptionKey: DescriptionKeyDuplicateLabel, Severity: SeverityWarning, Count: 2})
		s.Add(Diagnostic{TitleKey: TitleKeyDuplicateLabel, DescriptionKey: DescriptionKeyDuplicateLabel, Severity: SeverityWarning, Count: 3})

		if s.Len() != 1 {
			t.Fatalf("expected 1 merged diagnostic, got %d", s.Len())
		}

		d, ok := s.Get(TitleKeyDuplicateLabel, DescriptionKeyDuplicateLabel)
		if !ok {
			t.Fatal("expected merged diagnostic to exist")
		}
		if d.Count != 5 {
			t.Errorf("expected merged count 5, got %d", d.Count)
		}
	})

	t.Run("ignores non-positive counts", func(t *testing.T) {
		t.Parallel()

		s := NewDiagnosticSet()
		s.Add(Diagnostic{TitleKey: TitleKeySkippedLevel, DescriptionKey: DescriptionKeySkippedLevel, Severity: SeverityError, Count: 0})
		s.Add(Diagnostic{TitleKey: TitleKeySkippedLevel, DescriptionKey: DescriptionKeySkippedLevel, Severity: SeverityError, Count: -1})

		if s.Len() != 0 {
			t.Errorf("expected empty set, got %d entries", s.Len())
		}
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		t.Parallel()

		s := NewDiagnosticSet()
		s.Add(Diagnostic{TitleKey: TitleKeyMissingH1, DescriptionKey: DescriptionKeyMissingH1, Severity: SeverityError, Count: 1})

		out := s.Diagnostics()
		out[0].Count = 99

		d, _ := s.Get(TitleKeyMissingH1, DescriptionKeyMissingH1)
		if d.Count != 1 {
			t.Errorf("mutating returned slice changed the set: count = %d", d.Count)
		}
	})
}

// TestLandmarkNodeErrorReasons tests set-union tagging on landmark nodes.
func TestLandmarkNodeErrorReasons(t *testing.T) {
	t.Parallel()

	t.Run("adding the same reason twice has no effect", func(t *testing.T) {
		t.Parallel()

		n := &LandmarkNode{Role: RoleNavigation}
		n.AddErrorReason(ErrorReasonDuplicateLabel)
		n.AddErrorReason(ErrorReasonDuplicateLabel)

		if len(n.ErrorReasons) != 1 {
			t.Errorf("expected 1 reason, got %d", len(n.ErrorReasons))
		}
	})

	t.Run("node can carry several distinct reasons", func(t *testing.T) {
		t.Parallel()

		n := &LandmarkNode{Role: RoleNavigation}
		n.AddErrorReason(ErrorReasonDuplicateLabel)
		n.AddErrorReason(ErrorReasonMultipleUnlabeledPerRole)

		if !n.HasErrorReason(ErrorReasonDuplicateLabel) {
			t.Error("expected duplicate-label reason to be present")
		}
		if !n.HasErrorReason(ErrorReasonMultipleUnlabeledPerRole) {
			t.Error("expected unlabeled-same-role reason to be present")
		}
		if n.HasErrorReason(ErrorReasonDuplicateMain) {
			t.Error("did not expect duplicate-main reason")
		}
		if !n.HasError() {
			t.Error("expected HasError to be true")
		}
	})
}

// TestHeadingNodeHasError tests the skipped-level error predicate.
func TestHeadingNodeHasError(t *testing.T) {
	t.Parallel()

	sound := &HeadingNode{Level: 2, SkippedLevels: 0}
	if sound.HasError() {
		t.Error("heading without skipped levels should not have an error")
	}

	skipped := &HeadingNode{Level: 4, SkippedLevels: 2}
	if !skipped.HasError() {
		t.Error("heading with skipped levels should have an error")
	}
}
