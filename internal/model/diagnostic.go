package model

// Diagnostic title and description keys.
// Each page-level finding is identified by a stable (titleKey, descriptionKey)
// pair; display text is resolved through the catalog in severity.go, never
// embedded by the engine.
const (
	TitleKeyMissingH1       = "headings/missing-h1/title"
	DescriptionKeyMissingH1 = "headings/missing-h1/description"

	TitleKeySkippedLevel       = "headings/skipped-level/title"
	DescriptionKeySkippedLevel = "headings/skipped-level/description"

	TitleKeyMissingMain       = "landmarks/missing-main/title"
	DescriptionKeyMissingMain = "landmarks/missing-main/description"

	TitleKeyDuplicateMain       = "landmarks/duplicate-main/title"
	DescriptionKeyDuplicateMain = "landmarks/duplicate-main/description"

	TitleKeyDuplicateLabel       = "landmarks/duplicate-label/title"
	DescriptionKeyDuplicateLabel = "landmarks/duplicate-label/description"

	TitleKeyUnlabeledSameRole       = "landmarks/unlabeled-same-role/title"
	DescriptionKeyUnlabeledSameRole = "landmarks/unlabeled-same-role/description"
)

// Diagnostic is a page-level, deduplicated, counted finding.
type Diagnostic struct {
	// TitleKey identifies the finding's title text.
	TitleKey string `json:"title_key"`

	// DescriptionKey identifies the finding's description text.
	DescriptionKey string `json:"description_key"`

	// Severity is the finding's severity.
	Severity Severity `json:"severity"`

	// Count is the number of affected nodes, always at least 1.
	Count int `json:"count"`
}

// DiagnosticSet accumulates diagnostics and merges entries that share the
// same (titleKey, descriptionKey) pair by summing their counts. Entries keep
// the order of first insertion.
//
// Design decision: We back the set with an index map rather than a linear
// scan so the merge contract holds regardless of how many rules contribute.
// For the sizes seen here a scan would also do, but the map keeps the
// never-two-entries-with-the-same-key invariant auditable in one place.
type DiagnosticSet struct {
	entries []Diagnostic
	index   map[diagnosticKey]int
}

type diagnosticKey struct {
	titleKey       string
	descriptionKey string
}

// NewDiagnosticSet creates an empty DiagnosticSet.
func NewDiagnosticSet() *DiagnosticSet {
	return &DiagnosticSet{
		entries: make([]Diagnostic, 0),
		index:   make(map[diagnosticKey]int),
	}
}

// Add merges a diagnostic into the set. If an entry with the same key pair
// exists, its count is increased by d.Count; otherwise d is appended.
// Diagnostics with a non-positive count are ignored.
func (s *DiagnosticSet) Add(d Diagnostic) {
	if d.Count <= 0 {
		return
	}

	key := diagnosticKey{titleKey: d.TitleKey, descriptionKey: d.DescriptionKey}
	if i, ok := s.index[key]; ok {
		s.entries[i].Count += d.Count
		return
	}

	s.index[key] = len(s.entries)
	s.entries = append(s.entries, d)
}

// Len returns the number of distinct diagnostics in the set.
func (s *DiagnosticSet) Len() int {
	return len(s.entries)
}

// Get returns the diagnostic with the given key pair and whether it exists.
func (s *DiagnosticSet) Get(titleKey, descriptionKey string) (Diagnostic, bool) {
	if i, ok := s.index[diagnosticKey{titleKey: titleKey, descriptionKey: descriptionKey}]; ok {
		return s.entries[i], true
	}
	return Diagnostic{}, false
}

// Diagnostics returns the merged diagnostics in first-insertion order.
// The returned slice is a copy; mutating it does not affect the set.
func (s *DiagnosticSet) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(s.entries))
	copy(out, s.entries)
	return out
}
