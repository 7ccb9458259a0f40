package model

// Severity represents the severity of a structural finding.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output when needed.
type Severity int

const (
	// SeverityWarning indicates issues that degrade the experience for
	// assistive technology users but do not make content unreachable.
	// Examples: two navigation regions sharing the same label.
	SeverityWarning Severity = iota

	// SeverityError indicates violations of structural requirements.
	// Examples: a missing H1, a skipped heading level, duplicate main
	// landmarks.
	SeverityError
)

// String returns a human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// DiagnosticInfo contains the human-readable text for a diagnostic key pair.
// The engine itself only ever emits keys; resolving them to display text is
// the responsibility of the presentation layer via this catalog.
type DiagnosticInfo struct {
	Title       string
	Description string
}

// diagnosticCatalog maps title keys to their display metadata.
// This centralized mapping ensures the engine and all report writers agree
// on what each key means.
//
// Design decision: We key the catalog by title key alone because every rule
// uses a distinct title key; the (titleKey, descriptionKey) pair remains the
// merge identity for diagnostics, but lookup only needs the title key.
var diagnosticCatalog = map[string]DiagnosticInfo{
	TitleKeyMissingH1: {
		Title:       "Missing H1 heading",
		Description: "The document has no level-one heading. Screen reader users rely on a single H1 to identify the main topic of the page.",
	},
	TitleKeySkippedLevel: {
		Title:       "Skipped heading level",
		Description: "A heading jumps over one or more intermediate levels. Heading levels should increase by at most one so the outline stays navigable.",
	},
	TitleKeyMissingMain: {
		Title:       "Missing main landmark",
		Description: "The document has no main landmark. Assistive technology users cannot jump directly to the primary content.",
	},
	TitleKeyDuplicateMain: {
		Title:       "Multiple main landmarks",
		Description: "The document contains more than one main landmark. Exactly one main region is expected per page.",
	},
	TitleKeyDuplicateLabel: {
		Title:       "Landmarks share the same label",
		Description: "Two or more landmarks carry the same accessible name. Identical labels make regions indistinguishable in landmark navigation.",
	},
	TitleKeyUnlabeledSameRole: {
		Title:       "Unlabeled landmarks with the same role",
		Description: "Multiple landmarks of the same role have no accessible name. Without labels they cannot be told apart.",
	},
}

// GetDiagnosticInfo returns the display metadata for a title key.
// Unknown keys resolve to a generic entry rather than failing, so a report
// can always be rendered.
func GetDiagnosticInfo(titleKey string) DiagnosticInfo {
	if info, ok := diagnosticCatalog[titleKey]; ok {
		return info
	}
	return DiagnosticInfo{
		Title:       titleKey,
		Description: "Unknown finding. Review manually.",
	}
}
