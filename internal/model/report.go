package model

import "time"

// AuditReport wraps one analysis run's result with the context the report
// writers and the history database need: which document was audited, when,
// whether the run failed, and a flattened, display-ready finding list.
//
// Design decision: We keep AnalysisResult free of presentation concerns and
// derive the flattened findings here instead, so the engine output stays a
// pure data contract while writers get a curated view.
type AuditReport struct {
	// DocumentURL is the audited document reference.
	DocumentURL string `json:"document_url"`

	// DateAudited is when the analysis run completed.
	DateAudited time.Time `json:"date_audited"`

	// Failed is true if the markup could not be fetched or parsed.
	// A failed audit carries an empty result, never partial trees.
	Failed bool `json:"failed"`

	// ErrorMessage describes the failure when Failed is true.
	ErrorMessage string `json:"error,omitempty"`

	// ErrorCount is the number of error-severity findings.
	ErrorCount int `json:"error_count"`

	// WarningCount is the number of warning-severity findings.
	WarningCount int `json:"warning_count"`

	// HeadingCount is the total number of headings in the forest.
	HeadingCount int `json:"heading_count"`

	// LandmarkCount is the total number of landmarks in the forest.
	LandmarkCount int `json:"landmark_count"`

	// Findings are the resolved page-level findings for display.
	Findings []Finding `json:"findings,omitempty"`

	// Result is the raw engine output.
	Result *AnalysisResult `json:"result,omitempty"`
}

// Finding is a single display-ready row derived from a Diagnostic by
// resolving its keys through the catalog.
type Finding struct {
	// TitleKey is the diagnostic's stable title key.
	TitleKey string `json:"title_key"`

	// Severity is the finding's severity.
	Severity Severity `json:"severity"`

	// SeverityText is the human-readable severity.
	SeverityText string `json:"severity_text"`

	// Title is the resolved finding title.
	Title string `json:"title"`

	// Description is the resolved finding description.
	Description string `json:"description,omitempty"`

	// Count is the number of affected nodes.
	Count int `json:"count"`
}

// NewAuditReport builds the report envelope for a completed or failed run.
// result may be nil for failed runs; it is replaced by an empty result so
// writers never have to nil-check trees.
func NewAuditReport(documentURL string, result *AnalysisResult, runErr error) *AuditReport {
	report := &AuditReport{
		DocumentURL: documentURL,
		DateAudited: time.Now(),
		Result:      result,
	}

	if runErr != nil {
		report.Failed = true
		report.ErrorMessage = runErr.Error()
	}
	if report.Result == nil {
		report.Result = EmptyAnalysisResult(false)
	}

	report.Result.WalkHeadings(func(*HeadingNode) { report.HeadingCount++ })
	report.Result.WalkLandmarks(func(*LandmarkNode) { report.LandmarkCount++ })

	for _, d := range report.Result.Diagnostics {
		info := GetDiagnosticInfo(d.TitleKey)
		report.Findings = append(report.Findings, Finding{
			TitleKey:     d.TitleKey,
			Severity:     d.Severity,
			SeverityText: d.Severity.String(),
			Title:        info.Title,
			Description:  info.Description,
			Count:        d.Count,
		})

		switch d.Severity {
		case SeverityError:
			report.ErrorCount += d.Count
		case SeverityWarning:
			report.WarningCount += d.Count
		}
	}

	return report
}

// TotalFindings returns the summed count of all findings.
func (r *AuditReport) TotalFindings() int {
	return r.ErrorCount + r.WarningCount
}

// HasFindings reports whether the audit produced any findings.
func (r *AuditReport) HasFindings() bool {
	return len(r.Findings) > 0
}

// GetFindingsBySeverity returns findings filtered by severity.
func (r *AuditReport) GetFindingsBySeverity(severity Severity) []Finding {
	var result []Finding
	for _, f := range r.Findings {
		if f.Severity == severity {
			result = append(result, f)
		}
	}
	return result
}
