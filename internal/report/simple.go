package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/crinis/mindfula11y-sub001/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with indented outline views
// of the heading and landmark trees and clear section formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no findings are shown.
	showEmpty bool

	// verbose enables additional detail in the output.
	verbose bool

	// titleCaser title-cases landmark role names for display.
	titleCaser cases.Caser
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  false,
		verbose:    false,
		titleCaser: cases.Title(language.English),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full report in human-readable format.
func (w *SimpleWriter) Write(report *model.AuditReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSummary(&sb, report)
	w.writeHeadingOutline(&sb, report)
	w.writeLandmarkOutline(&sb, report)
	w.writeFindings(&sb, report)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with audit information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.AuditReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                       MINDFULA11Y AUDIT REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Document:   %s\n", report.DocumentURL))
	sb.WriteString(fmt.Sprintf("Audit Date: %s\n", report.DateAudited.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Headings:   %d\n", report.HeadingCount))
	sb.WriteString(fmt.Sprintf("Landmarks:  %d\n", report.LandmarkCount))

	if report.Failed {
		sb.WriteString(fmt.Sprintf("Status:     FAILED - %s\n", report.ErrorMessage))
	} else {
		sb.WriteString("Status:     Complete\n")
	}

	sb.WriteString("\n")
}

// writeSummary writes the severity summary section.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.AuditReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("SEVERITY SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  ERRORS:   %d\n", report.ErrorCount))
	sb.WriteString(fmt.Sprintf("  WARNINGS: %d\n", report.WarningCount))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  TOTAL:    %d findings\n", report.TotalFindings()))
	sb.WriteString("\n")
}

// writeHeadingOutline writes the heading tree as an indented outline.
func (w *SimpleWriter) writeHeadingOutline(sb *strings.Builder, report *model.AuditReport) {
	if report.Result == nil || (len(report.Result.Headings) == 0 && !w.showEmpty) {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("HEADING OUTLINE\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(report.Result.Headings) == 0 {
		sb.WriteString("  No headings found\n")
	} else {
		for _, root := range report.Result.Headings {
			w.writeHeadingNode(sb, root, 1)
		}
	}
	sb.WriteString("\n")
}

// writeHeadingNode writes one heading and its children, indented by depth.
func (w *SimpleWriter) writeHeadingNode(sb *strings.Builder, node *model.HeadingNode, depth int) {
	indent := strings.Repeat("  ", depth)
	text := node.Text
	if text == "" {
		text = "(empty heading)"
	}

	if node.HasError() {
		sb.WriteString(fmt.Sprintf("%s[!] H%d %s (skipped %d level(s))\n", indent, node.Level, text, node.SkippedLevels))
	} else {
		sb.WriteString(fmt.Sprintf("%sH%d %s\n", indent, node.Level, text))
	}

	for _, child := range node.Children {
		w.writeHeadingNode(sb, child, depth+1)
	}
}

// writeLandmarkOutline writes the landmark tree as an indented outline.
func (w *SimpleWriter) writeLandmarkOutline(sb *strings.Builder, report *model.AuditReport) {
	if report.Result == nil || (len(report.Result.Landmarks) == 0 && !w.showEmpty) {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("LANDMARK OUTLINE\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(report.Result.Landmarks) == 0 {
		sb.WriteString("  No landmarks found\n")
	} else {
		for _, root := range report.Result.Landmarks {
			w.writeLandmarkNode(sb, root, 1)
		}
	}
	sb.WriteString("\n")
}

// writeLandmarkNode writes one landmark and its children, indented by depth.
func (w *SimpleWriter) writeLandmarkNode(sb *strings.Builder, node *model.LandmarkNode, depth int) {
	indent := strings.Repeat("  ", depth)
	label := w.titleCaser.String(string(node.Role))
	if node.AccessibleName != "" {
		label = fmt.Sprintf("%s %q", label, node.AccessibleName)
	}

	if node.HasError() {
		reasons := make([]string, 0, len(node.ErrorReasons))
		for _, r := range node.ErrorReasons {
			reasons = append(reasons, string(r))
		}
		sb.WriteString(fmt.Sprintf("%s[!] %s (%s)\n", indent, label, strings.Join(reasons, ", ")))
	} else {
		sb.WriteString(fmt.Sprintf("%s%s\n", indent, label))
	}

	for _, child := range node.Children {
		w.writeLandmarkNode(sb, child, depth+1)
	}
}

// writeFindings writes all findings grouped by severity.
func (w *SimpleWriter) writeFindings(sb *strings.Builder, report *model.AuditReport) {
	if !report.HasFindings() && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("FINDINGS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	// Write findings in order of severity (errors first)
	severities := []model.Severity{
		model.SeverityError,
		model.SeverityWarning,
	}

	for _, severity := range severities {
		findings := report.GetFindingsBySeverity(severity)
		if len(findings) == 0 && !w.showEmpty {
			continue
		}

		w.writeFindingsForSeverity(sb, severity, findings)
	}
}

// writeFindingsForSeverity writes findings of a specific severity level.
func (w *SimpleWriter) writeFindingsForSeverity(sb *strings.Builder, severity model.Severity, findings []model.Finding) {
	indicator := w.getSeverityIndicator(severity)
	sb.WriteString(fmt.Sprintf("[%s] %s\n", indicator, severity.String()))

	if len(findings) == 0 {
		sb.WriteString("  No findings\n\n")
		return
	}

	for _, finding := range findings {
		sb.WriteString(fmt.Sprintf("  * %s (x%d)\n", finding.Title, finding.Count))
		if w.verbose && finding.Description != "" {
			sb.WriteString(fmt.Sprintf("    Description: %s\n", finding.Description))
		}
	}
	sb.WriteString("\n")
}

// getSeverityIndicator returns a visual indicator for the severity level.
func (w *SimpleWriter) getSeverityIndicator(severity model.Severity) string {
	switch severity {
	case model.SeverityError:
		return "!!"
	case model.SeverityWarning:
		return "!"
	default:
		return "?"
	}
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by mindfula11y\n")
	sb.WriteString("https://github.com/crinis/mindfula11y-sub001\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
