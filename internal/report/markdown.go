package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/crinis/mindfula11y-sub001/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the audit report in Markdown format.
func (w *MarkdownWriter) Write(report *model.AuditReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeHeadingOutline(md, report)
	w.writeLandmarkOutline(md, report)
	w.writeFindings(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with audit information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.AuditReport) {
	md.H1("Accessibility Structure Audit")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Document", "`" + report.DocumentURL + "`"},
			{"Audit Date", report.DateAudited.Format("2006-01-02 15:04:05 MST")},
			{"Headings", strconv.Itoa(report.HeadingCount)},
			{"Landmarks", strconv.Itoa(report.LandmarkCount)},
			{"Status", w.getStatusText(report)},
		},
	})
	md.PlainText("")
}

// getStatusText returns the status text based on report state.
func (w *MarkdownWriter) getStatusText(report *model.AuditReport) string {
	if report.Failed {
		return "❌ Failed - " + report.ErrorMessage
	}
	return "✅ Complete"
}

// writeSummary writes the severity summary section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.AuditReport) {
	md.H2("Severity Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Severity", "Count"},
		Rows: [][]string{
			{"🔴 Error", strconv.Itoa(report.ErrorCount)},
			{"🟡 Warning", strconv.Itoa(report.WarningCount)},
			{"**Total**", "**" + strconv.Itoa(report.TotalFindings()) + "**"},
		},
	})
	md.PlainText("")

	// Add pie chart if there are findings
	if report.HasFindings() {
		w.writePieChart(md, report)
	}

	// Add alert based on severity
	w.writeAlert(md, report)
}

// writePieChart writes a mermaid pie chart for severity distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.AuditReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Finding Severity Distribution"),
		piechart.WithShowData(true),
	)

	if report.ErrorCount > 0 {
		chart.LabelAndIntValue("Error", uint64(report.ErrorCount))
	}
	if report.WarningCount > 0 {
		chart.LabelAndIntValue("Warning", uint64(report.WarningCount))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on severity counts.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.AuditReport) {
	switch {
	case report.ErrorCount > 0:
		md.Cautionf(
			"Structural accessibility errors detected! %d error(s) affect how assistive technology users navigate this document.",
			report.ErrorCount,
		)
	case report.WarningCount > 0:
		md.Warningf(
			"Structural warnings detected. %d warning(s) may make landmark navigation ambiguous.",
			report.WarningCount,
		)
	default:
		md.Tip("No heading or landmark structure issues detected.")
	}
	md.PlainText("")
}

// writeHeadingOutline writes the heading tree as a nested list.
func (w *MarkdownWriter) writeHeadingOutline(md *markdown.Markdown, report *model.AuditReport) {
	md.H2("Heading Outline")
	md.PlainText("")

	if report.Result == nil || len(report.Result.Headings) == 0 {
		md.PlainText("No headings found.")
		md.PlainText("")
		return
	}

	var sb strings.Builder
	for _, root := range report.Result.Headings {
		w.writeHeadingNode(&sb, root, 0)
	}
	md.PlainText(strings.TrimRight(sb.String(), "\n"))
	md.PlainText("")
}

// writeHeadingNode writes one heading list item and its children.
func (w *MarkdownWriter) writeHeadingNode(sb *strings.Builder, node *model.HeadingNode, depth int) {
	indent := strings.Repeat("  ", depth)
	text := node.Text
	if text == "" {
		text = "(empty heading)"
	}

	sb.WriteString(indent)
	sb.WriteString("- ")
	if node.HasError() {
		sb.WriteString("⚠️ ")
	}
	sb.WriteString("**H")
	sb.WriteString(strconv.Itoa(node.Level))
	sb.WriteString("** ")
	sb.WriteString(text)
	if node.HasError() {
		sb.WriteString(" *(skipped ")
		sb.WriteString(strconv.Itoa(node.SkippedLevels))
		sb.WriteString(" level(s))*")
	}
	sb.WriteString("\n")

	for _, child := range node.Children {
		w.writeHeadingNode(sb, child, depth+1)
	}
}

// writeLandmarkOutline writes the landmark tree as a nested list.
func (w *MarkdownWriter) writeLandmarkOutline(md *markdown.Markdown, report *model.AuditReport) {
	md.H2("Landmark Outline")
	md.PlainText("")

	if report.Result == nil || len(report.Result.Landmarks) == 0 {
		md.PlainText("No landmarks found.")
		md.PlainText("")
		return
	}

	var sb strings.Builder
	for _, root := range report.Result.Landmarks {
		w.writeLandmarkNode(&sb, root, 0)
	}
	md.PlainText(strings.TrimRight(sb.String(), "\n"))
	md.PlainText("")
}

// writeLandmarkNode writes one landmark list item and its children.
func (w *MarkdownWriter) writeLandmarkNode(sb *strings.Builder, node *model.LandmarkNode, depth int) {
	indent := strings.Repeat("  ", depth)

	sb.WriteString(indent)
	sb.WriteString("- ")
	if node.HasError() {
		sb.WriteString("⚠️ ")
	}
	sb.WriteString("**")
	sb.WriteString(string(node.Role))
	sb.WriteString("**")
	if node.AccessibleName != "" {
		sb.WriteString(" \"")
		sb.WriteString(node.AccessibleName)
		sb.WriteString("\"")
	}
	if node.HasError() {
		reasons := make([]string, 0, len(node.ErrorReasons))
		for _, r := range node.ErrorReasons {
			reasons = append(reasons, string(r))
		}
		sb.WriteString(" *(")
		sb.WriteString(strings.Join(reasons, ", "))
		sb.WriteString(")*")
	}
	sb.WriteString("\n")

	for _, child := range node.Children {
		w.writeLandmarkNode(sb, child, depth+1)
	}
}

// writeFindings writes all findings grouped by severity.
func (w *MarkdownWriter) writeFindings(md *markdown.Markdown, report *model.AuditReport) {
	md.H2("Findings")
	md.PlainText("")

	if !report.HasFindings() {
		md.PlainText("No structural findings detected.")
		md.PlainText("")
		return
	}

	severities := []struct {
		level  model.Severity
		header string
	}{
		{model.SeverityError, "### 🔴 Errors"},
		{model.SeverityWarning, "### 🟡 Warnings"},
	}

	for _, sev := range severities {
		findings := report.GetFindingsBySeverity(sev.level)
		if len(findings) == 0 {
			continue
		}

		md.PlainText(sev.header)
		md.PlainText("")
		w.writeFindingsTable(md, findings)
	}
}

// writeFindingsTable writes a table of findings with details.
func (w *MarkdownWriter) writeFindingsTable(md *markdown.Markdown, findings []model.Finding) {
	rows := make([][]string, len(findings))
	for i, f := range findings {
		rows[i] = []string{
			f.Title,
			strconv.Itoa(f.Count),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Finding", "Affected Elements"},
		Rows:   rows,
	})
	md.PlainText("")

	// Add detailed descriptions for all findings
	for _, f := range findings {
		if f.Description != "" {
			md.Details(f.Title, f.Description)
		}
	}
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [mindfula11y](https://github.com/crinis/mindfula11y-sub001)*")
}
