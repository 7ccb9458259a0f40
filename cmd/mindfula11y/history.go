package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/crinis/mindfula11y-sub001/internal/config"
	"github.com/crinis/mindfula11y-sub001/internal/database"
	"github.com/crinis/mindfula11y-sub001/internal/model"
	"github.com/crinis/mindfula11y-sub001/internal/report"
)

// Constants for structure trend direction and summary messages.
const (
	trendDirectionWorsened  = "worsened"
	trendDirectionImproved  = "improved"
	trendDirectionUnchanged = "unchanged"
	noFindingsMessage       = "No findings"
)

// NewHistoryCmd creates the history command.
// This command inspects audit results stored in the database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [document-url]",
		Short: "Inspect stored audit results for a document",
		Long: `History lists stored audits for a document and compares audits over time.

This command retrieves historical audit data from the database and shows:
- Past audit runs with their finding counts
- A stored report in any output format
- Differences between two audits (new and resolved findings)

Examples:
  # List audit history for a document
  mindfula11y history https://example.com/page

  # Show a stored report by ID
  mindfula11y history --show-id 5 https://example.com/page

  # Compare the latest two audits
  mindfula11y history --compare https://example.com/page

  # Compare the latest audit with a specific historical audit
  mindfula11y history --compare --with-audit-id 3 https://example.com/page

  # List all audited documents in the database
  mindfula11y history --list-documents`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	// History listing flags
	cmd.Flags().BoolP("list-documents", "L", false,
		"List all audited documents in the database")

	// Stored report flags
	cmd.Flags().Int64P("show-id", "i", 0,
		"Show the stored report with this ID")

	// Comparison flags
	cmd.Flags().Bool("compare", false,
		"Compare the latest audit with a previous one")
	cmd.Flags().Int64("with-audit-id", 0,
		"Compare with a specific audit by ID (implies --compare)")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output in Markdown format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	listDocuments, err := cmd.Flags().GetBool("list-documents")
	if err != nil {
		return err
	}

	// Validate arguments before opening the database so argument errors do
	// not leave the database locked.
	var documentURL string
	if !listDocuments {
		if len(args) == 0 {
			return errors.New("document URL is required (use --list-documents to see available documents)")
		}
		documentURL = args[0]
	}

	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if listDocuments {
		return listAuditedDocuments(ctx, db)
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	if jsonOutput && markdownOutput {
		return config.ErrConflictingReportFormats
	}

	showID, err := cmd.Flags().GetInt64("show-id")
	if err != nil {
		return err
	}
	if showID > 0 {
		return showStoredReport(ctx, db, documentURL, showID, jsonOutput, markdownOutput)
	}

	compare, err := cmd.Flags().GetBool("compare")
	if err != nil {
		return err
	}
	withAuditID, err := cmd.Flags().GetInt64("with-audit-id")
	if err != nil {
		return err
	}
	if compare || withAuditID > 0 {
		return runComparison(ctx, db, documentURL, withAuditID, jsonOutput, markdownOutput)
	}

	return listAuditHistory(ctx, db, documentURL)
}

// listAuditedDocuments lists all documents that have audit records in the database.
func listAuditedDocuments(ctx context.Context, db *database.AuditDB) error {
	documents, err := db.ListAuditedDocuments(ctx)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(documents) == 0 {
		fmt.Println("No audited documents found in the database.")
		fmt.Println("\nUse 'mindfula11y audit <document-url>' to audit a document.")
		return nil
	}

	fmt.Printf("Audited documents (%d):\n\n", len(documents))
	for _, document := range documents {
		fmt.Printf("  • %s\n", document)
	}
	fmt.Println("\nUse 'mindfula11y history <document-url>' to see audit history for a document.")

	return nil
}

// listAuditHistory lists all audit records for a specific document.
func listAuditHistory(ctx context.Context, db *database.AuditDB, documentURL string) error {
	audits, err := db.GetAuditHistory(ctx, documentURL)
	if err != nil {
		return fmt.Errorf("failed to get audit history: %w", err)
	}

	if len(audits) == 0 {
		fmt.Printf("No audit history found for %s\n", documentURL)
		fmt.Println("\nUse 'mindfula11y audit' to audit this document.")
		return nil
	}

	fmt.Printf("Audit history for %s (%d audits):\n\n", documentURL, len(audits))
	fmt.Printf("  %-6s  %-20s  %s\n", "ID", "Date", "Findings")
	fmt.Println("  " + strings.Repeat("-", 60))

	for _, meta := range audits {
		summary := formatSeveritySummary(meta)
		fmt.Printf("  %-6d  %-20s  %s\n",
			meta.ID,
			meta.Timestamp.Format("2006-01-02 15:04:05"),
			summary,
		)
	}

	fmt.Println("\nUse 'mindfula11y history --compare <document-url>' to compare the latest two audits.")
	fmt.Println("Use 'mindfula11y history --show-id <id> <document-url>' to show a stored report.")

	return nil
}

// formatSeveritySummary formats the severity summary into a human-readable string.
func formatSeveritySummary(meta database.AuditReportMetadata) string {
	if meta.Failed {
		return "FAILED"
	}
	if meta.SeveritySummary == nil {
		return "N/A"
	}

	var parts []string
	if v := meta.SeveritySummary["errors"]; v > 0 {
		parts = append(parts, fmt.Sprintf("E:%d", v))
	}
	if v := meta.SeveritySummary["warnings"]; v > 0 {
		parts = append(parts, fmt.Sprintf("W:%d", v))
	}

	if len(parts) == 0 {
		return noFindingsMessage
	}
	return strings.Join(parts, " ")
}

// showStoredReport prints a stored report in the requested format.
func showStoredReport(ctx context.Context, db *database.AuditDB, documentURL string, id int64, jsonOutput, markdownOutput bool) error {
	stored, err := db.GetAuditReportByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get audit with ID %d: %w", id, err)
	}
	if stored == nil {
		return fmt.Errorf("audit with ID %d not found", id)
	}
	if stored.DocumentURL != documentURL {
		return fmt.Errorf("audit ID %d belongs to %s, not %s", id, stored.DocumentURL, documentURL)
	}

	var writer report.Writer
	switch {
	case jsonOutput:
		writer = report.NewJSONWriter(os.Stdout, report.WithPrettyPrint())
	case markdownOutput:
		writer = report.NewMarkdownWriter(os.Stdout)
	default:
		writer = report.NewSimpleWriter(os.Stdout)
	}

	_, err = writer.Write(stored)
	return err
}

// runComparison compares the latest audit with a previous one.
func runComparison(ctx context.Context, db *database.AuditDB, documentURL string, withAuditID int64, jsonOutput, markdownOutput bool) error {
	current, err := db.GetLatestAuditReport(ctx, documentURL)
	if err != nil {
		return fmt.Errorf("failed to get latest audit: %w", err)
	}
	if current == nil {
		return fmt.Errorf("no audit history found for %s", documentURL)
	}

	var previous *model.AuditReport
	if withAuditID > 0 {
		previous, err = db.GetAuditReportByID(ctx, withAuditID)
		if err != nil {
			return fmt.Errorf("failed to get audit with ID %d: %w", withAuditID, err)
		}
		if previous == nil {
			return fmt.Errorf("audit with ID %d not found", withAuditID)
		}
		if previous.DocumentURL != documentURL {
			return fmt.Errorf("audit ID %d belongs to %s, not %s", withAuditID, previous.DocumentURL, documentURL)
		}
	} else {
		// Default: compare with the audit before the latest one.
		history, err := db.GetAuditHistory(ctx, documentURL)
		if err != nil {
			return fmt.Errorf("failed to get audit history: %w", err)
		}
		if len(history) < 2 {
			return fmt.Errorf("at least 2 audits are required for comparison (found %d)", len(history))
		}
		previous, err = db.GetAuditReportByID(ctx, history[1].ID)
		if err != nil {
			return fmt.Errorf("failed to get audit with ID %d: %w", history[1].ID, err)
		}
	}

	comparison := compareReports(previous, current)

	if jsonOutput {
		return outputComparisonJSON(comparison)
	}
	if markdownOutput {
		return outputComparisonMarkdown(comparison)
	}
	return outputComparisonText(comparison)
}

// ComparisonResult holds the result of comparing two audit reports.
type ComparisonResult struct {
	// DocumentURL is the audited document reference.
	DocumentURL string `json:"document_url"`

	// PreviousAudit contains metadata about the previous audit.
	PreviousAudit AuditMetadata `json:"previous_audit"`

	// CurrentAudit contains metadata about the current audit.
	CurrentAudit AuditMetadata `json:"current_audit"`

	// NewFindings contains findings that are new in the current audit.
	NewFindings []model.Finding `json:"new_findings,omitempty"`

	// ResolvedFindings contains findings that were in the previous audit but
	// not in the current one.
	ResolvedFindings []model.Finding `json:"resolved_findings,omitempty"`

	// UnchangedCount is the number of findings present in both audits.
	UnchangedCount int `json:"unchanged_count"`

	// Trend describes the overall change in structural health.
	Trend Trend `json:"trend"`
}

// AuditMetadata contains metadata about an audit for comparison display.
type AuditMetadata struct {
	// DateAudited is when the audit was performed.
	DateAudited time.Time `json:"date_audited"`

	// TotalFindings is the total finding count in this audit.
	TotalFindings int `json:"total_findings"`

	// ErrorCount is the number of error-severity findings.
	ErrorCount int `json:"error_count"`

	// WarningCount is the number of warning-severity findings.
	WarningCount int `json:"warning_count"`
}

// Trend describes the change in structural health between audits.
type Trend struct {
	// Direction is "improved", "worsened", or "unchanged".
	Direction string `json:"direction"`

	// ErrorDelta is the change in error finding counts.
	ErrorDelta int `json:"error_delta"`

	// WarningDelta is the change in warning finding counts.
	WarningDelta int `json:"warning_delta"`
}

// compareReports compares two audit reports and generates a comparison result.
func compareReports(previous, current *model.AuditReport) *ComparisonResult {
	result := &ComparisonResult{
		DocumentURL: current.DocumentURL,
		PreviousAudit: AuditMetadata{
			DateAudited:   previous.DateAudited,
			TotalFindings: previous.TotalFindings(),
			ErrorCount:    previous.ErrorCount,
			WarningCount:  previous.WarningCount,
		},
		CurrentAudit: AuditMetadata{
			DateAudited:   current.DateAudited,
			TotalFindings: current.TotalFindings(),
			ErrorCount:    current.ErrorCount,
			WarningCount:  current.WarningCount,
		},
	}

	// Build finding maps for comparison. Findings are deduplicated by title
	// key, so the key identifies the violation kind.
	previousFindings := make(map[string]model.Finding)
	for _, f := range previous.Findings {
		previousFindings[f.TitleKey] = f
	}
	currentFindings := make(map[string]model.Finding)
	for _, f := range current.Findings {
		currentFindings[f.TitleKey] = f
	}

	// Iterate the report slices rather than the maps to keep output order
	// stable.
	for _, f := range current.Findings {
		if _, exists := previousFindings[f.TitleKey]; !exists {
			result.NewFindings = append(result.NewFindings, f)
		}
	}
	for _, f := range previous.Findings {
		if _, exists := currentFindings[f.TitleKey]; !exists {
			result.ResolvedFindings = append(result.ResolvedFindings, f)
		} else {
			result.UnchangedCount++
		}
	}

	result.Trend = calculateTrend(result.PreviousAudit, result.CurrentAudit)

	return result
}

// calculateTrend calculates the change in structural health between audits.
func calculateTrend(previous, current AuditMetadata) Trend {
	trend := Trend{
		ErrorDelta:   current.ErrorCount - previous.ErrorCount,
		WarningDelta: current.WarningCount - previous.WarningCount,
	}

	// Errors weigh more than warnings when judging overall direction.
	previousScore := previous.ErrorCount*10 + previous.WarningCount
	currentScore := current.ErrorCount*10 + current.WarningCount

	switch {
	case currentScore < previousScore:
		trend.Direction = trendDirectionImproved
	case currentScore > previousScore:
		trend.Direction = trendDirectionWorsened
	default:
		trend.Direction = trendDirectionUnchanged
	}

	return trend
}

// outputComparisonJSON outputs the comparison result in JSON format.
func outputComparisonJSON(result *ComparisonResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputComparisonMarkdown outputs the comparison result in Markdown format.
func outputComparisonMarkdown(result *ComparisonResult) error {
	fmt.Printf("# Audit Comparison: %s\n\n", result.DocumentURL)

	fmt.Println("## Summary")
	fmt.Printf("\n**Structure Trend:** %s\n\n", formatTrendDirection(result.Trend.Direction))

	fmt.Println("| Metric | Previous | Current | Change |")
	fmt.Println("|--------|----------|---------|--------|")
	fmt.Printf("| Date | %s | %s | - |\n",
		result.PreviousAudit.DateAudited.Format("2006-01-02 15:04"),
		result.CurrentAudit.DateAudited.Format("2006-01-02 15:04"))
	fmt.Printf("| Errors | %d | %d | %s |\n",
		result.PreviousAudit.ErrorCount,
		result.CurrentAudit.ErrorCount,
		formatDelta(result.Trend.ErrorDelta))
	fmt.Printf("| Warnings | %d | %d | %s |\n",
		result.PreviousAudit.WarningCount,
		result.CurrentAudit.WarningCount,
		formatDelta(result.Trend.WarningDelta))
	fmt.Printf("| **Total** | **%d** | **%d** | **%s** |\n",
		result.PreviousAudit.TotalFindings,
		result.CurrentAudit.TotalFindings,
		formatDelta(result.CurrentAudit.TotalFindings-result.PreviousAudit.TotalFindings))

	if len(result.NewFindings) > 0 {
		fmt.Printf("\n## New Findings (%d)\n\n", len(result.NewFindings))
		for _, f := range result.NewFindings {
			fmt.Printf("- **[%s]** %s (x%d)\n", f.SeverityText, f.Title, f.Count)
		}
	}

	if len(result.ResolvedFindings) > 0 {
		fmt.Printf("\n## Resolved Findings (%d)\n\n", len(result.ResolvedFindings))
		for _, f := range result.ResolvedFindings {
			fmt.Printf("- ~~**[%s]** %s~~\n", f.SeverityText, f.Title)
		}
	}

	if result.UnchangedCount > 0 {
		fmt.Printf("\n---\n\n*%d findings unchanged*\n", result.UnchangedCount)
	}

	return nil
}

// outputComparisonText outputs the comparison result in human-readable text format.
func outputComparisonText(result *ComparisonResult) error {
	fmt.Printf("Audit Comparison: %s\n", result.DocumentURL)
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\nStructure Trend: %s\n", formatTrendDirection(result.Trend.Direction))

	fmt.Printf("\nPrevious audit: %s\n", result.PreviousAudit.DateAudited.Format("2006-01-02 15:04:05"))
	fmt.Printf("Current audit:  %s\n", result.CurrentAudit.DateAudited.Format("2006-01-02 15:04:05"))

	fmt.Println("\nFindings Summary:")
	fmt.Printf("  %-10s  %-10s  %-10s  %-10s\n", "Severity", "Previous", "Current", "Change")
	fmt.Println("  " + strings.Repeat("-", 45))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Error",
		result.PreviousAudit.ErrorCount, result.CurrentAudit.ErrorCount,
		formatDelta(result.Trend.ErrorDelta))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Warning",
		result.PreviousAudit.WarningCount, result.CurrentAudit.WarningCount,
		formatDelta(result.Trend.WarningDelta))
	fmt.Println("  " + strings.Repeat("-", 45))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Total",
		result.PreviousAudit.TotalFindings, result.CurrentAudit.TotalFindings,
		formatDelta(result.CurrentAudit.TotalFindings-result.PreviousAudit.TotalFindings))

	if len(result.NewFindings) > 0 {
		fmt.Printf("\nNew Findings (%d):\n", len(result.NewFindings))
		for _, f := range result.NewFindings {
			fmt.Printf("  [+] [%s] %s (x%d)\n", f.SeverityText, f.Title, f.Count)
		}
	}

	if len(result.ResolvedFindings) > 0 {
		fmt.Printf("\nResolved Findings (%d):\n", len(result.ResolvedFindings))
		for _, f := range result.ResolvedFindings {
			fmt.Printf("  [-] [%s] %s\n", f.SeverityText, f.Title)
		}
	}

	if result.UnchangedCount > 0 {
		fmt.Printf("\nUnchanged: %d findings\n", result.UnchangedCount)
	}

	return nil
}

// formatTrendDirection formats the trend direction for display.
func formatTrendDirection(direction string) string {
	switch direction {
	case trendDirectionImproved:
		return "IMPROVED (fewer or less severe findings)"
	case trendDirectionWorsened:
		return "WORSENED (more or more severe findings)"
	default:
		return "UNCHANGED"
	}
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	} else if delta < 0 {
		return strconv.Itoa(delta)
	}
	return "0"
}
