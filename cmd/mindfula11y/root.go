// Package main provides the entry point for the mindfula11y CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for mindfula11y.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mindfula11y",
		Short: "Heading and landmark structure auditor for rendered HTML",
		Long: `mindfula11y audits rendered HTML documents for structural accessibility
problems: broken heading hierarchies (missing H1, skipped levels) and
landmark region violations (missing or duplicate main, ambiguous labels).

It fetches the rendered markup of each document, reconstructs the heading
and landmark trees, and reports every violation with its severity.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAuditCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
