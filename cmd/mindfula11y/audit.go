package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/crinis/mindfula11y-sub001/internal/analyze"
	"github.com/crinis/mindfula11y-sub001/internal/config"
	"github.com/crinis/mindfula11y-sub001/internal/database"
	"github.com/crinis/mindfula11y-sub001/internal/fetch"
	"github.com/crinis/mindfula11y-sub001/internal/log"
	"github.com/crinis/mindfula11y-sub001/internal/model"
	"github.com/crinis/mindfula11y-sub001/internal/report"
)

// NewAuditCmd creates the audit command.
func NewAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit [document-url]",
		Short: "Audit rendered documents for heading and landmark violations",
		Long: `Audit fetches the rendered markup of each document and analyzes its
structure for accessibility violations:
- Heading hierarchy problems (missing H1, skipped heading levels)
- Landmark region problems (missing or duplicate main landmark,
  duplicate labels, multiple unlabeled regions of the same role)

Examples:
  # Audit a single document
  mindfula11y audit https://example.com/page

  # Audit multiple documents concurrently
  mindfula11y audit https://example.com/a https://example.com/b

  # Output JSON report
  mindfula11y audit --json https://example.com/page

  # Write a Markdown report to a file
  mindfula11y audit --markdown -o report.md https://example.com/page

  # Use a custom configuration file
  mindfula11y audit -c myconfig.yaml https://example.com/page

Configuration file (.mindfula11y) example:
  sources:
    cms.example.com:
      cookie: "session_id=abc123"
      headers:
        Authorization: "Bearer token"
  defaults:
    headers:
      Accept-Language: "en"`,
		Args: cobra.ArbitraryArgs,
		RunE: runAuditCmd,
	}

	// Fetch behavior flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each document fetch")
	cmd.Flags().Int64P("max-body-size", "s", config.DefaultMaxBodySize,
		"Maximum response body size in bytes")

	// Batch auditing flags
	cmd.Flags().IntP("concurrency", "b", config.DefaultConcurrency,
		"Number of concurrent audits")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .mindfula11y in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// History flags
	cmd.Flags().Bool("no-save", false,
		"Do not save audit results to the history database")

	return cmd
}

// runAuditCmd executes the audit command.
func runAuditCmd(cmd *cobra.Command, args []string) error {
	// Build config from flags
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := log.NewLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runAudit(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.MaxBodySize, err = cmd.Flags().GetInt64("max-body-size")
	if err != nil {
		return nil, err
	}

	cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load per-source configurations from config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.SourceConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.SourceConfigs = &config.File{
			Sources: make(map[string]config.SourceConfig),
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave
	cfg.DBDir = config.XDGDataDir()

	// Get positional arguments (document URLs)
	cfg.Targets = args

	return cfg, nil
}

// runAudit executes the audit.
func runAudit(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting audit",
		"targets", cfg.Targets,
		"concurrency", cfg.Concurrency,
		"saveToDB", cfg.SaveToDB,
	)

	// Open database connection if saving is enabled
	var db *database.AuditDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	// Use batch processing for parallel auditing if multiple targets
	if len(cfg.Targets) > 1 && cfg.Concurrency > 1 {
		return runBatchAudit(ctx, cfg, db, logger)
	}

	return runSequentialAudit(ctx, cfg, db, logger)
}

// runSequentialAudit audits targets one at a time.
func runSequentialAudit(ctx context.Context, cfg *config.Config, db *database.AuditDB, logger *slog.Logger) error {
	for _, target := range cfg.Targets {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		source := sourceForTarget(cfg, target)
		task := analyze.NewTask(source, analyze.WithLogger(logger))

		fmt.Printf("Auditing %s...\n", target)
		startTime := time.Now()

		result, runErr := task.Run(ctx, target)
		if runErr != nil {
			logger.Error("audit failed", "target", target, "error", runErr)
			fmt.Fprintf(os.Stderr, "Audit error for %s: %v\n", target, runErr)
		}

		elapsed := time.Since(startTime)
		fmt.Printf("Audit completed in %s\n\n", elapsed.Round(time.Millisecond))

		auditReport := model.NewAuditReport(target, result, runErr)

		// Generate and output report
		if err := outputReport(cfg, auditReport); err != nil {
			logger.Error("report failed", "target", target, "error", err)
		}

		// Save to database if enabled
		if err := saveAuditReport(ctx, db, auditReport, logger); err != nil {
			logger.Error("failed to save audit report", "target", target, "error", err)
		}
	}

	return nil
}

// runBatchAudit audits multiple targets concurrently.
func runBatchAudit(ctx context.Context, cfg *config.Config, db *database.AuditDB, logger *slog.Logger) error {
	fmt.Printf("Starting batch audit of %d targets (concurrency: %d)...\n\n",
		len(cfg.Targets), cfg.Concurrency)

	startTime := time.Now()

	// Warn user about batch processing limitation
	if cfg.SourceConfigs != nil && len(cfg.SourceConfigs.Sources) > 0 {
		logger.Warn("batch processing uses default source config only; source-specific configs (cookies, headers) are ignored",
			"sourceCount", len(cfg.SourceConfigs.Sources))
		fmt.Fprintf(os.Stderr, "Warning: Source-specific configurations are ignored in batch mode. Use sequential mode (--concurrency 1) to apply per-source settings.\n\n")
	}

	batch := analyze.NewBatch(
		func() *analyze.Task {
			// Batch tasks share the default source config; per-source
			// settings would require per-target task creation.
			source := defaultSource(cfg)
			return analyze.NewTask(source, analyze.WithLogger(logger))
		},
		analyze.WithConcurrency(cfg.Concurrency),
		analyze.WithBatchLogger(logger),
	)

	// Process with callback for streaming output
	var mu sync.Mutex
	err := batch.Process(ctx, cfg.Targets, func(auditReport *model.AuditReport, index int) {
		mu.Lock()
		defer mu.Unlock()

		fmt.Printf("[%d/%d] Audit completed: %s\n", index+1, len(cfg.Targets), auditReport.DocumentURL)

		if err := outputReport(cfg, auditReport); err != nil {
			logger.Error("report failed", "target", auditReport.DocumentURL, "error", err)
		}

		if err := saveAuditReport(ctx, db, auditReport, logger); err != nil {
			logger.Error("failed to save audit report", "target", auditReport.DocumentURL, "error", err)
		}
	})

	elapsed := time.Since(startTime)
	fmt.Printf("\nBatch audit completed in %s\n", elapsed.Round(time.Millisecond))

	return err
}

// sourceForTarget builds an HTTP source with the target's merged settings.
func sourceForTarget(cfg *config.Config, target string) fetch.Source {
	opts := baseFetchOptions(cfg)

	host := target
	if u, err := url.Parse(target); err == nil && u.Host != "" {
		host = u.Host
	}

	if cfg.SourceConfigs != nil {
		sc := cfg.SourceConfigs.GetSourceConfig(host)
		if sc.Cookie != "" {
			opts = append(opts, fetch.WithCookie(sc.Cookie))
		}
		if len(sc.Headers) > 0 {
			opts = append(opts, fetch.WithHeaders(sc.Headers))
		}
	}

	return fetch.NewHTTPSource(opts...)
}

// defaultSource builds an HTTP source with only the default settings.
func defaultSource(cfg *config.Config) fetch.Source {
	opts := baseFetchOptions(cfg)

	if cfg.SourceConfigs != nil {
		sc := cfg.SourceConfigs.Defaults
		if sc.Cookie != "" {
			opts = append(opts, fetch.WithCookie(sc.Cookie))
		}
		if len(sc.Headers) > 0 {
			opts = append(opts, fetch.WithHeaders(sc.Headers))
		}
	}

	return fetch.NewHTTPSource(opts...)
}

// baseFetchOptions returns the fetch options shared by every target.
func baseFetchOptions(cfg *config.Config) []fetch.Option {
	return []fetch.Option{
		fetch.WithClient(&http.Client{Timeout: cfg.Timeout}),
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
	}
}

// outputReport outputs the audit report in the requested format.
func outputReport(cfg *config.Config, auditReport *model.AuditReport) error {
	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Create/overwrite the output file with owner-only permissions.
		// Reports may embed markup fetched from authenticated sources.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	// JSON output (detailed report with all data)
	if cfg.JSONReport {
		writer := report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
		_, err := writer.Write(auditReport)
		return err
	}

	// Markdown output
	if cfg.MarkdownReport {
		writer := report.NewMarkdownWriter(output)
		_, err := writer.Write(auditReport)
		return err
	}

	// Human-readable report (default)
	writer := report.NewSimpleWriter(output)
	_, err := writer.Write(auditReport)
	return err
}

// saveAuditReport saves the audit report to the database if enabled.
// If db is nil, this function is a no-op.
func saveAuditReport(ctx context.Context, db *database.AuditDB, auditReport *model.AuditReport, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	if err := db.SaveAuditReport(ctx, auditReport); err != nil {
		return fmt.Errorf("failed to save audit report: %w", err)
	}

	logger.Info("audit report saved to database", "target", auditReport.DocumentURL)
	return nil
}
