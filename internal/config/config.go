package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultTimeout bounds one markup fetch. Document previews are served
	// by the application that requested the audit, so responses are fast;
	// 30 seconds leaves room for slow staging environments.
	DefaultTimeout = 30 * time.Second

	// DefaultConcurrency is the number of documents audited in parallel
	// when multiple targets are given. Audits are cheap (one fetch plus
	// CPU-bound analysis), so a small limit is mostly about politeness
	// toward the serving application.
	DefaultConcurrency = 4

	// DefaultMaxBodySize limits the response body size to read. 5MB is
	// sufficient for any realistic rendered document while preventing
	// memory exhaustion from unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultUserAgent identifies the auditor in HTTP requests.
	DefaultUserAgent = "mindfula11y/1.0 (+https://github.com/crinis/mindfula11y-sub001)"

	// AppName is the application name used for XDG directory paths.
	AppName = "mindfula11y"
)

// Config holds all settings for an audit invocation.
// It is populated from CLI flags and passed through the application via
// dependency injection rather than global state.
type Config struct {
	// Targets is the list of document URLs to audit.
	Targets []string

	// Timeout is the per-fetch timeout.
	Timeout time.Duration

	// Concurrency is the number of documents audited in parallel.
	Concurrency int

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// UserAgent is the User-Agent header sent with fetch requests.
	UserAgent string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file. If empty, the
	// tool searches for .mindfula11y in the current directory and then in
	// the user's home directory.
	ConfigFilePath string

	// SourceConfigs holds per-source settings loaded from the config file.
	SourceConfigs *File

	// JSONReport enables JSON report output.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report. When empty, the
	// report goes to stdout.
	ReportFile string

	// DBDir is the directory for the SQLite audit-history database.
	DBDir string

	// SaveToDB indicates whether completed audits are saved to the history
	// database.
	SaveToDB bool
}

// NewConfig creates a Config with default values.
//
// Design decision: We use a constructor instead of relying on zero values
// because most defaults are non-zero. This also documents the defaults.
func NewConfig() *Config {
	return &Config{
		Timeout:     DefaultTimeout,
		Concurrency: DefaultConcurrency,
		MaxBodySize: DefaultMaxBodySize,
		UserAgent:   DefaultUserAgent,
	}
}

// XDGDataDir returns the XDG data directory for the auditor.
// On Linux: ~/.local/share/mindfula11y
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for the auditor.
// On Linux: ~/.config/mindfula11y
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid, returning the first
// problem found. Called once after CLI parsing, before any auditing begins.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}
