// Package config holds the auditor's configuration: CLI-provided settings,
// per-source overrides loaded from the .mindfula11y YAML file, and XDG
// directory resolution for the audit history database.
package config
