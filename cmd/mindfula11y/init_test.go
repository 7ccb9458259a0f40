package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/crinis/mindfula11y-sub001/internal/config"
)

// runInit executes the init command with the given arguments.
func runInit(t *testing.T, args ...string) error {
	t.Helper()

	cmd := NewInitCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}

// TestInitCmd tests configuration file generation.
func TestInitCmd(t *testing.T) {
	t.Parallel()

	t.Run("creates configuration file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), config.DefaultConfigFile)
		if err := runInit(t, "-o", path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read generated file: %v", err)
		}
		if !strings.Contains(string(data), "sources:") {
			t.Error("expected the template to document the sources section")
		}

		// The template must parse as the configuration schema.
		var cf config.File
		if err := yaml.Unmarshal(data, &cf); err != nil {
			t.Errorf("generated template is not valid YAML: %v", err)
		}
	})

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")
		if err := runInit(t, "-o", path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected file to exist: %v", err)
		}
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("existing"), 0600); err != nil {
			t.Fatalf("failed to seed file: %v", err)
		}

		if err := runInit(t, "-o", path); err == nil {
			t.Fatal("expected an error for an existing file")
		}

		data, _ := os.ReadFile(path)
		if string(data) != "existing" {
			t.Error("expected the existing file untouched")
		}
	})

	t.Run("force overwrites existing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("existing"), 0600); err != nil {
			t.Fatalf("failed to seed file: %v", err)
		}

		if err := runInit(t, "-o", path, "-f"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}
		if string(data) == "existing" {
			t.Error("expected the file to be replaced")
		}
	})
}

// TestVersionCmd tests version command output.
func TestVersionCmd(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	cmd := NewVersionCmd()
	cmd.SetOut(&sb)
	cmd.SetArgs(nil)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := sb.String()
	if !strings.Contains(output, "mindfula11y version") {
		t.Errorf("unexpected output: %q", output)
	}
	if !strings.Contains(output, "commit:") || !strings.Contains(output, "built:") {
		t.Errorf("expected commit and build date lines, got %q", output)
	}
}
