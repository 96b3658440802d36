package wsync

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoadProjectConfigMissingFileIsEmpty tests that a project root with no
// .wsync.yml yields an empty, non-nil configuration rather than an error.
func TestLoadProjectConfigMissingFileIsEmpty(t *testing.T) {
	config, err := LoadProjectConfig(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config == nil {
		t.Fatal("expected a non-nil configuration")
	}
	if len(config.IgnoreDefaults) != 0 {
		t.Errorf("expected no ignore defaults, got %v", config.IgnoreDefaults)
	}
}

// TestLoadProjectConfigReadsIgnoreDefaults tests that a project's
// .wsync.yml ignore defaults are parsed.
func TestLoadProjectConfigReadsIgnoreDefaults(t *testing.T) {
	root := t.TempDir()
	content := "ignoreDefaults:\n  - \"*.log\"\n  - \"tmp/\"\n"
	if err := os.WriteFile(filepath.Join(root, ".wsync.yml"), []byte(content), 0644); err != nil {
		t.Fatalf("unable to write config fixture: %v", err)
	}

	config, err := LoadProjectConfig(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stringSlicesEqual(config.IgnoreDefaults, []string{"*.log", "tmp/"}) {
		t.Errorf("unexpected ignore defaults: %v", config.IgnoreDefaults)
	}
}

// TestProjectConfigDefaultIgnorePatterns tests that DefaultIgnorePatterns
// combines the built-in list with project-level additions, and that a nil
// receiver falls back to just the built-in list.
func TestProjectConfigDefaultIgnorePatterns(t *testing.T) {
	var nilConfig *ProjectConfig
	if !stringSlicesEqual(nilConfig.DefaultIgnorePatterns(), DefaultProjectIgnorePatterns) {
		t.Errorf("expected nil config to yield just the built-in defaults")
	}

	config := &ProjectConfig{IgnoreDefaults: []string{"*.log"}}
	combined := config.DefaultIgnorePatterns()
	if len(combined) != len(DefaultProjectIgnorePatterns)+1 {
		t.Fatalf("expected built-in defaults plus one addition, got %v", combined)
	}
	if combined[len(combined)-1] != "*.log" {
		t.Errorf("expected the project addition to be appended last, got %v", combined)
	}
}
