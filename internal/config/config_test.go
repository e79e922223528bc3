package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.StrsimThreshold != 0.8 {
		t.Errorf("StrsimThreshold = %v, want 0.8", cfg.StrsimThreshold)
	}
	if cfg.SkipInvalid || cfg.Quiet {
		t.Errorf("SkipInvalid/Quiet should default to false")
	}
}

func TestLoadWithNoPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "marc21.toml")
	contents := "[match]\nstrsim_threshold = 0.9\n\n[reader]\nskip_invalid = true\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StrsimThreshold != 0.9 {
		t.Errorf("StrsimThreshold = %v, want 0.9", cfg.StrsimThreshold)
	}
	if !cfg.SkipInvalid {
		t.Errorf("SkipInvalid should be true")
	}
	if cfg.Quiet {
		t.Errorf("Quiet should default to false when absent from the file")
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("not = [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Errorf("expected an error for malformed TOML")
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "marc21.toml")
	contents := "[match]\nstrsim_threshold = 0.9\n\n[reader]\nquiet = false\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MARC21_STRSIM_THRESHOLD", "0.5")
	t.Setenv("MARC21_QUIET", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StrsimThreshold != 0.5 {
		t.Errorf("StrsimThreshold = %v, want 0.5 from environment", cfg.StrsimThreshold)
	}
	if !cfg.Quiet {
		t.Errorf("Quiet should be true from environment")
	}
}

func TestEnvironmentRejectsInvalidValue(t *testing.T) {
	t.Setenv("MARC21_STRSIM_THRESHOLD", "not-a-number")
	if _, err := Load(""); err == nil {
		t.Errorf("expected an error for an invalid MARC21_STRSIM_THRESHOLD")
	}
}
