package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ziadkadry99/biobuilder/internal/api"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ServerURL != "http://localhost:8000" {
		t.Errorf("expected default server_url %q, got %q", DefaultServerURL, cfg.ServerURL)
	}
	if cfg.TimeoutSeconds != 300 {
		t.Errorf("expected default timeout_seconds 300, got %d", cfg.TimeoutSeconds)
	}
	if cfg.Timeout() != 5*time.Minute {
		t.Errorf("expected 5m timeout, got %s", cfg.Timeout())
	}
	if cfg.ExportDir != "." {
		t.Errorf("expected default export_dir %q, got %q", ".", cfg.ExportDir)
	}
	if cfg.LogLevel != LogInfo {
		t.Errorf("expected default log_level %q, got %q", LogInfo, cfg.LogLevel)
	}
	if cfg.Model != "" {
		t.Errorf("expected no default model, got %q", cfg.Model)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.biobuilder.yml")

	original := DefaultConfig()
	original.ServerURL = "https://bio.example.org"
	original.Model = "llama3"
	original.TimeoutSeconds = 60
	original.ExportDir = "exports"
	original.LogLevel = LogDebug
	original.NoColor = true

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if *loaded != *original {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", *loaded, *original)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.ServerURL != DefaultServerURL {
		t.Errorf("expected default server_url, got %q", cfg.ServerURL)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yml")
	if err := os.WriteFile(path, []byte("model: mistral\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Model != "mistral" {
		t.Errorf("model: got %q", cfg.Model)
	}
	if cfg.TimeoutSeconds != 300 || cfg.ServerURL != DefaultServerURL {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yml")
	if err := os.WriteFile(path, []byte("server_url: [unclosed\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("BIOBUILDER_SERVER_URL", "http://bio.internal:9000")
	t.Setenv("BIOBUILDER_MODEL", "gemma")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.ServerURL != "http://bio.internal:9000" {
		t.Errorf("env override failed: got %q", loaded.ServerURL)
	}
	if loaded.Model != "gemma" {
		t.Errorf("env override failed: got %q", loaded.Model)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"https", func(c *Config) { c.ServerURL = "https://bio.example.org/base" }, false},
		{"empty server", func(c *Config) { c.ServerURL = "" }, true},
		{"no scheme", func(c *Config) { c.ServerURL = "localhost:8000" }, true},
		{"ftp", func(c *Config) { c.ServerURL = "ftp://host" }, true},
		{"negative timeout", func(c *Config) { c.TimeoutSeconds = -1 }, true},
		{"no timeout", func(c *Config) { c.TimeoutSeconds = 0 }, false},
		{"empty export dir", func(c *Config) { c.ExportDir = "" }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"empty log level", func(c *Config) { c.LogLevel = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestModelItems(t *testing.T) {
	models := []api.Model{{ID: "llama3", Name: "Llama 3"}, {ID: "raw"}}
	items := modelItems(models)
	want := []string{serverDefault, "Llama 3", "raw"}
	if len(items) != len(want) {
		t.Fatalf("items = %v", items)
	}
	for i := range want {
		if items[i] != want[i] {
			t.Errorf("items[%d] = %q, want %q", i, items[i], want[i])
		}
	}

	if got := modelAt(models, 0); got != "" {
		t.Errorf("index 0 should be the server default, got %q", got)
	}
	if got := modelAt(models, 2); got != "raw" {
		t.Errorf("modelAt(2) = %q", got)
	}
}

func TestValidateServerURL(t *testing.T) {
	if err := validateServerURL("http://localhost:8000"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := validateServerURL("not a url"); err == nil {
		t.Error("expected an error")
	}
}
