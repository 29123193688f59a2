package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("WIDGETCOND_LOG_LEVEL", "")
	t.Setenv("WIDGETCOND_LOG_FORMAT", "")
	t.Setenv("WIDGETCOND_STRICT_LINT", "")
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "widgetcond.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected Level=warn, got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("expected Format=console, got %s", cfg.Logging.Format)
	}
	if cfg.Lint.Strict {
		t.Error("expected Strict=false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "logging:\n  level: debug\n  format: json\nlint:\n  strict: true\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging config: %+v", cfg.Logging)
	}
	if !cfg.Lint.Strict {
		t.Error("expected Strict=true")
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "lint:\n  strict: true\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected Level=warn, got %s", cfg.Logging.Level)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: info\n")
	t.Setenv("WIDGETCOND_LOG_LEVEL", "error")
	t.Setenv("WIDGETCOND_LOG_FORMAT", "json")
	t.Setenv("WIDGETCOND_STRICT_LINT", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("expected Level=error, got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected Format=json, got %s", cfg.Logging.Format)
	}
	if !cfg.Lint.Strict {
		t.Error("expected Strict=true")
	}
}

func TestLoad_IgnoresMalformedStrictOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("WIDGETCOND_STRICT_LINT", "sometimes")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Lint.Strict {
		t.Error("expected Strict=false")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     string
	}{
		{name: "bad yaml", content: "logging: [\n"},
		{name: "bad level", content: "logging:\n  level: loud\n"},
		{name: "bad format", content: "logging:\n  format: xml\n"},
		{name: "bad env level", content: "", env: "trace"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if tt.env != "" {
				t.Setenv("WIDGETCOND_LOG_LEVEL", tt.env)
			}
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
