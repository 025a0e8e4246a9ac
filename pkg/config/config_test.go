package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/portalsync/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "portalsync.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Root != "plugins" || cfg.Extension != ".yml" || cfg.Output != "build/plugins.json" {
		t.Errorf("Default() = %+v", cfg)
	}
	h := cfg.HTTPConfig()
	if h.ConnectTimeout != 20*time.Second || h.ReadTimeout != 20*time.Second || h.BreakerThreshold != 5 {
		t.Errorf("HTTPConfig() = %+v", h)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
root = "catalog"

[http]
read_timeout = "1m30s"
breaker_threshold = 0
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Root != "catalog" {
		t.Errorf("Root = %q", cfg.Root)
	}
	if cfg.Output != "build/plugins.json" || cfg.HTTP.ConnectTimeout.Duration != 20*time.Second {
		t.Errorf("unset keys lost their defaults: %+v", cfg)
	}
	if cfg.HTTP.ReadTimeout.Duration != 90*time.Second {
		t.Errorf("ReadTimeout = %v", cfg.HTTP.ReadTimeout)
	}
	if cfg.HTTP.BreakerThreshold != 0 {
		t.Errorf("BreakerThreshold = %d, want explicit 0", cfg.HTTP.BreakerThreshold)
	}
}

func TestLoadDefaultFileMissing(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.Code
	}{
		{"syntax", `root = `, errors.ErrCodeInvalidConfig},
		{"bad duration", "[http]\nread_timeout = \"soon\"", errors.ErrCodeInvalidConfig},
		{"unknown key", `rooot = "plugins"`, errors.ErrCodeInvalidConfig},
		{"bad extension", `extension = "yml"`, errors.ErrCodeInvalidConfig},
		{"negative threshold", "[http]\nbreaker_threshold = -1", errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if !errors.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want %s", err, tt.code)
			}
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(absent) error = %v, want FILE_NOT_FOUND", err)
	}
}
