package config

import (
	"errors"
	"testing"

	"github.com/emiliopalmerini/researchlog/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.File != "research_data.txt" {
		t.Errorf("File = %q", cfg.File)
	}
	if cfg.Format != "legacy" || cfg.Backend != "file" || cfg.StdDevPolicy != "undefined" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.SkipInvalidLines {
		t.Error("SkipInvalidLines should default to false")
	}
	if cfg.DatabaseURL != "file:research.db" || cfg.Addr != "8080" || cfg.LogLevel != "info" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.OTEL.Enabled {
		t.Error("OTEL should be disabled by default")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("RLOG_FILE", "data.csv")
	t.Setenv("RLOG_FORMAT", "csv")
	t.Setenv("RLOG_SKIP_INVALID_LINES", "true")
	t.Setenv("RLOG_STDDEV_POLICY", "zero")
	t.Setenv("RLOG_OTEL_ENABLED", "true")
	t.Setenv("RLOG_OTEL_ENDPOINT", "localhost:4317")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.File != "data.csv" || cfg.Format != "csv" || !cfg.SkipInvalidLines || cfg.StdDevPolicy != "zero" {
		t.Errorf("env not applied: %+v", cfg)
	}
	if !cfg.OTEL.Enabled || cfg.OTEL.Endpoint != "localhost:4317" {
		t.Errorf("OTEL env not applied: %+v", cfg.OTEL)
	}
}

func TestLoad_InvalidBool(t *testing.T) {
	t.Setenv("RLOG_SKIP_INVALID_LINES", "maybe")
	if _, err := Load(); err == nil {
		t.Error("expected error for invalid bool")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"defaults", Config{Format: "legacy", Backend: "file", StdDevPolicy: "undefined"}, nil},
		{"empty names", Config{}, nil},
		{"jsonl libsql zero", Config{Format: "jsonl", Backend: "libsql", StdDevPolicy: "zero"}, nil},
		{"bad format", Config{Format: "xml"}, domain.ErrUnknownFormat},
		{"bad policy", Config{StdDevPolicy: "one"}, domain.ErrUnknownPolicy},
		{"bad backend", Config{Backend: "postgres"}, domain.ErrUnknownBackend},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.cfg.Validate()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Codec == nil {
				t.Error("codec not resolved")
			}
		})
	}
}

func TestValidate_ResolvesValues(t *testing.T) {
	cfg := Config{Format: "csv", Backend: "LIBSQL", StdDevPolicy: "zero"}
	res, err := cfg.Validate()
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if res.Codec.Name() != "csv" {
		t.Errorf("codec = %q", res.Codec.Name())
	}
	if res.Backend != BackendLibSQL {
		t.Errorf("backend = %q", res.Backend)
	}
	if res.Policy != domain.StdDevZero {
		t.Errorf("policy = %q", res.Policy)
	}
}
