package config

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "ALLOWED_ORIGINS", "ASSETS_DIR", "ASSET_BACKEND", "DEFAULT_MODEL_FILE",
		"DEFAULT_MODEL_NAME", "LOG_LEVEL", "METRICS_ENABLED", "METRICS_PATH",
		"SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT", "SERVER_IDLE_TIMEOUT", "SERVER_SHUTDOWN_TIMEOUT",
		"S3_BUCKET", "S3_REGION", "S3_ENDPOINT", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY",
		"S3_USE_PATH_STYLE", "S3_KEY_PREFIX",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(VariantDefaultModel)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "3001" {
		t.Fatalf("expected default port 3001, got %s", cfg.Server.Port)
	}
	if !reflect.DeepEqual(cfg.Security.AllowedOrigins, []string{"*"}) {
		t.Fatalf("expected permit-all origins, got %v", cfg.Security.AllowedOrigins)
	}
	if cfg.Assets.Backend != BackendFilesystem {
		t.Fatalf("expected filesystem backend, got %s", cfg.Assets.Backend)
	}
	if filepath.Base(cfg.Assets.Dir) != "assets" || !filepath.IsAbs(cfg.Assets.Dir) {
		t.Fatalf("expected absolute <cwd>/assets, got %s", cfg.Assets.Dir)
	}
	if cfg.Assets.DefaultModelFile != "rafale.glb" || cfg.Assets.DefaultModelName != "model.glb" {
		t.Fatalf("unexpected default model settings: %+v", cfg.Assets)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Path != "/metrics" {
		t.Fatalf("unexpected metrics config: %+v", cfg.Metrics)
	}
	if cfg.Server.ShutdownTimeout != 15*time.Second {
		t.Fatalf("unexpected shutdown timeout: %s", cfg.Server.ShutdownTimeout)
	}
}

func TestLoadVariantPorts(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(VariantFoldersOnly)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != "3000" {
		t.Fatalf("expected folders-only default port 3000, got %s", cfg.Server.Port)
	}
	if cfg.Variant.DefaultModelRoute {
		t.Fatal("folders-only variant must not route /model")
	}

	t.Setenv("PORT", "8088")
	cfg, err = Load(VariantFoldersOnly)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr() != ":8088" {
		t.Fatalf("expected :8088, got %s", cfg.Server.Addr())
	}
}

func TestLoadAllowedOrigins(t *testing.T) {
	clearEnv(t)
	t.Setenv("ALLOWED_ORIGINS", " https://a.example.com, ,https://b.example.com ")

	cfg, err := Load(VariantDefaultModel)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []string{"https://a.example.com", "https://b.example.com"}
	if !reflect.DeepEqual(cfg.Security.AllowedOrigins, want) {
		t.Fatalf("AllowedOrigins = %v, want %v", cfg.Security.AllowedOrigins, want)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "non numeric port", env: map[string]string{"PORT": "abc"}},
		{name: "port out of range", env: map[string]string{"PORT": "70000"}},
		{name: "bad duration", env: map[string]string{"SERVER_READ_TIMEOUT": "soon"}},
		{name: "unknown backend", env: map[string]string{"ASSET_BACKEND": "ftp"}},
		{name: "s3 without bucket", env: map[string]string{"ASSET_BACKEND": "s3"}},
		{name: "relative metrics path", env: map[string]string{"METRICS_PATH": "metrics"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for key, value := range tt.env {
				t.Setenv(key, value)
			}
			if _, err := Load(VariantDefaultModel); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadS3Backend(t *testing.T) {
	clearEnv(t)
	t.Setenv("ASSET_BACKEND", "S3")
	t.Setenv("S3_BUCKET", "models")
	t.Setenv("S3_KEY_PREFIX", "/assets/")
	t.Setenv("S3_USE_PATH_STYLE", "false")

	cfg, err := Load(VariantDefaultModel)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Assets.Backend != BackendS3 {
		t.Fatalf("expected s3 backend, got %s", cfg.Assets.Backend)
	}
	if cfg.S3.KeyPrefix != "assets" {
		t.Fatalf("expected trimmed key prefix, got %q", cfg.S3.KeyPrefix)
	}
	if cfg.S3.UsePathStyle {
		t.Fatal("expected path style disabled")
	}
}

func TestLoadAssetsDirMadeAbsolute(t *testing.T) {
	clearEnv(t)
	t.Setenv("ASSETS_DIR", "relative/models")

	cfg, err := Load(VariantDefaultModel)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !filepath.IsAbs(cfg.Assets.Dir) {
		t.Fatalf("expected absolute dir, got %s", cfg.Assets.Dir)
	}
}
