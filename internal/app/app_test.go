package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dreschagin/model-asset-server/internal/interfaces/http/handler"
	"github.com/dreschagin/model-asset-server/pkg/config"
	"github.com/dreschagin/model-asset-server/pkg/logger"
)

func testConfig(t *testing.T, variant config.Variant) *config.Config {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "rafale.glb"), []byte("glTF"), 0o644); err != nil {
		t.Fatalf("write default model: %v", err)
	}
	return &config.Config{
		Variant: variant,
		Server: config.ServerConfig{
			Port:            "0",
			ReadTimeout:     time.Second,
			WriteTimeout:    time.Second,
			IdleTimeout:     time.Second,
			ShutdownTimeout: time.Second,
		},
		Assets: config.AssetsConfig{
			Backend:          config.BackendFilesystem,
			Dir:              dir,
			DefaultModelFile: "rafale.glb",
			DefaultModelName: "model.glb",
		},
		Security: config.SecurityConfig{AllowedOrigins: []string{"*"}},
		Metrics:  config.MetricsConfig{Enabled: true, Path: "/metrics"},
		LogLevel: "error",
	}
}

func serve(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestNewDefaultModelVariant(t *testing.T) {
	a, err := New(context.Background(), testConfig(t, config.VariantDefaultModel), logger.Discard())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if rec := serve(t, a.Handler(), "/model"); rec.Code != http.StatusOK {
		t.Fatalf("/model status = %d", rec.Code)
	}
	if rec := serve(t, a.Handler(), "/health"); rec.Code != http.StatusOK {
		t.Fatalf("/health status = %d", rec.Code)
	}
	if rec := serve(t, a.Handler(), "/metrics"); rec.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d", rec.Code)
	}
}

func TestNewFoldersOnlyVariantWithoutMetrics(t *testing.T) {
	cfg := testConfig(t, config.VariantFoldersOnly)
	cfg.Metrics.Enabled = false

	a, err := New(context.Background(), cfg, logger.Discard())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	rec := serve(t, a.Handler(), "/model")
	if rec.Code != http.StatusNotFound || rec.Body.String() == handler.FileErrorMessage {
		t.Fatalf("expected unrouted /model, got %d %q", rec.Code, rec.Body.String())
	}
	if rec := serve(t, a.Handler(), "/metrics"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected /metrics to be disabled, got %d", rec.Code)
	}
}

func TestNewS3Backend(t *testing.T) {
	cfg := testConfig(t, config.VariantDefaultModel)
	cfg.Assets.Backend = config.BackendS3

	if _, err := New(context.Background(), cfg, logger.Discard()); err == nil {
		t.Fatal("expected error without bucket")
	}

	cfg.S3 = config.S3Config{
		Bucket:          "models",
		Region:          "us-east-1",
		Endpoint:        "http://127.0.0.1:9000",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		UsePathStyle:    true,
	}
	if _, err := New(context.Background(), cfg, logger.Discard()); err != nil {
		t.Fatalf("New() error = %v", err)
	}
}

func TestNewUnknownBackend(t *testing.T) {
	cfg := testConfig(t, config.VariantDefaultModel)
	cfg.Assets.Backend = "ftp"

	if _, err := New(context.Background(), cfg, logger.Discard()); err == nil {
		t.Fatal("expected error")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	a, err := New(context.Background(), testConfig(t, config.VariantDefaultModel), logger.Discard())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func TestNewCustomMetricsPath(t *testing.T) {
	cfg := testConfig(t, config.VariantDefaultModel)
	cfg.Metrics.Path = "/internal/prom"

	a, err := New(context.Background(), cfg, logger.Discard())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if rec := serve(t, a.Handler(), "/metrics"); rec.Code != http.StatusNotFound {
		t.Fatalf("default metrics path must be unrouted, got %d", rec.Code)
	}
	serve(t, a.Handler(), "/internal/prom")

	rec := serve(t, a.Handler(), "/internal/prom")
	if rec.Code != http.StatusOK {
		t.Fatalf("/internal/prom status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `route="/metrics",status="200"`) {
		t.Fatalf("expected custom metrics path to be labelled /metrics, got %q", rec.Body.String())
	}
}
