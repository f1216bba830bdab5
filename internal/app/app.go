package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	// Application
	"github.com/dreschagin/model-asset-server/internal/application/port"
	"github.com/dreschagin/model-asset-server/internal/application/usecase"

	// Domain
	"github.com/dreschagin/model-asset-server/internal/domain/service"

	// Infrastructure
	"github.com/dreschagin/model-asset-server/internal/infrastructure/metrics"
	"github.com/dreschagin/model-asset-server/internal/infrastructure/storage/filesystem"
	s3storage "github.com/dreschagin/model-asset-server/internal/infrastructure/storage/s3"

	// Interfaces
	httpInterface "github.com/dreschagin/model-asset-server/internal/interfaces/http"
	"github.com/dreschagin/model-asset-server/internal/interfaces/http/handler"

	// Shared
	"github.com/dreschagin/model-asset-server/pkg/config"
	"github.com/dreschagin/model-asset-server/pkg/logger"
)

// App собирает зависимости сервера моделей и управляет жизненным циклом HTTP сервера.
type App struct {
	cfg     *config.Config
	log     *logger.Logger
	handler http.Handler
	server  *http.Server
}

// New выполняет dependency injection для выбранного варианта сервера.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	// Infrastructure Layer
	storage, err := newAssetStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var appMetrics *metrics.Metrics
	metricsPath := ""
	if cfg.Metrics.Enabled {
		appMetrics = metrics.New(prometheus.NewRegistry(), cfg.Metrics.Path)
		metricsPath = cfg.Metrics.Path
	}

	// Domain Layer
	catalog := service.NewModelCatalog()

	// Application Layer (Use Cases)
	listModelsUC := usecase.NewListModelsUseCase(storage, catalog, log)
	getModelUC := usecase.NewGetModelUseCase(storage, usecase.GetModelConfig{
		DefaultModelFile: cfg.Assets.DefaultModelFile,
		DefaultModelName: cfg.Assets.DefaultModelName,
	}, log)

	// Interfaces Layer (HTTP Handlers)
	healthHandler := handler.NewHealthHandler(nil)
	modelHandler := handler.NewModelHandler(listModelsUC, getModelUC, log)

	router := httpInterface.NewRouter(
		healthHandler,
		modelHandler,
		appMetrics,
		httpInterface.RouterConfig{
			AllowedOrigins:    cfg.Security.AllowedOrigins,
			DefaultModelRoute: cfg.Variant.DefaultModelRoute,
			MetricsPath:       metricsPath,
		},
		log,
	)
	h := router.Setup()

	return &App{
		cfg:     cfg,
		log:     log,
		handler: h,
		server: &http.Server{
			Addr:         cfg.Server.Addr(),
			Handler:      h,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
	}, nil
}

func newAssetStorage(ctx context.Context, cfg *config.Config) (port.AssetStorage, error) {
	switch cfg.Assets.Backend {
	case config.BackendS3:
		storage, err := s3storage.NewAssetStorage(ctx, s3storage.Config{
			Bucket:          cfg.S3.Bucket,
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			UsePathStyle:    cfg.S3.UsePathStyle,
			KeyPrefix:       cfg.S3.KeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("init s3 asset storage: %w", err)
		}
		return storage, nil
	case config.BackendFilesystem:
		return filesystem.NewAssetStorage(cfg.Assets.Dir), nil
	default:
		return nil, fmt.Errorf("unknown asset backend %q", cfg.Assets.Backend)
	}
}

// Handler возвращает полностью собранную цепочку middleware и маршрутов.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Run запускает HTTP сервер и блокируется до SIGINT/SIGTERM или отмены ctx,
// после чего выполняет graceful shutdown.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)

	// Запускаем сервер в отдельной goroutine
	go func() {
		a.log.Info("Model server listening",
			"variant", a.cfg.Variant.Name,
			"port", a.cfg.Server.Port,
			"backend", a.cfg.Assets.Backend,
			"assets_dir", a.cfg.Assets.Dir,
		)
		a.log.Info("Server running on http://localhost:" + a.cfg.Server.Port)

		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("Shutdown signal received, starting graceful shutdown...")

	// Даем время на завершение текущих операций
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	a.log.Info("Server stopped gracefully")
	return nil
}
