package http

import (
	"net/http"

	"github.com/dreschagin/model-asset-server/internal/infrastructure/metrics"
	"github.com/dreschagin/model-asset-server/internal/interfaces/http/handler"
	"github.com/dreschagin/model-asset-server/internal/interfaces/http/middleware"
	"github.com/dreschagin/model-asset-server/pkg/logger"
)

// RouterConfig выбирает набор маршрутов варианта сервера
type RouterConfig struct {
	AllowedOrigins    []string
	DefaultModelRoute bool
	// MetricsPath пустой, если metrics выключены
	MetricsPath string
}

// Router настраивает маршруты приложения
type Router struct {
	mux           *http.ServeMux
	healthHandler *handler.HealthHandler
	modelHandler  *handler.ModelHandler
	metrics       *metrics.Metrics
	config        RouterConfig
	logger        *logger.Logger
}

// NewRouter создает новый router. metrics может быть nil.
func NewRouter(
	healthHandler *handler.HealthHandler,
	modelHandler *handler.ModelHandler,
	metrics *metrics.Metrics,
	config RouterConfig,
	logger *logger.Logger,
) *Router {
	return &Router{
		mux:           http.NewServeMux(),
		healthHandler: healthHandler,
		modelHandler:  modelHandler,
		metrics:       metrics,
		config:        config,
		logger:        logger,
	}
}

// Setup настраивает все маршруты
func (rt *Router) Setup() http.Handler {
	rt.mux.HandleFunc("GET /health", rt.healthHandler.Health)

	rt.mux.HandleFunc("GET /models/{folderName}", rt.modelHandler.ListModels)
	rt.mux.HandleFunc("GET /model/{folderName}/{modelName}", rt.modelHandler.GetModel)
	if rt.config.DefaultModelRoute {
		rt.mux.HandleFunc("GET /model", rt.modelHandler.GetDefaultModel)
	}

	if rt.metrics != nil && rt.config.MetricsPath != "" {
		rt.mux.Handle("GET "+rt.config.MetricsPath, rt.metrics.Handler())
	}

	// Применяем middleware (последний становится внешним)
	var handler http.Handler = rt.mux
	handler = middleware.Compression(handler)
	handler = middleware.CORS(rt.config.AllowedOrigins)(handler)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(handler)
	}
	handler = middleware.Recovery(rt.logger)(handler)
	handler = middleware.Logger(rt.logger)(handler)
	handler = middleware.RequestID(handler)

	return handler
}
