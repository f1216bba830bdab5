package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dreschagin/model-asset-server/internal/app"
	"github.com/dreschagin/model-asset-server/pkg/config"
	"github.com/dreschagin/model-asset-server/pkg/logger"
)

func main() {
	// 1. Загружаем конфигурацию
	cfg, err := config.Load(config.VariantDefaultModel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Инициализируем logger
	log := logger.New(cfg.LogLevel)
	log.Info("Starting Model Server")

	// 3. Dependency Injection
	application, err := app.New(context.Background(), cfg, log)
	if err != nil {
		log.Error("Failed to initialize application", err)
		os.Exit(1)
	}

	// 4. Запускаем HTTP сервер и ждем сигнал для graceful shutdown
	if err := application.Run(context.Background()); err != nil {
		log.Error("Server stopped with error", err)
		os.Exit(1)
	}
}
