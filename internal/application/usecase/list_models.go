package usecase

import (
	"context"
	"fmt"

	"github.com/dreschagin/model-asset-server/internal/application/dto"
	"github.com/dreschagin/model-asset-server/internal/application/port"
	"github.com/dreschagin/model-asset-server/internal/domain/service"
	"github.com/dreschagin/model-asset-server/internal/domain/valueobject"
	"github.com/dreschagin/model-asset-server/pkg/logger"
)

// ListModelsUseCase перечисляет .glb модели в папке ассетов
type ListModelsUseCase struct {
	storage port.AssetStorage
	catalog *service.ModelCatalog
	logger  *logger.Logger
}

// NewListModelsUseCase создает новый use case
func NewListModelsUseCase(
	storage port.AssetStorage,
	catalog *service.ModelCatalog,
	logger *logger.Logger,
) *ListModelsUseCase {
	if catalog == nil {
		catalog = service.NewModelCatalog()
	}
	return &ListModelsUseCase{
		storage: storage,
		catalog: catalog,
		logger:  logger,
	}
}

// Execute читает папку заново при каждом вызове; ничего не кешируется.
func (uc *ListModelsUseCase) Execute(ctx context.Context, folderName string) (*dto.ModelListDTO, error) {
	folder, err := valueobject.NewPathSegment(folderName)
	if err != nil {
		return nil, fmt.Errorf("folder %q: %w", folderName, err)
	}

	entries, err := uc.storage.ListFolder(ctx, folder.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list folder %q: %w", folderName, err)
	}

	models := uc.catalog.Filter(folder, entries)

	uc.logger.Debug("Listed models",
		"folder", folder.String(),
		"entries", len(entries),
		"models", len(models),
	)

	return dto.ToModelListDTO(models), nil
}
