package usecase

import (
	"context"
	"fmt"

	"github.com/dreschagin/model-asset-server/internal/application/dto"
	"github.com/dreschagin/model-asset-server/internal/application/port"
	"github.com/dreschagin/model-asset-server/internal/domain/valueobject"
	"github.com/dreschagin/model-asset-server/pkg/logger"
)

type GetModelCommand struct {
	FolderName string
	ModelName  string
}

type GetModelConfig struct {
	// DefaultModelFile лежит прямо в корне ассетов и отдается по GET /model.
	DefaultModelFile string
	// DefaultModelName попадает в Content-Disposition вместо реального имени.
	DefaultModelName string
}

// GetModelUseCase читает файл модели целиком в память
type GetModelUseCase struct {
	storage port.AssetStorage
	config  GetModelConfig
	logger  *logger.Logger
}

func NewGetModelUseCase(
	storage port.AssetStorage,
	config GetModelConfig,
	log *logger.Logger,
) *GetModelUseCase {
	if config.DefaultModelFile == "" {
		config.DefaultModelFile = "rafale.glb"
	}
	if config.DefaultModelName == "" {
		config.DefaultModelName = "model.glb"
	}
	return &GetModelUseCase{
		storage: storage,
		config:  config,
		logger:  log,
	}
}

// Execute возвращает модель folder/name. В ответе используется ровно запрошенное имя.
// Расширение не проверяется: отдается любой существующий файл.
func (uc *GetModelUseCase) Execute(ctx context.Context, cmd GetModelCommand) (*dto.ModelContentDTO, error) {
	folder, err := valueobject.NewPathSegment(cmd.FolderName)
	if err != nil {
		return nil, fmt.Errorf("folder %q: %w", cmd.FolderName, err)
	}
	name, err := valueobject.NewPathSegment(cmd.ModelName)
	if err != nil {
		return nil, fmt.Errorf("model %q: %w", cmd.ModelName, err)
	}

	asset, err := uc.storage.ReadAsset(ctx, folder.String(), name.String())
	if err != nil {
		return nil, fmt.Errorf("failed to read model %s/%s: %w", folder, name, err)
	}

	return uc.toContent(name.String(), asset), nil
}

// ExecuteDefault возвращает модель по умолчанию из корня ассетов
func (uc *GetModelUseCase) ExecuteDefault(ctx context.Context) (*dto.ModelContentDTO, error) {
	asset, err := uc.storage.ReadAsset(ctx, uc.config.DefaultModelFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read default model %s: %w", uc.config.DefaultModelFile, err)
	}

	return uc.toContent(uc.config.DefaultModelName, asset), nil
}

func (uc *GetModelUseCase) toContent(fileName string, asset *port.Asset) *dto.ModelContentDTO {
	uc.logger.Debug("Model loaded",
		"file", asset.Name,
		"served_as", fileName,
		"size", len(asset.Data),
	)

	return &dto.ModelContentDTO{
		FileName: fileName,
		Size:     int64(len(asset.Data)),
		Data:     asset.Data,
	}
}
