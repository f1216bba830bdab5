package service

import (
	"github.com/dreschagin/model-asset-server/internal/domain/entity"
	"github.com/dreschagin/model-asset-server/internal/domain/valueobject"
)

// ModelCatalog отбирает файлы моделей из содержимого папки (Domain Service)
type ModelCatalog struct{}

// NewModelCatalog создает новый ModelCatalog
func NewModelCatalog() *ModelCatalog {
	return &ModelCatalog{}
}

// Filter оставляет только .glb записи, сохраняя порядок перечисления хранилища.
// Результат никогда не nil.
func (c *ModelCatalog) Filter(folder valueobject.PathSegment, entries []string) []*entity.ModelFile {
	models := make([]*entity.ModelFile, 0, len(entries))
	for _, name := range entries {
		if !entity.IsModelFileName(name) {
			continue
		}
		models = append(models, entity.NewModelFile(folder, name))
	}
	return models
}
