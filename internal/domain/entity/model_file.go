package entity

import (
	"strings"

	"github.com/dreschagin/model-asset-server/internal/domain/valueobject"
)

// ModelExtension: расширение бинарного glTF.
const ModelExtension = ".glb"

// ModelFile представляет файл модели внутри папки ассетов.
// Не кешируется: пересоздается при каждом чтении каталога.
type ModelFile struct {
	folder valueobject.PathSegment
	name   string
}

// NewModelFile создает ссылку на файл модели
func NewModelFile(folder valueobject.PathSegment, name string) *ModelFile {
	return &ModelFile{
		folder: folder,
		name:   name,
	}
}

// IsModelFileName проверяет, что имя оканчивается на .glb (с учетом регистра)
func IsModelFileName(name string) bool {
	return strings.HasSuffix(name, ModelExtension)
}

func (m *ModelFile) Folder() valueobject.PathSegment {
	return m.folder
}

func (m *ModelFile) Name() string {
	return m.name
}

// PublicPath возвращает путь, по которому модель отдается сервером.
// Имена подставляются как есть, без URL-экранирования.
func (m *ModelFile) PublicPath() string {
	return "/model/" + m.folder.String() + "/" + m.name
}
