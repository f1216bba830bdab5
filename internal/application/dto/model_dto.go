package dto

import "github.com/dreschagin/model-asset-server/internal/domain/entity"

// ModelDTO представляет ссылку на модель в ответе листинга
type ModelDTO struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// ModelListDTO: тело ответа GET /models/{folderName}
type ModelListDTO struct {
	Models []ModelDTO `json:"models"`
}

// ModelContentDTO: бинарное содержимое модели и имя для Content-Disposition
type ModelContentDTO struct {
	FileName string
	Size     int64
	Data     []byte
}

// ToModelListDTO конвертирует слайс Entity в DTO листинга.
// Пустой листинг сериализуется как [] а не null.
func ToModelListDTO(models []*entity.ModelFile) *ModelListDTO {
	items := make([]ModelDTO, len(models))
	for i, m := range models {
		items[i] = ModelDTO{
			Name: m.Name(),
			Path: m.PublicPath(),
		}
	}
	return &ModelListDTO{Models: items}
}
