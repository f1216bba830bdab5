package port

import (
	"context"
	"errors"
)

// ErrAssetNotFound сигнализирует об отсутствии папки или файла в хранилище.
// Используется для диагностики в логах; наружу все ошибки отдаются как 404.
var ErrAssetNotFound = errors.New("asset not found")

// Asset: содержимое файла, полностью прочитанное в память.
type Asset struct {
	Name string
	Size int64
	Data []byte
}

// AssetStorage определяет read-only доступ к дереву ассетов (Port).
// Реализации: локальный каталог и S3-совместимый bucket.
type AssetStorage interface {
	// ListFolder возвращает имена записей непосредственно внутри folder
	// в порядке перечисления хранилища.
	ListFolder(ctx context.Context, folder string) ([]string, error)

	// ReadAsset читает файл по сегментам пути относительно корня ассетов.
	ReadAsset(ctx context.Context, elems ...string) (*Asset, error)
}
