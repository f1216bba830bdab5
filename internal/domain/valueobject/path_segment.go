package valueobject

import (
	"errors"
	"strings"
)

// ErrInvalidPathSegment возвращается для сегментов, которые нельзя безопасно
// использовать как имя папки или файла внутри каталога ассетов.
var ErrInvalidPathSegment = errors.New("invalid path segment")

// PathSegment представляет один сегмент пути запроса (Value Object):
// имя папки или имя файла модели.
type PathSegment string

// NewPathSegment валидирует сырой параметр маршрута.
func NewPathSegment(raw string) (PathSegment, error) {
	switch raw {
	case "", ".", "..":
		return "", ErrInvalidPathSegment
	}
	if strings.ContainsAny(raw, "/\\\x00") {
		return "", ErrInvalidPathSegment
	}
	return PathSegment(raw), nil
}

// String возвращает исходное значение сегмента
func (s PathSegment) String() string {
	return string(s)
}
