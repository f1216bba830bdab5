package usecase

import (
	"context"
	"path"

	"github.com/dreschagin/model-asset-server/internal/application/port"
)

type mockAssetStorage struct {
	folders    map[string][]string
	files      map[string][]byte
	err        error
	lastFolder string
	lastRead   []string
}

func (m *mockAssetStorage) ListFolder(_ context.Context, folder string) ([]string, error) {
	m.lastFolder = folder
	if m.err != nil {
		return nil, m.err
	}
	entries, ok := m.folders[folder]
	if !ok {
		return nil, port.ErrAssetNotFound
	}
	return entries, nil
}

func (m *mockAssetStorage) ReadAsset(_ context.Context, elems ...string) (*port.Asset, error) {
	m.lastRead = elems
	if m.err != nil {
		return nil, m.err
	}
	key := path.Join(elems...)
	data, ok := m.files[key]
	if !ok {
		return nil, port.ErrAssetNotFound
	}
	return &port.Asset{
		Name: path.Base(key),
		Size: int64(len(data)),
		Data: data,
	}, nil
}
