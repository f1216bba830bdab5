package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dreschagin/model-asset-server/internal/application/port"
)

// AssetStorage serves assets from a local directory tree.
//
// Every call opens the directory through os.Root, so lookups cannot leave it
// via ".." or symlinks, and a directory created after startup is picked up.
type AssetStorage struct {
	dir string
}

func NewAssetStorage(dir string) *AssetStorage {
	return &AssetStorage{dir: dir}
}

// Dir returns the asset directory this storage reads from.
func (s *AssetStorage) Dir() string {
	return s.dir
}

func (s *AssetStorage) ListFolder(ctx context.Context, folder string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, err := os.OpenRoot(s.dir)
	if err != nil {
		return nil, wrapErr("open asset dir", err)
	}
	defer root.Close()

	dir, err := root.Open(folder)
	if err != nil {
		return nil, wrapErr("open folder", err)
	}
	defer dir.Close()

	// Readdirnames keeps the directory's own order; os.ReadDir would sort.
	names, err := dir.Readdirnames(-1)
	if err != nil {
		return nil, wrapErr("read folder", err)
	}

	return names, nil
}

func (s *AssetStorage) ReadAsset(ctx context.Context, elems ...string) (*port.Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(elems) == 0 {
		return nil, fmt.Errorf("asset path is required")
	}

	root, err := os.OpenRoot(s.dir)
	if err != nil {
		return nil, wrapErr("open asset dir", err)
	}
	defer root.Close()

	name := filepath.Join(elems...)
	file, err := root.Open(name)
	if err != nil {
		return nil, wrapErr("open file", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, wrapErr("stat file", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", port.ErrAssetNotFound, name)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, wrapErr("read file", err)
	}

	return &port.Asset{
		Name: info.Name(),
		Size: info.Size(),
		Data: data,
	}, nil
}

func wrapErr(op string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w: %w", op, port.ErrAssetNotFound, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
