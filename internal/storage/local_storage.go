package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"serwer-tabel/internal/models"
)

type LocalStorage struct {
	basePath string
}

func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return nil, err
	}
	return &LocalStorage{basePath: basePath}, nil
}

// ResolvePath returns the absolute directory for filename and creates it if
// it does not exist yet.
func (ls *LocalStorage) ResolvePath(owner string, visibility models.Visibility, filename string) (string, error) {
	dir, err := ShardDir(owner, visibility, filename)
	if err != nil {
		return "", err
	}
	full := filepath.Join(ls.basePath, filepath.FromSlash(dir))
	if err := os.MkdirAll(full, os.ModePerm); err != nil {
		return "", err
	}
	return full, nil
}

func (ls *LocalStorage) getPathFromKey(key string) (string, error) {
	if !validKey(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(ls.basePath, filepath.FromSlash(key)), nil
}

func (ls *LocalStorage) Save(ctx context.Context, owner string, visibility models.Visibility, filename string, data io.Reader) (string, error) {
	key, err := ObjectKey(owner, visibility, filename)
	if err != nil {
		return "", err
	}
	dir, err := ls.ResolvePath(owner, visibility, filename)
	if err != nil {
		return "", err
	}

	// Readers only ever see complete files: write aside, then rename.
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, data); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	filePath, err := ls.getPathFromKey(key)
	if err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), filePath); err != nil {
		return "", err
	}
	return key, nil
}

func (ls *LocalStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	filePath, err := ls.getPathFromKey(key)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("file %s: %w", key, ErrNotFound)
		}
		return nil, err
	}

	return file, nil
}

func (ls *LocalStorage) Delete(ctx context.Context, key string) error {
	filePath, err := ls.getPathFromKey(key)
	if err != nil {
		return err
	}

	err = os.Remove(filePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return err
}
