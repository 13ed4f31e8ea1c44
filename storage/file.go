package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileBackend stores each record as <dir>/<key>.json. Writes go to a temp file
// in the same directory and are renamed into place.
type FileBackend struct {
	dir string
}

// NewFileBackend creates dir if needed.
func NewFileBackend(dir string) (*FileBackend, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("file storage requires a data directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, BackendError("open", fmt.Errorf("failed to create data dir: %w", err))
	}
	return &FileBackend{dir: dir}, nil
}

func (f *FileBackend) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid record key %q", key)
	}
	return filepath.Join(f.dir, key+".json"), nil
}

func (f *FileBackend) Get(ctx context.Context, key string) ([]byte, error) {
	p, err := f.path(key)
	if err != nil {
		return nil, BackendError("get", err)
	}
	body, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, NotFoundError("get")
	}
	if err != nil {
		return nil, BackendError("get", err)
	}
	return body, nil
}

func (f *FileBackend) Put(ctx context.Context, key string, body []byte) error {
	p, err := f.path(key)
	if err != nil {
		return BackendError("put", err)
	}

	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return BackendError("put", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(body); err != nil {
		_ = tmp.Close()
		return BackendError("put", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return BackendError("put", err)
	}
	if err := tmp.Close(); err != nil {
		return BackendError("put", err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		return BackendError("put", err)
	}
	return nil
}

func (f *FileBackend) Delete(ctx context.Context, key string) error {
	p, err := f.path(key)
	if err != nil {
		return BackendError("delete", err)
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return BackendError("delete", err)
	}
	return nil
}

func (f *FileBackend) Close() error { return nil }
