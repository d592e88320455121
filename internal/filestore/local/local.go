package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"storefront/internal/filestore"
)

// Store keeps objects as files in a single directory.
type Store struct {
	filestore.Prefix
	dir string
}

func New(dir string, publicURL string) (*Store, error) {
	const op = "filestore.local.New"

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Store{Prefix: filestore.Prefix(publicURL), dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) Put(_ context.Context, key string, r io.Reader, _ string) (int64, error) {
	const op = "filestore.local.Put"

	key, err := filestore.CleanKey(key)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	tmp, err := os.CreateTemp(s.dir, ".put-*")
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err = tmp.Close(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err = os.Rename(tmp.Name(), filepath.Join(s.dir, key)); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

func (s *Store) Open(_ context.Context, key string) (io.ReadCloser, error) {
	const op = "filestore.local.Open"

	key, err := filestore.CleanKey(key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	f, err := os.Open(filepath.Join(s.dir, key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %s: %w", op, key, filestore.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return f, nil
}

func (s *Store) Remove(_ context.Context, key string) error {
	const op = "filestore.local.Remove"

	key, err := filestore.CleanKey(key)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = os.Remove(filepath.Join(s.dir, key)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %s: %w", op, key, filestore.ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Store) List(_ context.Context) ([]filestore.Object, error) {
	const op = "filestore.local.List"

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	objects := make([]filestore.Object, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || e.Name()[0] == '.' {
			continue
		}

		info, err := e.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}

		objects = append(objects, filestore.Object{
			Key:     e.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	return objects, nil
}
