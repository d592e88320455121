// Package filestore describes where uploaded originals and their
// derivatives are kept and how stored keys map to public URLs.
package filestore

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"
)

var ErrNotFound = errors.New("object not found")

type Object struct {
	Key     string
	Size    int64
	ModTime time.Time
}

type Store interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Remove(ctx context.Context, key string) error
	List(ctx context.Context) ([]Object, error)
	URL(key string) string
	Key(url string) (string, bool)
}

// Prefix maps flat keys to public URLs and back. Backends embed it.
type Prefix string

func (p Prefix) URL(key string) string {
	base := string(p)
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	return base + key
}

func (p Prefix) Key(url string) (string, bool) {
	base := string(p)
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	if !strings.HasPrefix(url, base) {
		return "", false
	}

	key := strings.TrimPrefix(url, base)
	if key == "" || key != path.Base(key) {
		return "", false
	}

	return key, true
}

// CleanKey rejects keys that would escape a flat namespace.
func CleanKey(key string) (string, error) {
	if key == "" || key == "." || key == ".." || key != path.Base(key) || strings.ContainsRune(key, '\\') {
		return "", errors.New("invalid object key " + `"` + key + `"`)
	}

	return key, nil
}
