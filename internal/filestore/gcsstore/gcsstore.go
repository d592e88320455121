package gcsstore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"storefront/internal/filestore"
)

// Store keeps objects in a Google Cloud Storage bucket.
type Store struct {
	filestore.Prefix
	client *storage.Client
	bucket *storage.BucketHandle
}

func New(ctx context.Context, bucket, publicURL string) (*Store, error) {
	const op = "filestore.gcsstore.New"

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if publicURL == "" {
		publicURL = "https://storage.googleapis.com/" + bucket + "/"
	}

	return &Store{
		Prefix: filestore.Prefix(publicURL),
		client: client,
		bucket: client.Bucket(bucket),
	}, nil
}

func (s *Store) Put(ctx context.Context, key string, r io.Reader, contentType string) (int64, error) {
	const op = "filestore.gcsstore.Put"

	key, err := filestore.CleanKey(key)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	w := s.bucket.Object(key).NewWriter(ctx)
	w.ContentType = contentType

	n, err := io.Copy(w, r)
	if err != nil {
		_ = w.Close()
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err = w.Close(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	const op = "filestore.gcsstore.Open"

	r, err := s.bucket.Object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("%s: %s: %w", op, key, filestore.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return r, nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	const op = "filestore.gcsstore.Remove"

	if err := s.bucket.Object(key).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return fmt.Errorf("%s: %s: %w", op, key, filestore.ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Store) List(ctx context.Context) ([]filestore.Object, error) {
	const op = "filestore.gcsstore.List"

	var objects []filestore.Object

	it := s.bucket.Objects(ctx, nil)
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		objects = append(objects, filestore.Object{
			Key:     attrs.Name,
			Size:    attrs.Size,
			ModTime: attrs.Updated,
		})
	}

	return objects, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
