package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"io"
	"time"
)

// UploadedImage is a payload received from the admin client. It lives only
// as long as the upload request.
type UploadedImage struct {
	Filename string
	Size     int64
	MimeType string
	Body     io.Reader
}

// ImageDerivativeSet references every file produced for one upload. It is
// stored on the owning product and never changes afterwards.
type ImageDerivativeSet struct {
	Original string            `json:"original"`
	Primary  string            `json:"primary"`
	Sizes    map[string]string `json:"sizes"`
	Metadata DerivativeMeta    `json:"metadata"`
}

type DerivativeMeta struct {
	OriginalSize     int64     `json:"original_size"`
	CompressedSize   int64     `json:"compressed_size"`
	CompressionRatio int       `json:"compression_ratio"`
	Format           string    `json:"format"`
	Quality          int       `json:"quality"`
	Effort           int       `json:"effort"`
	CreatedAt        time.Time `json:"created_at"`
}

// Paths returns every path the set references, primary first.
func (s ImageDerivativeSet) Paths() []string {
	return s.collect(true)
}

// DerivativePaths is Paths without the original upload, which the pipeline
// removes once the derivatives exist.
func (s ImageDerivativeSet) DerivativePaths() []string {
	return s.collect(false)
}

func (s ImageDerivativeSet) collect(withOriginal bool) []string {
	paths := make([]string, 0, len(s.Sizes)+2)

	seen := make(map[string]struct{}, len(s.Sizes)+2)
	add := func(p string) {
		if p == "" {
			return
		}
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		paths = append(paths, p)
	}

	add(s.Primary)
	for _, p := range s.Sizes {
		add(p)
	}
	if withOriginal {
		add(s.Original)
	}

	return paths
}

func (s ImageDerivativeSet) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *ImageDerivativeSet) Scan(src any) error {
	var data []byte

	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	case nil:
		*s = ImageDerivativeSet{}
		return nil
	default:
		return errors.New("models: unsupported type for ImageDerivativeSet")
	}

	return json.Unmarshal(data, s)
}
