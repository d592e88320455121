package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"storefront/internal/config"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
env: "dev"
storage:
  kind: "s3"
  bucket: "shop-images"
  public_url: "https://shop-images.s3.amazonaws.com/"
upload:
  max_size: "2MB"
derivatives:
  breakpoints:
    - name: "thumb"
      width: 120
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, "s3", cfg.Storage.Kind)
	require.Equal(t, "shop-images", cfg.Storage.Bucket)
	require.Equal(t, 168*time.Hour, cfg.Storage.MaxAge)
	require.Equal(t, "webp", cfg.Derivatives.Format)
	require.Equal(t, 75, cfg.Derivatives.Quality)
	require.Equal(t, []config.Breakpoint{{Name: "thumb", Width: 120}}, cfg.Derivatives.Breakpoints)
	require.Equal(t, "product", cfg.Upload.Field)

	maxBytes, err := cfg.Upload.MaxBytes()
	require.NoError(t, err)
	require.Equal(t, int64(2<<20), maxBytes)
}

func TestLoadErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("upload:\n  max_size: \"lots\"\n"), 0o644))

	_, err = config.Load(path)
	require.ErrorContains(t, err, "upload.max_size")
}
