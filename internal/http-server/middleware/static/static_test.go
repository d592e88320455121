package static_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"storefront/internal/http-server/middleware/static"
)

func TestStatic(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "product_1_200.webp"), []byte("webp"), 0o644))

	h := static.New("/images/", dir, 7*24*time.Hour)

	t.Run("serves file with cache headers", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/images/product_1_200.webp", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		require.Equal(t, "webp", rr.Body.String())
		require.Equal(t, "public, max-age=604800", rr.Header().Get("Cache-Control"))
		require.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, "/images/product_1_200.webp", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		require.Empty(t, rr.Body.String())
		require.Equal(t, "GET, OPTIONS", rr.Header().Get("Access-Control-Allow-Methods"))
	})

	t.Run("missing file", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/images/nope.webp", nil))

		require.Equal(t, http.StatusNotFound, rr.Code)
		require.Empty(t, rr.Header().Get("Cache-Control"))
		require.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("not modified keeps cache headers", func(t *testing.T) {
		info, err := os.Stat(filepath.Join(dir, "product_1_200.webp"))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/images/product_1_200.webp", nil)
		req.Header.Set("If-Modified-Since", info.ModTime().UTC().Add(time.Second).Format(http.TimeFormat))

		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		require.Equal(t, http.StatusNotModified, rr.Code)
		require.Equal(t, "public, max-age=604800", rr.Header().Get("Cache-Control"))
	})
}
