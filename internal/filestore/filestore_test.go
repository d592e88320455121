package filestore_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"storefront/internal/filestore"
)

func TestPrefix(t *testing.T) {
	tests := []struct {
		name   string
		prefix filestore.Prefix
		key    string
		url    string
	}{
		{name: "relative", prefix: "/images/", key: "product_1_200.webp", url: "/images/product_1_200.webp"},
		{name: "no trailing slash", prefix: "/images", key: "product_1.webp", url: "/images/product_1.webp"},
		{name: "absolute", prefix: "https://cdn.example.com/shop/", key: "p.webp", url: "https://cdn.example.com/shop/p.webp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.url, tt.prefix.URL(tt.key))

			key, ok := tt.prefix.Key(tt.url)
			require.True(t, ok)
			require.Equal(t, tt.key, key)
		})
	}

	p := filestore.Prefix("/images/")

	_, ok := p.Key("/static/product_1.webp")
	require.False(t, ok)

	_, ok = p.Key("/images/nested/product_1.webp")
	require.False(t, ok)

	_, ok = p.Key("/images/")
	require.False(t, ok)
}

func TestCleanKey(t *testing.T) {
	for _, key := range []string{"", ".", "..", "../etc/passwd", "a/b", `a\b`} {
		_, err := filestore.CleanKey(key)
		require.Error(t, err, key)
	}

	key, err := filestore.CleanKey("product_1_200.webp")
	require.NoError(t, err)
	require.Equal(t, "product_1_200.webp", key)
}
