//go:build cgo

package webpenc_test

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/webp"

	"storefront/internal/lib/encoder/webpenc"
)

func TestNewRanges(t *testing.T) {
	tests := []struct {
		name    string
		quality int
		effort  int
		wantErr string
	}{
		{name: "Lowest", quality: 1, effort: 0},
		{name: "Highest", quality: 100, effort: 6},
		{name: "Quality Zero", quality: 0, effort: 4, wantErr: "quality 0 out of range"},
		{name: "Quality Too High", quality: 101, effort: 4, wantErr: "quality 101 out of range"},
		{name: "Negative Effort", quality: 75, effort: -1, wantErr: "effort -1 out of range"},
		{name: "Effort Too High", quality: 75, effort: 7, wantErr: "effort 7 out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := webpenc.New(tt.quality, tt.effort)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				require.Nil(t, enc)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, enc)
		})
	}
}

func TestEncoder(t *testing.T) {
	enc, err := webpenc.New(75, 4)
	require.NoError(t, err)
	require.Equal(t, "webp", enc.Format())
	require.Equal(t, "image/webp", enc.ContentType())

	src := imaging.New(64, 32, color.NRGBA{R: 200, G: 40, B: 40, A: 255})

	var buf bytes.Buffer
	require.NoError(t, enc.Encode(&buf, src))

	cfg, format, err := image.DecodeConfig(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, "webp", format)
	require.Equal(t, 64, cfg.Width)
	require.Equal(t, 32, cfg.Height)

	img, err := webp.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 64, 32), img.Bounds())
}

func TestEncoderLowerQualityIsSmaller(t *testing.T) {
	src := imaging.New(256, 256, color.NRGBA{A: 255})
	for x := 0; x < 256; x++ {
		for y := 0; y < 256; y++ {
			src.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: uint8(x ^ y), A: 255})
		}
	}

	size := func(quality int) int {
		enc, err := webpenc.New(quality, 4)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, enc.Encode(&buf, src))
		return buf.Len()
	}

	require.Less(t, size(10), size(95))
}
