package webpenc

import (
	"fmt"
	"image"
	"io"

	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
)

// Encoder writes lossy WebP. Effort maps onto libwebp's method, 0 (fast)
// to 6 (slow, smaller output).
type Encoder struct {
	quality int
	effort  int
}

func New(quality, effort int) (*Encoder, error) {
	if quality < 1 || quality > 100 {
		return nil, fmt.Errorf("webp quality %d out of range [1-100]", quality)
	}
	if effort < 0 || effort > 6 {
		return nil, fmt.Errorf("webp effort %d out of range [0-6]", effort)
	}

	return &Encoder{quality: quality, effort: effort}, nil
}

func (e *Encoder) Encode(w io.Writer, img image.Image) error {
	options, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, float32(e.quality))
	if err != nil {
		return fmt.Errorf("webp options: %w", err)
	}
	options.Method = e.effort

	if err = webp.Encode(w, img, options); err != nil {
		return fmt.Errorf("webp encode: %w", err)
	}

	return nil
}

func (e *Encoder) Format() string {
	return "webp"
}

func (e *Encoder) ContentType() string {
	return "image/webp"
}
