package jpegenc

import (
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
)

type Encoder struct {
	quality int
}

func New(quality int) (*Encoder, error) {
	if quality < 1 || quality > 100 {
		return nil, fmt.Errorf("jpeg quality %d out of range [1-100]", quality)
	}

	return &Encoder{quality: quality}, nil
}

func (e *Encoder) Encode(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(e.quality)); err != nil {
		return fmt.Errorf("jpeg encode: %w", err)
	}

	return nil
}

func (e *Encoder) Format() string {
	return "jpg"
}

func (e *Encoder) ContentType() string {
	return "image/jpeg"
}
