package processor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"math"
	"sync"

	"code.cloudfoundry.org/bytefmt"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"storefront/internal/lib/logger/sl"
	"storefront/internal/models"
)

var ErrNoDerivatives = errors.New("no derivative could be generated")

type Encoder interface {
	Encode(w io.Writer, img image.Image) error
	Format() string
	ContentType() string
}

type Store interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Remove(ctx context.Context, key string) error
	URL(key string) string
}

// ImageProcessor turns one uploaded image into a full-size primary
// derivative plus one derivative per breakpoint.
type ImageProcessor struct {
	log   *slog.Logger
	store Store
	enc   Encoder
	opts  Options
	names *namer
}

func NewImageProcessor(log *slog.Logger, store Store, enc Encoder, opts Options) *ImageProcessor {
	return &ImageProcessor{
		log:   log,
		store: store,
		enc:   enc,
		opts:  opts,
		names: newNamer(),
	}
}

// derivative is the outcome of one encode-and-store job. Breakpoint is nil
// for the primary.
type derivative struct {
	breakpoint *Breakpoint
	key        string
	size       int64
	err        error
}

func (p *ImageProcessor) Process(ctx context.Context, upload models.UploadedImage) (*models.ImageDerivativeSet, error) {
	const op = "processor.Process"

	log := p.log.With(slog.String("op", op))

	base := p.names.base(p.opts.Field)
	originalKey := base + "_orig" + originalExt(upload.Filename, upload.MimeType)

	originalSize, err := p.store.Put(ctx, originalKey, upload.Body, upload.MimeType)
	if err != nil {
		return nil, fmt.Errorf("%s: store original: %w", op, err)
	}

	log.Info("original stored",
		slog.String("key", originalKey),
		slog.Int64("bytes", originalSize),
		slog.String("mime_type", upload.MimeType),
	)

	// the original goes away whatever happens below
	defer p.discard(ctx, originalKey)

	src, err := p.decode(ctx, originalKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	results := p.deriveAll(ctx, src, base)

	set := &models.ImageDerivativeSet{
		Original: p.store.URL(originalKey),
		Sizes:    make(map[string]string, len(p.opts.Breakpoints)),
	}

	var (
		compressed int64
		primary    *derivative
		largest    *derivative
		errs       []error
	)

	for i := range results {
		d := &results[i]

		if d.err != nil {
			name := "primary"
			if d.breakpoint != nil {
				name = d.breakpoint.Name
			}
			log.Warn("derivative failed", slog.String("derivative", name), sl.Err(d.err))
			errs = append(errs, d.err)
			continue
		}

		compressed += d.size

		if d.breakpoint == nil {
			primary = d
			continue
		}

		set.Sizes[d.breakpoint.Name] = p.store.URL(d.key)
		if largest == nil || d.breakpoint.Width > largest.breakpoint.Width {
			largest = d
		}
	}

	switch {
	case primary != nil:
		set.Primary = p.store.URL(primary.key)
	case largest != nil:
		log.Warn("primary derivative missing, using largest breakpoint",
			slog.String("derivative", largest.breakpoint.Name),
		)
		set.Primary = p.store.URL(largest.key)
	default:
		return nil, fmt.Errorf("%s: %w", op, errors.Join(append([]error{ErrNoDerivatives}, errs...)...))
	}

	set.Metadata = models.DerivativeMeta{
		OriginalSize:     originalSize,
		CompressedSize:   compressed,
		CompressionRatio: CompressionRatio(originalSize, compressed),
		Format:           p.enc.Format(),
		Quality:          p.opts.Quality,
		Effort:           p.opts.Effort,
		CreatedAt:        p.names.now().UTC(),
	}

	saved := originalSize - compressed
	if saved < 0 {
		saved = 0
	}

	log.Info("derivatives generated",
		slog.String("primary", set.Primary),
		slog.Int("sizes", len(set.Sizes)),
		slog.Int64("original_bytes", originalSize),
		slog.Int64("compressed_bytes", compressed),
		slog.Int("compression_ratio", set.Metadata.CompressionRatio),
		slog.String("saved", bytefmt.ByteSize(uint64(saved))),
	)

	return set, nil
}

func (p *ImageProcessor) decode(ctx context.Context, key string) (image.Image, error) {
	rc, err := p.store.Open(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("open original: %w", err)
	}
	defer rc.Close()

	src, err := imaging.Decode(rc, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode original: %w", err)
	}

	return src, nil
}

// deriveAll runs the primary and every breakpoint concurrently. src is
// only read, and each job writes its own slot.
func (p *ImageProcessor) deriveAll(ctx context.Context, src image.Image, base string) []derivative {
	jobs := make([]*Breakpoint, 0, len(p.opts.Breakpoints)+1)
	jobs = append(jobs, nil)
	for i := range p.opts.Breakpoints {
		jobs = append(jobs, &p.opts.Breakpoints[i])
	}

	results := make([]derivative, len(jobs))

	var wg sync.WaitGroup
	wg.Add(len(jobs))

	for i, bp := range jobs {
		i, bp := i, bp
		go func() {
			defer wg.Done()
			results[i] = p.derive(ctx, src, base, bp)
		}()
	}

	wg.Wait()

	return results
}

func (p *ImageProcessor) derive(ctx context.Context, src image.Image, base string, bp *Breakpoint) derivative {
	d := derivative{breakpoint: bp}

	img := src
	d.key = base + "." + p.enc.Format()

	if bp != nil {
		img = imaging.Fit(src, bp.Width, bp.Width, imaging.Lanczos)
		d.key = fmt.Sprintf("%s_%d.%s", base, bp.Width, p.enc.Format())
	}

	var buf bytes.Buffer
	if err := p.enc.Encode(&buf, img); err != nil {
		d.err = fmt.Errorf("encode %s: %w", d.key, err)
		return d
	}

	n, err := p.store.Put(ctx, d.key, &buf, p.enc.ContentType())
	if err != nil {
		d.err = fmt.Errorf("store %s: %w", d.key, err)
		return d
	}
	d.size = n

	b := img.Bounds()
	p.log.Debug("derivative stored",
		slog.String("key", d.key),
		slog.Int64("bytes", n),
		slog.Int("width", b.Dx()),
		slog.Int("height", b.Dy()),
	)

	return d
}

func (p *ImageProcessor) discard(ctx context.Context, key string) {
	if err := p.store.Remove(context.WithoutCancel(ctx), key); err != nil {
		p.log.Warn("could not delete original", slog.String("key", key), sl.Err(err))
	}
}

// CompressionRatio is the percentage of original bytes saved, rounded to
// the nearest integer. It is negative when the derivatives are larger.
func CompressionRatio(original, compressed int64) int {
	if original <= 0 {
		return 0
	}

	return int(math.Round(float64(original-compressed) / float64(original) * 100))
}
