package uploadImage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/render"

	"storefront/internal/lib/api/response"
	"storefront/internal/lib/logger/sl"
	"storefront/internal/models"
	"storefront/internal/processor"
)

// multipartOverhead is the room left for boundaries and part headers on
// top of the file size limit.
const multipartOverhead = 1 << 20

type GreenStats struct {
	OriginalSize     int64  `json:"original_size"`
	CompressedSize   int64  `json:"compressed_size"`
	CompressionRatio string `json:"compression_ratio"`
	BandwidthSaved   string `json:"bandwidth_saved"`
}

type Response struct {
	response.Response
	ImageURL   string                    `json:"image_url"`
	Images     models.ImageDerivativeSet `json:"images"`
	GreenStats GreenStats                `json:"green_stats"`
}

type Limits struct {
	Field        string
	MaxBytes     int64
	AllowedTypes []string
}

func (l Limits) allowed(mimeType string) bool {
	if len(l.AllowedTypes) == 0 {
		return strings.HasPrefix(mimeType, "image/")
	}

	for _, t := range l.AllowedTypes {
		if strings.EqualFold(t, mimeType) {
			return true
		}
	}

	return false
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ImageProcessor
type ImageProcessor interface {
	Process(ctx context.Context, upload models.UploadedImage) (*models.ImageDerivativeSet, error)
}

// New uploads a product image and returns its derivatives.
// @Summary      Uploads a product image
// @Description  Stores the image, generates the primary WebP and the small, medium and large derivatives, and reports the bytes saved
// @Tags         images
// @Accept       multipart/form-data
// @Produce      json
// @Param        product  formData  file  true  "Image file to upload"
// @Success      200  {object}  uploadImage.Response
// @Failure      400  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /upload [post]
func New(log *slog.Logger, limits Limits, imageProcessor ImageProcessor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.image.uploadImage.New"

		log := log.With(slog.String("op", op))

		r.Body = http.MaxBytesReader(w, r.Body, limits.MaxBytes+multipartOverhead)

		file, header, err := r.FormFile(limits.Field)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				log.Warn("upload exceeds size limit", slog.Int64("limit", limits.MaxBytes))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("file too large"))
				return
			}

			log.Error("failed to get file from request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("no file uploaded"))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, limits.MaxBytes+1))
		if err != nil {
			log.Error("failed to read uploaded file", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to read file"))
			return
		}

		if len(data) == 0 {
			log.Error("received empty file")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("received empty file"))
			return
		}

		if int64(len(data)) > limits.MaxBytes {
			log.Warn("upload exceeds size limit", slog.Int64("limit", limits.MaxBytes))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("file too large"))
			return
		}

		mimeType := mimetype.Detect(data).String()
		if i := strings.IndexByte(mimeType, ';'); i >= 0 {
			mimeType = mimeType[:i]
		}

		if !limits.allowed(mimeType) {
			log.Warn("rejected upload type", slog.String("mime_type", mimeType), slog.String("filename", header.Filename))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("only image files are allowed"))
			return
		}

		set, err := imageProcessor.Process(r.Context(), models.UploadedImage{
			Filename: header.Filename,
			Size:     int64(len(data)),
			MimeType: mimeType,
			Body:     bytes.NewReader(data),
		})
		if err != nil {
			log.Error("image processing failed", sl.Err(err))

			msg := "image processing failed"
			if errors.Is(err, processor.ErrNoDerivatives) {
				msg = "no image derivative could be generated"
			}

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error(msg))
			return
		}

		log.Info("image uploaded", slog.String("image_url", set.Primary))

		meta := set.Metadata
		render.JSON(w, r, Response{
			Response: response.OK(),
			ImageURL: set.Primary,
			Images:   *set,
			GreenStats: GreenStats{
				OriginalSize:     meta.OriginalSize,
				CompressedSize:   meta.CompressedSize,
				CompressionRatio: fmt.Sprintf("%d%%", meta.CompressionRatio),
				BandwidthSaved:   fmt.Sprintf("%d KB", int64(math.Round(float64(meta.OriginalSize-meta.CompressedSize)/1024))),
			},
		})
	}
}
