package saveProduct

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront/internal/lib/api/response"
	"storefront/internal/lib/logger/sl"
	"storefront/internal/models"
)

type Request struct {
	Name        string                     `json:"name" validate:"required,max=200"`
	Description string                     `json:"description" validate:"max=5000"`
	Category    string                     `json:"category" validate:"required,max=64"`
	Image       string                     `json:"image" validate:"required,max=2048"`
	Images      *models.ImageDerivativeSet `json:"images,omitempty"`
	NewPrice    decimal.Decimal            `json:"new_price" swaggertype:"number"`
	OldPrice    decimal.Decimal            `json:"old_price" swaggertype:"number"`
	Available   *bool                      `json:"available,omitempty"`
}

type Response struct {
	response.Response
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ProductSaver
type ProductSaver interface {
	SaveProduct(ctx context.Context, p models.Product) (*models.Product, error)
}

// New adds a product to the catalog.
// @Summary      Adds a product
// @Description  Saves a product with the derivative set returned by /upload. Without images every size points at image.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        product  body      saveProduct.Request  true  "Product"
// @Success      200  {object}  saveProduct.Response
// @Failure      400  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /products [post]
func New(log *slog.Logger, productSaver ProductSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.product.saveProduct.New"

		log := log.With(slog.String("op", op))

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if errors.Is(err, io.EOF) {
			log.Error("request body is empty")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("empty request"))
			return
		}
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err := validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		if req.NewPrice.IsNegative() || req.OldPrice.IsNegative() {
			log.Error("negative price", slog.String("new_price", req.NewPrice.String()), slog.String("old_price", req.OldPrice.String()))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("prices must not be negative"))
			return
		}

		saved, err := productSaver.SaveProduct(r.Context(), req.product())
		if err != nil {
			log.Error("failed to save product", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to save product"))
			return
		}

		log.Info("product saved", slog.String("product_id", saved.ID.String()))

		render.JSON(w, r, Response{
			Response: response.OK(),
			ID:       saved.ID,
			Name:     saved.Name,
		})
	}
}

func (req Request) product() models.Product {
	available := true
	if req.Available != nil {
		available = *req.Available
	}

	return models.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Image:       req.Image,
		Images:      imagesOrDefault(req.Images, req.Image),
		NewPrice:    req.NewPrice,
		OldPrice:    req.OldPrice,
		Available:   available,
	}
}

// imagesOrDefault points every size at image when the client sent no
// derivative set.
func imagesOrDefault(images *models.ImageDerivativeSet, image string) models.ImageDerivativeSet {
	if images != nil && images.Primary != "" {
		return *images
	}

	return models.ImageDerivativeSet{
		Original: image,
		Primary:  image,
		Sizes: map[string]string{
			"small":  image,
			"medium": image,
			"large":  image,
		},
	}
}
