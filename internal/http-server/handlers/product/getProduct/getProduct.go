package getProduct

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"storefront/internal/lib/api/response"
	"storefront/internal/lib/logger/sl"
	"storefront/internal/models"
	"storefront/internal/storage"
)

type Response struct {
	response.Response
	Product models.Product `json:"product"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ProductGetter
type ProductGetter interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// New returns one product.
// @Summary      Gets a product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  getProduct.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /products/{id} [get]
func New(log *slog.Logger, productGetter ProductGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.product.getProduct.New"

		log := log.With(slog.String("op", op))

		idStr := chi.URLParam(r, "id")
		productID, err := uuid.Parse(idStr)
		if err != nil {
			log.Error("failed to parse product ID", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid product ID"))
			return
		}

		product, err := productGetter.GetProduct(r.Context(), productID)
		if err != nil {
			if errors.Is(err, storage.ErrProductNotFound) {
				log.Warn("product not found", slog.String("product_id", productID.String()))
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("product not found"))
				return
			}

			log.Error("failed to get product from storage", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get product"))
			return
		}

		log.Info("product retrieved successfully", slog.String("product_id", productID.String()))

		render.JSON(w, r, Response{
			Response: response.OK(),
			Product:  *product,
		})
	}
}
