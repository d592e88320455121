package deleteProduct

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

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ProductDeleter
type ProductDeleter interface {
	DeleteProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=CleanupScheduler
type CleanupScheduler interface {
	Schedule(ctx context.Context, productID uuid.UUID, set models.ImageDerivativeSet) error
}

type Response struct {
	response.Response
}

// New removes a product and schedules removal of its image files.
// @Summary      Deletes a product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  deleteProduct.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /products/{id} [delete]
func New(log *slog.Logger, productDeleter ProductDeleter, cleanup CleanupScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.product.deleteProduct.New"

		log := log.With(slog.String("op", op))

		idStr := chi.URLParam(r, "id")
		productID, err := uuid.Parse(idStr)
		if err != nil {
			log.Error("failed to parse product ID", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid product ID"))
			return
		}

		log.Info("attempting to delete product", slog.String("product_id", productID.String()))

		product, err := productDeleter.DeleteProduct(r.Context(), productID)
		if err != nil {
			if errors.Is(err, storage.ErrProductNotFound) {
				log.Warn("product not found for deletion", slog.String("product_id", productID.String()))
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("product not found"))
				return
			}

			log.Error("failed to delete product from storage", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to delete product"))
			return
		}

		// the product is gone either way, leftovers are picked up by the sweeper
		if err := cleanup.Schedule(r.Context(), productID, product.Images); err != nil {
			log.Warn("failed to schedule derivative cleanup", slog.String("product_id", productID.String()), sl.Err(err))
		}

		log.Info("product deleted successfully", slog.String("product_id", productID.String()))

		render.JSON(w, r, Response{
			Response: response.OK(),
		})
	}
}
