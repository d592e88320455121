package listProducts

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	"storefront/internal/lib/api/response"
	"storefront/internal/lib/logger/sl"
	"storefront/internal/models"
)

const (
	defaultLimit = 8
	maxLimit     = 100
	// maxOffset keeps (page-1)*limit far from overflowing.
	maxOffset = 1<<31 - 1
)

type Response struct {
	response.Response
	Products   []models.Product  `json:"products"`
	Pagination models.Pagination `json:"pagination"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ProductLister
type ProductLister interface {
	ListProducts(ctx context.Context, category string, limit, offset int) ([]models.Product, int, error)
}

// New lists products, newest first.
// @Summary      Lists products
// @Tags         products
// @Produce      json
// @Param        page      query     int     false  "Page, starting at 1"
// @Param        limit     query     int     false  "Products per page (default 8, at most 100)"
// @Param        category  query     string  false  "Only products of this category"
// @Success      200  {object}  listProducts.Response
// @Failure      400  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /products [get]
func New(log *slog.Logger, productLister ProductLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.product.listProducts.New"

		log := log.With(slog.String("op", op))

		q := r.URL.Query()
		page := positiveInt(q.Get("page"), 1)
		limit := min(positiveInt(q.Get("limit"), defaultLimit), maxLimit)
		category := q.Get("category")

		if page-1 > maxOffset/limit {
			log.Warn("page out of range", slog.Int("page", page), slog.Int("limit", limit))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("page out of range"))
			return
		}

		products, total, err := productLister.ListProducts(r.Context(), category, limit, (page-1)*limit)
		if err != nil {
			log.Error("failed to list products", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to list products"))
			return
		}

		if products == nil {
			products = []models.Product{}
		}

		log.Info("products listed",
			slog.Int("page", page),
			slog.Int("limit", limit),
			slog.String("category", category),
			slog.Int("total", total),
		)

		render.JSON(w, r, Response{
			Response:   response.OK(),
			Products:   products,
			Pagination: models.NewPagination(total, page, limit),
		})
	}
}

// positiveInt parses s, falling back to def for anything below 1.
func positiveInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}

	return n
}
