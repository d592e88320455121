package router

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "storefront/docs"
	"storefront/internal/http-server/handlers/image/uploadImage"
	"storefront/internal/http-server/handlers/product/deleteProduct"
	"storefront/internal/http-server/handlers/product/getProduct"
	"storefront/internal/http-server/handlers/product/listProducts"
	"storefront/internal/http-server/handlers/product/saveProduct"
	"storefront/internal/http-server/handlers/status/greenHealth"
	"storefront/internal/http-server/handlers/status/greenStatus"
	"storefront/internal/http-server/handlers/status/imageOptimization"
	"storefront/internal/http-server/middleware/mwlogger"
	"storefront/internal/http-server/middleware/static"
	"storefront/internal/processor"
)

type Catalog interface {
	saveProduct.ProductSaver
	getProduct.ProductGetter
	listProducts.ProductLister
	deleteProduct.ProductDeleter
}

// Static describes a directory served under a public URL prefix.
type Static struct {
	Prefix string
	Dir    string
	MaxAge time.Duration
}

// Status wires the monitoring endpoints.
type Status struct {
	Settings     greenStatus.Settings
	Options      processor.Options
	Database     greenHealth.DatabasePinger
	Store        greenHealth.ObjectLister
	CheckTimeout time.Duration
}

type Deps struct {
	Log       *slog.Logger
	Catalog   Catalog
	Processor uploadImage.ImageProcessor
	Cleanup   deleteProduct.CleanupScheduler
	Limits    uploadImage.Limits
	// Static is nil when derivatives are served by a bucket.
	Static *Static
	// Status is nil when the monitoring endpoints are off.
	Status *Status
}

func New(d Deps) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(d.Log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	if d.Static != nil {
		prefix := d.Static.Prefix
		if !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}

		router.Handle(prefix+"*", static.New(prefix, d.Static.Dir, d.Static.MaxAge))
	}

	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	if d.Status != nil {
		router.Get("/green-status", greenStatus.New(d.Log, d.Status.Settings))
		router.Get("/green-health", greenHealth.New(d.Log, d.Status.Database, d.Status.Store, d.Status.CheckTimeout))
		router.Get("/test-image-optimization", imageOptimization.New(d.Log, d.Status.Options, d.Status.Settings.Format, d.Status.Store))
	}

	router.Post("/upload", uploadImage.New(d.Log, d.Limits, d.Processor))

	router.Route("/products", func(r chi.Router) {
		r.Post("/", saveProduct.New(d.Log, d.Catalog))
		r.Get("/", listProducts.New(d.Log, d.Catalog))
		r.Get("/{id}", getProduct.New(d.Log, d.Catalog))
		r.Delete("/{id}", deleteProduct.New(d.Log, d.Catalog, d.Cleanup))
	})

	return router
}
