package imageOptimization

import (
	"context"
	"log/slog"
	"net/http"

	"code.cloudfoundry.org/bytefmt"
	"github.com/go-chi/render"

	"storefront/internal/filestore"
	"storefront/internal/lib/api/response"
	"storefront/internal/lib/logger/sl"
	"storefront/internal/processor"
)

type Response struct {
	response.Response
	Format           string         `json:"format"`
	TotalDerivatives int            `json:"total_derivatives"`
	Primaries        int            `json:"primaries"`
	ResponsiveSizes  map[string]int `json:"responsive_sizes"`
	PendingOriginals int            `json:"pending_originals"`
	StoredBytes      string         `json:"stored_bytes"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ObjectLister
type ObjectLister interface {
	List(ctx context.Context) ([]filestore.Object, error)
}

// New counts the derivatives in the store per configured breakpoint.
// Objects the pipeline did not write are ignored.
// @Summary      Derivative inventory
// @Tags         status
// @Produce      json
// @Success      200  {object}  imageOptimization.Response
// @Failure      500  {object}  response.Response
// @Router       /test-image-optimization [get]
func New(log *slog.Logger, opts processor.Options, format string, store ObjectLister) http.HandlerFunc {
	names := make(map[int]string, len(opts.Breakpoints))
	for _, bp := range opts.Breakpoints {
		names[bp.Width] = bp.Name
	}

	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.status.imageOptimization.New"

		log := log.With(slog.String("op", op))

		objects, err := store.List(r.Context())
		if err != nil {
			log.Error("failed to list stored objects", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to list derivatives"))
			return
		}

		resp := Response{
			Response:        response.OK(),
			Format:          format,
			ResponsiveSizes: make(map[string]int, len(opts.Breakpoints)),
		}
		for _, bp := range opts.Breakpoints {
			resp.ResponsiveSizes[bp.Name] = 0
		}

		var stored uint64
		for _, o := range objects {
			info, ok := processor.ParseKey(opts.Field, o.Key)
			if !ok {
				continue
			}

			if info.Original {
				resp.PendingOriginals++
				continue
			}

			if info.Ext != format {
				continue
			}

			resp.TotalDerivatives++
			stored += uint64(max(o.Size, 0))

			if info.Width == 0 {
				resp.Primaries++
				continue
			}

			if name, ok := names[info.Width]; ok {
				resp.ResponsiveSizes[name]++
			}
		}

		resp.StoredBytes = bytefmt.ByteSize(stored)

		log.Info("derivative inventory computed",
			slog.Int("objects", len(objects)),
			slog.Int("derivatives", resp.TotalDerivatives),
		)

		render.JSON(w, r, resp)
	}
}
