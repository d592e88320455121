package greenHealth

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"storefront/internal/filestore"
	"storefront/internal/lib/api/response"
	"storefront/internal/lib/logger/sl"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "needs attention"

	checkOK   = "ok"
	checkDown = "unavailable"
)

type Response struct {
	response.Response
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=DatabasePinger
type DatabasePinger interface {
	Ping(ctx context.Context) error
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ObjectLister
type ObjectLister interface {
	List(ctx context.Context) ([]filestore.Object, error)
}

// New checks the catalog database and the derivative store. Any failed
// check turns the response into a 503.
// @Summary      Health check
// @Tags         status
// @Produce      json
// @Success      200  {object}  greenHealth.Response
// @Failure      503  {object}  greenHealth.Response
// @Router       /green-health [get]
func New(log *slog.Logger, db DatabasePinger, store ObjectLister, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.status.greenHealth.New"

		log := log.With(slog.String("op", op))

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		checks := map[string]string{
			"database":   checkOK,
			"file_store": checkOK,
		}

		if err := db.Ping(ctx); err != nil {
			log.Error("database check failed", sl.Err(err))
			checks["database"] = checkDown
		}

		if _, err := store.List(ctx); err != nil {
			log.Error("file store check failed", sl.Err(err))
			checks["file_store"] = checkDown
		}

		resp := Response{
			Response:  response.OK(),
			Status:    statusHealthy,
			Timestamp: time.Now().UTC(),
			Checks:    checks,
		}

		for _, c := range checks {
			if c != checkOK {
				resp.Response = response.Error("service degraded")
				resp.Status = statusUnhealthy
				render.Status(r, http.StatusServiceUnavailable)
				break
			}
		}

		render.JSON(w, r, resp)
	}
}
