package greenStatus

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"code.cloudfoundry.org/bytefmt"
	"github.com/go-chi/render"

	"storefront/internal/lib/api/response"
	"storefront/internal/processor"
)

// Settings is what the running pipeline was configured with.
type Settings struct {
	Format         string
	Quality        int
	Effort         int
	Breakpoints    []processor.Breakpoint
	MaxUploadBytes int64
	CacheMaxAge    time.Duration
	Started        time.Time
}

type Memory struct {
	HeapAlloc string `json:"heap_alloc"`
	HeapSys   string `json:"heap_sys"`
	Sys       string `json:"sys"`
}

type Server struct {
	UptimeSeconds int64  `json:"uptime_seconds"`
	Goroutines    int    `json:"goroutines"`
	Memory        Memory `json:"memory"`
}

type Optimizations struct {
	Format      string            `json:"format"`
	Quality     int               `json:"quality"`
	Effort      int               `json:"effort"`
	Breakpoints map[string]string `json:"breakpoints"`
	MaxUpload   string            `json:"max_upload"`
	ClientCache string            `json:"client_cache"`
}

type Response struct {
	response.Response
	Timestamp     time.Time     `json:"timestamp"`
	Status        string        `json:"status"`
	Server        Server        `json:"server"`
	Optimizations Optimizations `json:"optimizations"`
}

// New reports the derivative pipeline settings and process statistics.
// @Summary      Pipeline status
// @Tags         status
// @Produce      json
// @Success      200  {object}  greenStatus.Response
// @Router       /green-status [get]
func New(log *slog.Logger, settings Settings) http.HandlerFunc {
	breakpoints := make(map[string]string, len(settings.Breakpoints))
	for _, bp := range settings.Breakpoints {
		breakpoints[bp.Name] = fmt.Sprintf("%dpx", bp.Width)
	}

	optimizations := Optimizations{
		Format:      settings.Format,
		Quality:     settings.Quality,
		Effort:      settings.Effort,
		Breakpoints: breakpoints,
		MaxUpload:   bytefmt.ByteSize(uint64(max(settings.MaxUploadBytes, 0))),
		ClientCache: clientCache(settings.CacheMaxAge),
	}

	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.status.greenStatus.New"

		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)

		now := time.Now()

		log.Debug("status requested", slog.String("op", op))

		render.JSON(w, r, Response{
			Response:  response.OK(),
			Timestamp: now.UTC(),
			Status:    "green software optimized",
			Server: Server{
				UptimeSeconds: int64(now.Sub(settings.Started).Seconds()),
				Goroutines:    runtime.NumGoroutine(),
				Memory: Memory{
					HeapAlloc: bytefmt.ByteSize(mem.HeapAlloc),
					HeapSys:   bytefmt.ByteSize(mem.HeapSys),
					Sys:       bytefmt.ByteSize(mem.Sys),
				},
			},
			Optimizations: optimizations,
		})
	}
}

func clientCache(maxAge time.Duration) string {
	if maxAge <= 0 {
		return "disabled"
	}

	return fmt.Sprintf("public, max-age=%d", int64(maxAge.Seconds()))
}
