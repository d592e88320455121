package static

import (
	"net/http"
	"strconv"
	"time"
)

// New serves the files under dir at prefix. Derivative names are never
// reused, so found files are cacheable for maxAge and readable
// cross-origin by the shop and admin frontends. Misses are not cached.
func New(prefix, dir string, maxAge time.Duration) http.Handler {
	fs := http.StripPrefix(prefix, http.FileServer(http.Dir(dir)))
	cacheControl := "public, max-age=" + strconv.Itoa(int(maxAge.Seconds()))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept")
		h.Set("Cross-Origin-Resource-Policy", "cross-origin")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		fs.ServeHTTP(&cachingWriter{ResponseWriter: w, cacheControl: cacheControl}, r)
	})
}

// cachingWriter adds Cache-Control once the status is known to be a hit.
type cachingWriter struct {
	http.ResponseWriter
	cacheControl  string
	headerWritten bool
}

func (cw *cachingWriter) WriteHeader(code int) {
	if cw.headerWritten {
		return
	}
	cw.headerWritten = true

	if (code >= 200 && code < 300) || code == http.StatusNotModified {
		cw.Header().Set("Cache-Control", cw.cacheControl)
	}

	cw.ResponseWriter.WriteHeader(code)
}

func (cw *cachingWriter) Write(b []byte) (int, error) {
	if !cw.headerWritten {
		cw.WriteHeader(http.StatusOK)
	}

	return cw.ResponseWriter.Write(b)
}
