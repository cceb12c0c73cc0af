package server

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/matzehuels/fencedraw/pkg/observability"
)

// responseWriter records the status and size of a response.
type responseWriter struct {
	http.ResponseWriter
	written bool
	status  int
	length  int
}

func (rw *responseWriter) WriteHeader(status int) {
	if !rw.written {
		rw.written = true
		rw.status = status
	}
	rw.ResponseWriter.WriteHeader(status)
}

func (rw *responseWriter) Write(p []byte) (int, error) {
	if !rw.written {
		rw.written = true
		rw.status = http.StatusOK
	}
	n, err := rw.ResponseWriter.Write(p)
	rw.length += n
	return n, err
}

func (rw *responseWriter) Unwrap() http.ResponseWriter { return rw.ResponseWriter }

// logRequests logs one line per request at a level chosen by status,
// reports it to the HTTP hooks and turns panics into 500 responses.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		rw := &responseWriter{ResponseWriter: w}
		start := time.Now()
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic", "err", rec, "stack", string(debug.Stack()))
				if !rw.written {
					s.writeJSON(rw, http.StatusInternalServerError, errorBody{errorDetail{
						Code:    "INTERNAL_ERROR",
						Message: http.StatusText(http.StatusInternalServerError),
					}})
				}
			}

			dur := time.Since(start)
			hooks.OnResponse(r.Context(), r.Method, r.URL.Path, rw.status, dur)

			kv := []any{"method", r.Method, "path", r.URL.Path, "status", rw.status, "bytes", rw.length, "took", dur.Round(time.Microsecond)}
			switch {
			case rw.status >= 500:
				s.logger.Error("request", kv...)
			case rw.status >= 400:
				s.logger.Warn("request", kv...)
			default:
				s.logger.Info("request", kv...)
			}
		}()

		next.ServeHTTP(rw, r)
	})
}
