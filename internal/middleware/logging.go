package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Logger is a request logging middleware using slog. Requests on the
// public serve path additionally carry the tenant subdomain, which is
// the useful correlation key for hosting traffic.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
				"bytes", ww.BytesWritten(),
				"request_id", middleware.GetReqID(r.Context()),
			}
			// Route params are populated by the time the handler returns.
			if sub := chi.URLParam(r, "subdomain"); sub != "" {
				attrs = append(attrs, "subdomain", sub)
			}
			slog.Info("request", attrs...)
		}()

		next.ServeHTTP(ww, r)
	})
}
