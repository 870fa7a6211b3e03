package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Logging returns a middleware that logs every request with its outcome.
// Failures (4xx/5xx) log at warn so they stand out at the default level.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", r.RemoteAddr,
		}
		if claims := ClaimsFrom(r.Context()); claims != nil {
			attrs = append(attrs, "actor_id", claims.ActorID)
		}
		if rec.status >= http.StatusBadRequest {
			slog.Warn("request failed", attrs...)
		} else {
			slog.Info("request completed", attrs...)
		}
	})
}
