package logger

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	middlewarev5 "github.com/go-chi/chi/v5/middleware"
)

// StructuredLogger logs one line when a request starts and one when it
// completes. RequestID must run before it.
func StructuredLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			requestLogger := logger.With(
				slog.String("req_id", middlewarev5.GetReqID(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("user_agent", r.UserAgent()),
			)
			requestLogger.DebugContext(r.Context(), "Request started")

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			attrs := []any{
				slog.Int("status", status),
				slog.Int("bytes_written", ww.BytesWritten()),
				slog.Duration("latency", time.Since(start)),
			}
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				attrs = append(attrs, slog.String("route", rctx.RoutePattern()))
			}

			switch {
			case status >= http.StatusInternalServerError:
				requestLogger.ErrorContext(r.Context(), "Request completed", attrs...)
			case status >= http.StatusBadRequest:
				requestLogger.WarnContext(r.Context(), "Request completed", attrs...)
			default:
				requestLogger.InfoContext(r.Context(), "Request completed", attrs...)
			}
		})
	}
}
