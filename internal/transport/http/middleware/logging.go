package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"nomina/internal/platform/metrics"
	"nomina/internal/requestctx"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Logger attaches a request-scoped logger to the context and writes one
// access log line per request. A nil collector skips metrics.
func Logger(logger *zap.Logger, collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			reqLogger := logger.With(zap.String("requestId", GetRequestID(r.Context())))
			ctx := requestctx.WithLogger(r.Context(), reqLogger)

			next.ServeHTTP(recorder, r.WithContext(ctx))

			duration := time.Since(start)
			if collector != nil {
				collector.Record(recorder.status, duration)
			}
			reqLogger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", recorder.status),
				zap.Int64("durationMs", duration.Milliseconds()),
			)
		})
	}
}
