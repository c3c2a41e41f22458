package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"prize-portal-service/internal/logging"
	"prize-portal-service/internal/metrics"
)

const requestIDHeader = "X-Request-ID"

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// requestLogging tags every request with an id, attaches a request-scoped
// logger to the context, and emits a completion line with the outcome.
func requestLogging(base *zap.Logger, recorder *metrics.Recorder) func(http.Handler) http.Handler {
	if base == nil {
		base = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := r.Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, reqID)

			logger := base.With(
				zap.String(logging.FieldRequestID, reqID),
				zap.String(logging.FieldMethod, r.Method),
				zap.String(logging.FieldPath, r.URL.Path),
			)
			r = r.WithContext(logging.WithLogger(r.Context(), logger))

			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)

			duration := time.Since(start)
			recorder.RecordHTTPRequest(r.Method, r.URL.Path, ww.status, duration)
			logger.Info("request complete",
				zap.Int(logging.FieldStatusCode, ww.status),
				zap.Int64(logging.FieldDurationMS, duration.Milliseconds()),
			)
		})
	}
}
