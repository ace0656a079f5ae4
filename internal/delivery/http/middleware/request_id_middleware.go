package middleware

import (
	"net/http"
	"time"

	"hospital-management/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-ID"

type RequestIDMiddleware struct {
	log *logrus.Logger
}

func NewRequestIDMiddleware(log *logrus.Logger) *RequestIDMiddleware {
	return &RequestIDMiddleware{log: log}
}

// Handle tags each request with an id, reusing the caller's when present,
// and writes one access log line after the handler returns.
func (m *RequestIDMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := req.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, req.WithContext(service.WithRequestID(req.Context(), id)))

		m.log.WithFields(logrus.Fields{
			"request_id": id,
			"method":     req.Method,
			"path":       req.URL.Path,
			"status":     rec.status,
			"duration":   time.Since(start).String(),
		}).Info("http request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
