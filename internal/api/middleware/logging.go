package middleware

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ev-charging/api/pkg/logger"
)

type logKeyType string

const logEntryKey logKeyType = "log_entry"

// logEntry collects values that inner middleware learn about a request.
// Inner handlers see derived contexts, so they write through this pointer.
type logEntry struct {
	userID string
}

func entryFrom(r *http.Request) *logEntry {
	e, _ := r.Context().Value(logEntryKey).(*logEntry)
	return e
}

// Logging logs one line per request with its id, status and duration.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		entry := &logEntry{}
		next.ServeHTTP(rw, r.WithContext(context.WithValue(r.Context(), logEntryKey, entry)))

		fields := []zap.Field{
			zap.String("id", GetRequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rw.status),
			zap.Int("bytes", rw.bytes),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote", r.RemoteAddr),
		}
		if entry.userID != "" {
			fields = append(fields, zap.String("user_id", entry.userID))
		}
		if rw.status >= http.StatusInternalServerError {
			logger.L().Warn("request", fields...)
			return
		}
		logger.L().Info("request", fields...)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

func (s *statusRecorder) WriteHeader(code int) {
	if !s.wroteHeader {
		s.status = code
		s.wroteHeader = true
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	s.wroteHeader = true
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

func (s *statusRecorder) Unwrap() http.ResponseWriter { return s.ResponseWriter }
