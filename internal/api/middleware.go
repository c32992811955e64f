package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"courierdispatch/internal/platform/obs"
)

// RequestIDFromContext returns the request ID stashed by requestIDMiddleware,
// or "" if called outside a request handled by it.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(obs.RequestIDKey).(string)
	return id
}

// requestIDMiddleware assigns each request a UUID, used to correlate its
// log lines (including any obs.Time-wrapped cache/db calls deeper in the
// call stack) and echoed back as a response header. It stores the ID under
// obs.RequestIDKey so obs.Time picks up the same value further down the
// call stack.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), obs.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// statusWriter captures the final HTTP status code and number of bytes
// written, to distinguish "handler returned 200" from "client received a
// response".
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// loggingMiddleware logs end-to-end request duration, response size, and
// the request ID assigned by requestIDMiddleware.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w, status: 0}

		next.ServeHTTP(sw, r)

		duration := time.Since(start).Milliseconds()

		log.Printf(
			"request_id=%s method=%s path=%s status=%d bytes=%d dur=%dms",
			RequestIDFromContext(r.Context()), r.Method, r.URL.RequestURI(), sw.status, sw.bytes, duration,
		)
	})
}
