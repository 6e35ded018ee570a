package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// HeaderRequestID сквозной идентификатор запроса
const HeaderRequestID = "X-Request-ID"

// RequestID берёт X-Request-ID из запроса или генерирует новый,
// возвращает его в ответе и пишет строку access-лога
func RequestID(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(HeaderRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
			}

			w.Header().Set(HeaderRequestID, requestID)

			started := time.Now()
			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), requestIDKey, requestID)))

			log.Info("%s %s -> %d (%s) request_id=%s", r.Method, r.URL.Path, rec.status, time.Since(started), requestID)
		})
	}
}

// GetRequestID достаёт ID запроса из контекста
func GetRequestID(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDKey).(string)
	return requestID
}
