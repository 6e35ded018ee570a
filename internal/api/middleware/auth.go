package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/OfficeBookingService/internal/api/handlers"
)

// HeaderUserID аутентифицированный пользователь, проставляется шлюзом
const HeaderUserID = "X-User-ID"

const msgUnauthenticated = "Unauthenticated."

type contextKey string

const (
	userIDKey    contextKey = "user_id"
	requestIDKey contextKey = "request_id"
)

// Auth требует заголовок X-User-ID с положительным ID и кладёт его в контекст
func Auth(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(HeaderUserID)
			if raw == "" {
				log.Warn("Auth: missing %s header, %s %s", HeaderUserID, r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgUnauthenticated)
				return
			}

			userID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || userID <= 0 {
				log.Warn("Auth: invalid %s header %q", HeaderUserID, raw)
				handlers.RespondUnauthorized(w, msgUnauthenticated)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// WithUserID кладёт ID пользователя в контекст
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID достаёт ID пользователя, положенный Auth
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
