package middleware

import (
	"errors"
	"net/http"

	"github.com/m04kA/OfficeBookingService/internal/api/handlers"
	"github.com/m04kA/OfficeBookingService/internal/integrations/userservice"
)

const (
	msgForbidden = "This action is unauthorized."

	// retryAfterSeconds подсказка клиенту при недоступном UserService
	retryAfterSeconds = 5
)

// RequirePermission пропускает запрос, только если у пользователя есть разрешение.
// Ставится после Auth.
func RequirePermission(checker PermissionChecker, permission string, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserID(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgUnauthenticated)
				return
			}

			allowed, err := checker.HasPermission(r.Context(), userID, permission)
			if err != nil {
				if errors.Is(err, userservice.ErrUnavailable) {
					log.Error("RequirePermission: user service unavailable, user=%d, permission=%s: %v", userID, permission, err)
					handlers.RespondServiceUnavailable(w, retryAfterSeconds)
					return
				}
				log.Error("RequirePermission: failed to check permission=%s for user=%d: %v", permission, userID, err)
				handlers.RespondInternalError(w)
				return
			}

			if !allowed {
				log.Warn("RequirePermission: user=%d has no permission=%s", userID, permission)
				handlers.RespondForbidden(w, msgForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
