package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-CafeOrderService/internal/api/handlers"
)

const (
	HeaderUserID    = "X-User-ID"
	HeaderUserEmail = "X-User-Email"
)

type contextKey string

const (
	userIDKey    contextKey = "userID"
	userEmailKey contextKey = "userEmail"
)

// Auth извлекает пользователя из заголовков, выставленных gateway
// Без X-User-ID запрос отклоняется с 401
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if userID == "" {
			handlers.RespondUnauthorized(w, "missing user id")
			return
		}

		ctx := WithUser(r.Context(), userID, strings.TrimSpace(r.Header.Get(HeaderUserEmail)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithUser кладет пользователя в контекст
func WithUser(ctx context.Context, userID, email string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, userEmailKey, email)
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// GetUserEmail возвращает email пользователя из контекста (может быть пустым)
func GetUserEmail(ctx context.Context) string {
	email, _ := ctx.Value(userEmailKey).(string)
	return email
}

// AdminChecker проверяет, является ли пользователь администратором
type AdminChecker interface {
	IsAdmin(userID string) bool
}

// RequireAdmin пропускает только администраторов; ставится после Auth
func RequireAdmin(admins AdminChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserID(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, "missing user id")
				return
			}
			if !admins.IsAdmin(userID) {
				handlers.RespondForbidden(w, "access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
