package middleware

import (
	"net/http"
	"strings"

	"github.com/m04kA/SMC-AllocationService/internal/api/handlers"
)

const (
	authorizationHeader = "Authorization"
	bearerPrefix        = "Bearer "

	msgMissingToken = "отсутствует токен авторизации"
)

// Auth требует заголовок Authorization: Bearer <token>.
// Токен не проверяется здесь, его проверяет бэкенд записей
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(authorizationHeader)
			if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
				logger.Warn("%s %s - Missing bearer token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			token := strings.TrimSpace(header[len(bearerPrefix):])
			if token == "" {
				logger.Warn("%s %s - Empty bearer token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithBearerToken(r.Context(), token)))
		})
	}
}
