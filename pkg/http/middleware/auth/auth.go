package auth

import (
	"net/http"
	"strings"

	"github.com/quickbite/oms/internal/transport/http/resp"
	"github.com/quickbite/oms/pkg/apperr"
	"github.com/quickbite/oms/pkg/auth"
)

// NewAuthMiddleware verifies the bearer token and stashes its claims on the
// request context. Requests without a valid token are rejected.
func NewAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			resp.Error(w, apperr.Unauthorized("authentication required"))

			return
		}

		claims, err := auth.Verify(token)
		if err != nil {
			resp.Error(w, err)

			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
	})
}

// RequireRole rejects authenticated requests whose token carries a
// different role.
func RequireRole(role auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := auth.ClaimsFromContext(r.Context())
			if err != nil {
				resp.Error(w, err)

				return
			}
			if claims.Role != role && claims.Role != auth.RoleAdmin {
				resp.Error(w, apperr.Unauthorized("insufficient role"))

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
