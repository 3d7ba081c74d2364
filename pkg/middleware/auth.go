package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/espada/marketplace-api/internal/usecases/authenticating"
)

type contextKey string

const (
	ContextKeyUser contextKey = "user"
)

// publicPaths dispensa autenticação para login, cadastro, healthcheck e
// leituras públicas de lojas e produtos.
func isPublicPath(r *http.Request) bool {
	if r.URL.Path == "/v1/login" || r.URL.Path == "/v1/signup" || r.URL.Path == "/healthcheck" {
		return true
	}

	if r.Method == http.MethodGet &&
		(strings.HasPrefix(r.URL.Path, "/v1/stores") || strings.HasPrefix(r.URL.Path, "/v1/products")) {
		// A nota do próprio usuário depende do token
		return !strings.HasSuffix(r.URL.Path, "/ratings/me")
	}

	return false
}

func AuthMiddleware(authService authenticating.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r) {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header is required", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				http.Error(w, "Bearer token is required", http.StatusUnauthorized)
				return
			}

			claims, err := authService.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
