package middleware

import (
	"net/http"

	"github.com/espada/marketplace-api/internal/domain"
	"github.com/espada/marketplace-api/pkg/apiErrors"
)

// claimsFromContext obtém os claims do usuário autenticado
func claimsFromContext(r *http.Request) *domain.Claims {
	claims, ok := r.Context().Value(ContextKeyUser).(*domain.Claims)
	if !ok {
		return nil
	}
	return claims
}

// BusinessOnly restringe a rota a contas do tipo lojista
func BusinessOnly() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := claimsFromContext(r)
			if claims == nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			if claims.UserAccountType != domain.AccountTypeBusiness {
				apiErrors.WriteError(w, apiErrors.ErrForbidden, "Apenas lojistas podem realizar esta ação", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AllAccounts exige apenas um usuário autenticado, de qualquer tipo
func AllAccounts() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claimsFromContext(r) == nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
