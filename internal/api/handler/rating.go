package handler

import (
	"net/http"

	"github.com/espada/marketplace-api/internal/domain"
	"github.com/espada/marketplace-api/internal/usecases/rating"
	"github.com/espada/marketplace-api/pkg/apiErrors"
	"github.com/espada/marketplace-api/pkg/middleware"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type SubmitRatingRequest struct {
	Rating    int  `json:"rating"`
	ProductID *int `json:"productID,omitempty"`
}

// SubmitRating grava (ou regrava) a avaliação do usuário logado para a loja
// e devolve o agregado já atualizado.
func SubmitRating(service rating.RollupService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := pathParamInt(r, "id")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID da loja inválido", nil)
			return
		}

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req SubmitRatingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		err = service.SubmitRating(r.Context(), rating.SubmitRatingInput{
			UserID:    userClaims.UserID,
			StoreID:   storeID,
			ProductID: req.ProductID,
			Rating:    req.Rating,
		})
		if err != nil {
			handleRatingError(w, err)
			return
		}

		aggregate, err := service.GetStoreRating(r.Context(), storeID)
		if err != nil {
			logrus.Error("Erro ao buscar agregado da loja:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar agregado da loja", nil)
			return
		}

		writeJSON(w, http.StatusOK, aggregate)
	}
}

// GetStoreRating retorna o agregado de avaliações da loja. Loja sem
// avaliações responde contagem zero e média 0.00.
func GetStoreRating(service rating.RollupService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := pathParamInt(r, "id")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID da loja inválido", nil)
			return
		}

		aggregate, err := service.GetStoreRating(r.Context(), storeID)
		if err != nil {
			logrus.Error("Erro ao buscar agregado da loja:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar agregado da loja", nil)
			return
		}

		writeJSON(w, http.StatusOK, aggregate)
	}
}

// GetUserRating retorna a nota mais recente do usuário logado para a loja,
// ou 0 se ele nunca avaliou.
func GetUserRating(service rating.RollupService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := pathParamInt(r, "id")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID da loja inválido", nil)
			return
		}

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		userRating, err := service.GetUserRating(r.Context(), storeID, userClaims.UserID)
		if err != nil {
			logrus.Error("Erro ao buscar avaliação do usuário:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar avaliação do usuário", nil)
			return
		}

		writeJSON(w, http.StatusOK, map[string]int{
			"rating": userRating,
		})
	}
}

func handleRatingError(w http.ResponseWriter, err error) {
	var subErr *rating.SubmissionError
	if errors.As(err, &subErr) {
		apiErrors.WriteError(w, subErr.Code, subErr.Error(), nil)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao registrar avaliação", nil)
}
