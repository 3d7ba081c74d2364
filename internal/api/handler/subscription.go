package handler

import (
	"net/http"

	"github.com/espada/marketplace-api/internal/domain"
	"github.com/espada/marketplace-api/internal/usecases/subscribing"
	"github.com/espada/marketplace-api/pkg/apiErrors"
	"github.com/espada/marketplace-api/pkg/middleware"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type CreateSubscriptionRequest struct {
	Plan    string  `json:"type"`
	JoinFee float64 `json:"join_fee"`
}

// CreateSubscription cria o lojista e sua assinatura em uma única transação
func CreateSubscription(service subscribing.SubscriptionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req CreateSubscriptionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		sub, err := service.CreateSubscription(r.Context(), subscribing.CreateSubscriptionInput{
			UserID:  userClaims.UserID,
			Plan:    req.Plan,
			JoinFee: req.JoinFee,
		})
		if err != nil {
			handleSubscriptionError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, sub)
	}
}

// GetSubscription retorna a assinatura mais recente do lojista
func GetSubscription(service subscribing.SubscriptionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := pathParamInt(r, "ownerID")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID do lojista inválido", nil)
			return
		}

		sub, err := service.GetSubscription(r.Context(), ownerID)
		if err != nil {
			logrus.Error("Erro ao buscar assinatura:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar assinatura", nil)
			return
		}

		if sub == nil {
			apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Assinatura não encontrada", nil)
			return
		}

		writeJSON(w, http.StatusOK, sub)
	}
}

func handleSubscriptionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, subscribing.ErrInvalidPlan),
		errors.Is(err, subscribing.ErrInvalidJoinFee),
		errors.Is(err, subscribing.ErrMissingUser):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)

	default:
		logrus.Error("Erro ao criar assinatura:", err)
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao criar assinatura", nil)
	}
}
