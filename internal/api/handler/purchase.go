package handler

import (
	"net/http"
	"strconv"

	"github.com/espada/marketplace-api/internal/domain"
	"github.com/espada/marketplace-api/internal/usecases/purchasing"
	"github.com/espada/marketplace-api/pkg/apiErrors"
	"github.com/espada/marketplace-api/pkg/middleware"
	"github.com/pkg/errors"
)

type SubmitPurchaseRequest struct {
	StoreID    int     `json:"storeID"`
	Price      float64 `json:"price"`
	ObservedAt string  `json:"purchase_date"`
}

// SubmitPurchase registra um preço observado pelo usuário logado. Submissões
// do mesmo usuário para o mesmo produto no mesmo dia colapsam em uma só.
func SubmitPurchase(service purchasing.PurchaseService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := pathParamInt(r, "id")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID do produto inválido", nil)
			return
		}

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req SubmitPurchaseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		err = service.Submit(r.Context(), purchasing.SubmitPurchaseInput{
			UserID:     userClaims.UserID,
			ProductID:  productID,
			StoreID:    req.StoreID,
			Price:      req.Price,
			ObservedAt: req.ObservedAt,
		})
		if err != nil {
			handlePurchaseError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// GetPurchaseHistory retorna o histórico recente de preços do produto, do
// mais novo para o mais antigo.
func GetPurchaseHistory(service purchasing.PurchaseService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := pathParamInt(r, "id")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID do produto inválido", nil)
			return
		}

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		history, err := service.RecentPurchases(r.Context(), productID, limit)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar histórico de compras", nil)
			return
		}

		writeJSON(w, http.StatusOK, history)
	}
}

func handlePurchaseError(w http.ResponseWriter, err error) {
	var subErr *purchasing.SubmissionError
	if errors.As(err, &subErr) {
		apiErrors.WriteError(w, subErr.Code, subErr.Error(), nil)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao registrar compra", nil)
}
