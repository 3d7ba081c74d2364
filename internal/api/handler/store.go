package handler

import (
	"net/http"

	"github.com/espada/marketplace-api/internal/usecases/storing"
	"github.com/espada/marketplace-api/pkg/apiErrors"
	"github.com/sirupsen/logrus"
)

func ListStores(service storing.StoreService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stores, err := service.ListStores(r.Context())
		if err != nil {
			logrus.Error("Erro ao listar lojas:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar lojas", nil)
			return
		}

		writeJSON(w, http.StatusOK, stores)
	}
}

func GetStore(service storing.StoreService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := pathParamInt(r, "id")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID da loja inválido", nil)
			return
		}

		store, err := service.GetStore(r.Context(), storeID)
		if err != nil {
			logrus.Error("Erro ao buscar loja:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar loja", nil)
			return
		}

		if store == nil {
			apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Loja não encontrada", nil)
			return
		}

		writeJSON(w, http.StatusOK, store)
	}
}

// GetStoreHours retorna os horários formatados, ordenados de segunda a domingo
func GetStoreHours(service storing.StoreService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := pathParamInt(r, "id")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID da loja inválido", nil)
			return
		}

		hours, err := service.GetStoreHours(r.Context(), storeID)
		if err != nil {
			logrus.Error("Erro ao buscar horários da loja:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar horários da loja", nil)
			return
		}

		writeJSON(w, http.StatusOK, hours)
	}
}
