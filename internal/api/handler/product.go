package handler

import (
	"net/http"
	"strconv"

	"github.com/espada/marketplace-api/infrastructure/repository"
	"github.com/espada/marketplace-api/internal/domain"
	"github.com/espada/marketplace-api/internal/usecases/cataloging"
	"github.com/espada/marketplace-api/pkg/apiErrors"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type UpdateSetPriceRequest struct {
	SetPrice float64 `json:"set_price"`
}

// ListProducts lista o catálogo inteiro ou, com ?storeID=, o de uma loja
func ListProducts(service cataloging.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var storeID *int
		if raw := r.URL.Query().Get("storeID"); raw != "" {
			id, err := strconv.Atoi(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID da loja inválido", nil)
				return
			}
			storeID = &id
		}

		products, err := service.ListProducts(r.Context(), storeID)
		if err != nil {
			logrus.Error("Erro ao listar produtos:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar produtos", nil)
			return
		}

		writeJSON(w, http.StatusOK, products)
	}
}

func GetProduct(service cataloging.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := pathParamInt(r, "id")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID do produto inválido", nil)
			return
		}

		product, err := service.GetProduct(r.Context(), productID)
		if err != nil {
			logrus.Error("Erro ao buscar produto:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar produto", nil)
			return
		}

		if product == nil {
			apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Produto não encontrado", nil)
			return
		}

		writeJSON(w, http.StatusOK, product)
	}
}

func CreateProduct(service cataloging.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var product domain.Product
		if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		created, err := service.AddProduct(r.Context(), &product)
		if err != nil {
			handleCatalogError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, created)
	}
}

func UpdateSetPrice(service cataloging.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := pathParamInt(r, "id")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID do produto inválido", nil)
			return
		}

		var req UpdateSetPriceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if err := service.UpdateSetPrice(r.Context(), productID, req.SetPrice); err != nil {
			handleCatalogError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

// DeleteProduct remove o produto e, em cascata, o histórico de preços dele
func DeleteProduct(service cataloging.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := pathParamInt(r, "id")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID do produto inválido", nil)
			return
		}

		if err := service.DeleteProduct(r.Context(), productID); err != nil {
			handleCatalogError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func handleCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cataloging.ErrInvalidSetPrice), errors.Is(err, cataloging.ErrMissingStore):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)

	case errors.Is(err, repository.ErrNotFound):
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Produto não encontrado", nil)

	default:
		logrus.Error("Erro no catálogo:", err)
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao processar produto", nil)
	}
}
