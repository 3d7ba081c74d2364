package handler

import (
	"net/http"

	"github.com/espada/marketplace-api/internal/usecases/subscribing"
	"github.com/espada/marketplace-api/pkg/apiErrors"
	"github.com/sirupsen/logrus"
)

// GetSubscriptionReport retorna todas as assinaturas e a receita total de
// taxas de adesão
func GetSubscriptionReport(service subscribing.SubscriptionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := service.GetReport(r.Context())
		if err != nil {
			logrus.Error("Erro ao gerar relatório de assinaturas:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao gerar relatório de assinaturas", nil)
			return
		}

		writeJSON(w, http.StatusOK, report)
	}
}
