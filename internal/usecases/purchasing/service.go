// Package purchasing implementa o registro de preços observados: deduplicação
// por dia-calendário e retenção das entradas mais recentes por produto.
package purchasing

import (
	"context"
	"database/sql"
	"time"

	"github.com/espada/marketplace-api/infrastructure/database/postgres"
	"github.com/espada/marketplace-api/infrastructure/repository"
	"github.com/espada/marketplace-api/internal/domain"
	"github.com/espada/marketplace-api/pkg/apiErrors"
	"github.com/espada/marketplace-api/pkg/log"
	pkgerrors "github.com/pkg/errors"
)

type SubmitPurchaseInput struct {
	UserID     int
	ProductID  int
	StoreID    int
	Price      float64
	ObservedAt string // ISO-8601
}

type PurchaseService interface {
	Submit(ctx context.Context, input SubmitPurchaseInput) error
	RecentPurchases(ctx context.Context, productID, limit int) ([]*domain.PurchaseHistoryItem, error)
	EnforceRetention(ctx context.Context, productID int) error
}

type Service struct {
	runner           postgres.TransactionRunner
	priceHistoryRepo repository.PriceHistoryRepository
}

func NewService(runner postgres.TransactionRunner, priceHistoryRepo repository.PriceHistoryRepository) PurchaseService {
	return &Service{
		runner:           runner,
		priceHistoryRepo: priceHistoryRepo,
	}
}

// Submit registra um preço observado. Uma submissão do mesmo usuário para o
// mesmo produto no mesmo dia-calendário atualiza a entrada existente; caso
// contrário insere uma nova e poda o excedente do produto. Os passos rodam
// em uma única transação: em caso de falha nenhum estado parcial fica
// visível. Se a entrada alvo da atualização sumir no meio do caminho
// (removida por um escritor concorrente), a submissão inteira é repetida
// uma única vez; a repetição toma o caminho de inserção.
func (s *Service) Submit(ctx context.Context, input SubmitPurchaseInput) error {
	if input.UserID <= 0 || input.ProductID <= 0 || input.StoreID <= 0 {
		return NewSubmissionError(ErrMissingIDs, apiErrors.ErrMissingRequiredData, "")
	}

	if input.Price <= 0 {
		return NewSubmissionError(ErrInvalidPrice, apiErrors.ErrInvalidFormat, "")
	}

	observedAt, err := time.Parse(time.RFC3339, input.ObservedAt)
	if err != nil {
		return NewSubmissionError(ErrInvalidTimestamp, apiErrors.ErrInvalidFormat, input.ObservedAt)
	}

	err = s.submitOnce(ctx, input, observedAt)
	if pkgerrors.Is(err, repository.ErrNotFound) {
		log.ForContext(ctx).WithFields(log.Fields{
			"user_id":    input.UserID,
			"product_id": input.ProductID,
		}).Warn("Entrada removida por escritor concorrente, repetindo submissão")

		err = s.submitOnce(ctx, input, observedAt)
	}

	if err != nil {
		return NewSubmissionError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	return nil
}

func (s *Service) submitOnce(ctx context.Context, input SubmitPurchaseInput, observedAt time.Time) error {
	return s.runner.RunInTransaction(ctx, func(tx *sql.Tx) error {
		// Serializa os escritores do produto antes da busca: sem o lock,
		// dois escritores concorrentes poderiam ambos ver "sem entrada no
		// dia" e ambos inserir.
		if err := s.priceHistoryRepo.LockProduct(ctx, tx, input.ProductID); err != nil {
			return err
		}

		entry, err := s.priceHistoryRepo.FindSameDayEntry(ctx, tx, input.UserID, input.ProductID, observedAt)
		if err != nil {
			return err
		}

		if entry != nil {
			// Mesma pessoa, mesmo produto, mesmo dia: colapsa na entrada
			// existente. A contagem do produto não muda, retenção dispensada.
			return s.priceHistoryRepo.Update(ctx, tx, entry.ID, input.Price, observedAt)
		}

		_, err = s.priceHistoryRepo.Insert(ctx, tx, &domain.PriceEntry{
			UserID:     input.UserID,
			ProductID:  input.ProductID,
			StoreID:    input.StoreID,
			Price:      input.Price,
			ObservedAt: observedAt,
		})
		if err != nil {
			return err
		}

		return s.pruneOverflow(ctx, tx, input.ProductID)
	})
}

// pruneOverflow rederiva o keep-set (as PriceHistoryLimit entradas mais
// recentes) do estado persistido e remove o resto. Rodar de novo com o
// produto já dentro do limite não afeta nenhuma linha.
func (s *Service) pruneOverflow(ctx context.Context, q postgres.Queryer, productID int) error {
	recent, err := s.priceHistoryRepo.ListRecentByProduct(ctx, q, productID, domain.PriceHistoryLimit)
	if err != nil {
		return err
	}

	keepIDs := make([]int, 0, len(recent))
	for _, entry := range recent {
		keepIDs = append(keepIDs, entry.ID)
	}

	return s.priceHistoryRepo.DeleteExcept(ctx, q, productID, keepIDs)
}

// RecentPurchases retorna o histórico recente do produto para exibição,
// do mais novo para o mais antigo.
func (s *Service) RecentPurchases(ctx context.Context, productID, limit int) ([]*domain.PurchaseHistoryItem, error) {
	if limit <= 0 || limit > 10 {
		limit = domain.PriceHistoryLimit
	}

	return s.priceHistoryRepo.ListRecentPurchases(ctx, productID, limit)
}

// EnforceRetention aplica a poda de um produto em sua própria transação.
// Usado pela varredura periódica do scheduler.
func (s *Service) EnforceRetention(ctx context.Context, productID int) error {
	return s.runner.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := s.priceHistoryRepo.LockProduct(ctx, tx, productID); err != nil {
			return err
		}

		return s.pruneOverflow(ctx, tx, productID)
	})
}
