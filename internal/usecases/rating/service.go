// Package rating implementa o upsert de avaliações e o rollup do agregado
// por loja, rederivado do conjunto vivo a cada mutação.
package rating

import (
	"context"
	"database/sql"
	"time"

	"github.com/espada/marketplace-api/infrastructure/database/postgres"
	"github.com/espada/marketplace-api/infrastructure/repository"
	"github.com/espada/marketplace-api/internal/domain"
	"github.com/espada/marketplace-api/pkg/apiErrors"
	"github.com/espada/marketplace-api/pkg/log"
	"github.com/espada/marketplace-api/pkg/utils"
	pkgerrors "github.com/pkg/errors"
)

type SubmitRatingInput struct {
	UserID    int
	StoreID   int
	ProductID *int
	Rating    int
}

type RollupService interface {
	SubmitRating(ctx context.Context, input SubmitRatingInput) error
	GetStoreRating(ctx context.Context, storeID int) (*domain.StoreRatingAggregate, error)
	GetUserRating(ctx context.Context, storeID, userID int) (int, error)
	ResyncAggregate(ctx context.Context, storeID int) error
}

type Service struct {
	runner     postgres.TransactionRunner
	ratingRepo repository.RatingRepository
}

func NewService(runner postgres.TransactionRunner, ratingRepo repository.RatingRepository) RollupService {
	return &Service{
		runner:     runner,
		ratingRepo: ratingRepo,
	}
}

// SubmitRating faz o upsert da avaliação da chave (usuário, loja, produto)
// e regrava o agregado da loja na mesma transação, de modo que o agregado
// nunca fique visível desatualizado em relação à escrita que o invalidou.
// Atualização cuja linha sumiu no meio do caminho é repetida uma única vez.
func (s *Service) SubmitRating(ctx context.Context, input SubmitRatingInput) error {
	if input.UserID <= 0 || input.StoreID <= 0 {
		return NewSubmissionError(ErrMissingIDs, apiErrors.ErrMissingRequiredData, "")
	}

	if input.Rating < domain.RatingMin || input.Rating > domain.RatingMax {
		return NewSubmissionError(ErrInvalidRating, apiErrors.ErrInvalidFormat, "")
	}

	err := s.submitOnce(ctx, input)
	if pkgerrors.Is(err, repository.ErrNotFound) {
		log.ForContext(ctx).WithFields(log.Fields{
			"user_id":  input.UserID,
			"store_id": input.StoreID,
		}).Warn("Avaliação removida por escritor concorrente, repetindo submissão")

		err = s.submitOnce(ctx, input)
	}

	if err != nil {
		return NewSubmissionError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	return nil
}

func (s *Service) submitOnce(ctx context.Context, input SubmitRatingInput) error {
	now := time.Now()

	return s.runner.RunInTransaction(ctx, func(tx *sql.Tx) error {
		// Serializa os escritores da loja antes da busca e do rollup: sem o
		// lock, dois escritores da mesma chave poderiam ambos inserir, e um
		// rollup calculado sobre snapshot antigo poderia sobrescrever o
		// agregado de um commit posterior.
		if err := s.ratingRepo.LockStore(ctx, tx, input.StoreID); err != nil {
			return err
		}

		existing, err := s.ratingRepo.FindByKeys(ctx, tx, input.UserID, input.StoreID, input.ProductID)
		if err != nil {
			return err
		}

		if existing != nil {
			if err := s.ratingRepo.UpdateRating(ctx, tx, existing.ID, input.Rating, now); err != nil {
				return err
			}
		} else {
			_, err := s.ratingRepo.Insert(ctx, tx, &domain.Rating{
				UserID:      input.UserID,
				StoreID:     input.StoreID,
				ProductID:   input.ProductID,
				Rating:      input.Rating,
				SubmittedAt: now,
			})
			if err != nil {
				return err
			}
		}

		return s.rollup(ctx, tx, input.StoreID)
	})
}

// rollup rederiva o agregado da loja do conjunto vivo de avaliações e o
// regrava por inteiro, nunca por delta.
func (s *Service) rollup(ctx context.Context, q postgres.Queryer, storeID int) error {
	agg, err := s.ratingRepo.ComputeAggregate(ctx, q, storeID)
	if err != nil {
		return err
	}

	agg.AverageRating = utils.RoundWithTwoDecimalPlace(agg.AverageRating)

	return s.ratingRepo.SaveAggregate(ctx, q, agg)
}

// GetStoreRating retorna o agregado da loja. Loja sem avaliações responde
// {0, 0.00}, nunca erro.
func (s *Service) GetStoreRating(ctx context.Context, storeID int) (*domain.StoreRatingAggregate, error) {
	return s.ratingRepo.GetAggregate(ctx, storeID)
}

// GetUserRating retorna a nota mais recente do usuário para a loja, ou 0
// se ele nunca avaliou.
func (s *Service) GetUserRating(ctx context.Context, storeID, userID int) (int, error) {
	rating, err := s.ratingRepo.GetLatestUserRating(ctx, storeID, userID)
	if err != nil {
		return 0, err
	}

	if rating == nil {
		return 0, nil
	}

	return rating.Rating, nil
}

// ResyncAggregate regrava o agregado da loja em sua própria transação.
// Usado pela ressincronização periódica para curar agregados que ficaram
// desatualizados após uma falha de rollup.
func (s *Service) ResyncAggregate(ctx context.Context, storeID int) error {
	return s.runner.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := s.ratingRepo.LockStore(ctx, tx, storeID); err != nil {
			return err
		}

		return s.rollup(ctx, tx, storeID)
	})
}
