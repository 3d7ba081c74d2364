// Package subscribing implementa as assinaturas de lojistas e o relatório
// de receita de adesões.
package subscribing

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/espada/marketplace-api/infrastructure/database/postgres"
	"github.com/espada/marketplace-api/infrastructure/repository"
	"github.com/espada/marketplace-api/internal/domain"
	"github.com/espada/marketplace-api/pkg/utils"
)

// Erros do contexto de assinaturas
var (
	ErrInvalidPlan    = errors.New("plano de assinatura inválido")
	ErrInvalidJoinFee = errors.New("taxa de adesão deve ser maior que zero")
	ErrMissingUser    = errors.New("usuário é obrigatório")
)

// planDurations mapeia cada plano para sua duração em dias
var planDurations = map[string]int{
	domain.SubscriptionPlanMonthly:   30,
	domain.SubscriptionPlanQuarterly: 90,
	domain.SubscriptionPlanAnnual:    365,
}

type CreateSubscriptionInput struct {
	UserID  int
	Plan    string
	JoinFee float64
}

type SubscriptionService interface {
	CreateSubscription(ctx context.Context, input CreateSubscriptionInput) (*domain.Subscription, error)
	GetSubscription(ctx context.Context, ownerID int) (*domain.Subscription, error)
	GetReport(ctx context.Context) (*domain.SubscriptionReport, error)
}

type Service struct {
	runner           postgres.TransactionRunner
	subscriptionRepo repository.SubscriptionRepository
}

func NewService(runner postgres.TransactionRunner, subscriptionRepo repository.SubscriptionRepository) SubscriptionService {
	return &Service{
		runner:           runner,
		subscriptionRepo: subscriptionRepo,
	}
}

// CreateSubscription cria o lojista e sua assinatura em uma única
// transação; falha em qualquer passo desfaz os dois.
func (s *Service) CreateSubscription(ctx context.Context, input CreateSubscriptionInput) (*domain.Subscription, error) {
	if input.UserID <= 0 {
		return nil, ErrMissingUser
	}

	days, ok := planDurations[input.Plan]
	if !ok {
		return nil, ErrInvalidPlan
	}

	if input.JoinFee <= 0 {
		return nil, ErrInvalidJoinFee
	}

	referenceCode, err := utils.GenerateReferenceCode()
	if err != nil {
		return nil, err
	}

	startDate := time.Now()
	sub := &domain.Subscription{
		ReferenceCode: referenceCode,
		Plan:          input.Plan,
		StartDate:     startDate,
		EndDate:       startDate.AddDate(0, 0, days),
		JoinFee:       input.JoinFee,
	}

	err = s.runner.RunInTransaction(ctx, func(tx *sql.Tx) error {
		ownerID, err := s.subscriptionRepo.CreateOwner(ctx, tx, input.UserID)
		if err != nil {
			return err
		}

		sub.OwnerID = ownerID
		_, err = s.subscriptionRepo.InsertSubscription(ctx, tx, sub)
		return err
	})
	if err != nil {
		return nil, err
	}

	return sub, nil
}

func (s *Service) GetSubscription(ctx context.Context, ownerID int) (*domain.Subscription, error) {
	return s.subscriptionRepo.GetLatestByOwner(ctx, ownerID)
}

func (s *Service) GetReport(ctx context.Context) (*domain.SubscriptionReport, error) {
	subs, err := s.subscriptionRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	total, err := s.subscriptionRepo.TotalJoinFees(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.SubscriptionReport{
		Reports: subs,
		Total:   total,
	}, nil
}
