package subscribing

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/espada/marketplace-api/infrastructure/database/postgres"
	"github.com/espada/marketplace-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

// stubRunner executa fn diretamente, sem transação real
type stubRunner struct{}

func (stubRunner) RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	return fn(nil)
}

// fakeSubscriptionRepo simula a persistência de lojistas e assinaturas
type fakeSubscriptionRepo struct {
	nextOwnerID int
	inserted    *domain.Subscription
	insertErr   error
}

func (f *fakeSubscriptionRepo) CreateOwner(ctx context.Context, q postgres.Queryer, userID int) (int, error) {
	f.nextOwnerID++
	return f.nextOwnerID, nil
}

func (f *fakeSubscriptionRepo) InsertSubscription(ctx context.Context, q postgres.Queryer, sub *domain.Subscription) (*domain.Subscription, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.inserted = sub
	return sub, nil
}

func (f *fakeSubscriptionRepo) GetLatestByOwner(ctx context.Context, ownerID int) (*domain.Subscription, error) {
	return f.inserted, nil
}

func (f *fakeSubscriptionRepo) ListAll(ctx context.Context) ([]domain.Subscription, error) {
	if f.inserted == nil {
		return nil, nil
	}
	return []domain.Subscription{*f.inserted}, nil
}

func (f *fakeSubscriptionRepo) TotalJoinFees(ctx context.Context) (float64, error) {
	if f.inserted == nil {
		return 0, nil
	}
	return f.inserted.JoinFee, nil
}

func TestCreateSubscription_PlanDurations(t *testing.T) {
	tests := []struct {
		plan string
		days int
	}{
		{domain.SubscriptionPlanMonthly, 30},
		{domain.SubscriptionPlanQuarterly, 90},
		{domain.SubscriptionPlanAnnual, 365},
	}

	for _, tt := range tests {
		t.Run(tt.plan, func(t *testing.T) {
			repo := &fakeSubscriptionRepo{}
			service := NewService(stubRunner{}, repo)

			sub, err := service.CreateSubscription(context.Background(), CreateSubscriptionInput{
				UserID:  1,
				Plan:    tt.plan,
				JoinFee: 250.00,
			})

			assert.NoError(t, err)
			assert.Equal(t, 1, sub.OwnerID)
			assert.Len(t, sub.ReferenceCode, 8)
			assert.Equal(t, sub.StartDate.AddDate(0, 0, tt.days), sub.EndDate)
		})
	}
}

func TestCreateSubscription_Validation(t *testing.T) {
	service := NewService(stubRunner{}, &fakeSubscriptionRepo{})

	tests := []struct {
		name    string
		input   CreateSubscriptionInput
		wantErr error
	}{
		{
			name:    "plano desconhecido",
			input:   CreateSubscriptionInput{UserID: 1, Plan: "2 WEEKS", JoinFee: 100},
			wantErr: ErrInvalidPlan,
		},
		{
			name:    "taxa de adesão zero",
			input:   CreateSubscriptionInput{UserID: 1, Plan: domain.SubscriptionPlanMonthly, JoinFee: 0},
			wantErr: ErrInvalidJoinFee,
		},
		{
			name:    "sem usuário",
			input:   CreateSubscriptionInput{Plan: domain.SubscriptionPlanMonthly, JoinFee: 100},
			wantErr: ErrMissingUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateSubscription(context.Background(), tt.input)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateSubscription_InsertFailureSurfaces(t *testing.T) {
	repo := &fakeSubscriptionRepo{insertErr: errors.New("violação de unicidade")}
	service := NewService(stubRunner{}, repo)

	_, err := service.CreateSubscription(context.Background(), CreateSubscriptionInput{
		UserID:  1,
		Plan:    domain.SubscriptionPlanMonthly,
		JoinFee: 250.00,
	})

	assert.Error(t, err)
	assert.Nil(t, repo.inserted)
}

func TestGetReport(t *testing.T) {
	repo := &fakeSubscriptionRepo{}
	service := NewService(stubRunner{}, repo)

	start := time.Now()
	repo.inserted = &domain.Subscription{
		ID:            1,
		OwnerID:       1,
		ReferenceCode: "A1B2C3D4",
		Plan:          domain.SubscriptionPlanAnnual,
		StartDate:     start,
		EndDate:       start.AddDate(0, 0, 365),
		JoinFee:       990.00,
	}

	report, err := service.GetReport(context.Background())

	assert.NoError(t, err)
	assert.Len(t, report.Reports, 1)
	assert.Equal(t, 990.00, report.Total)
}
