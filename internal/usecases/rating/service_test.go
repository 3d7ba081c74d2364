package rating

import (
	"context"
	"database/sql"
	"testing"

	"github.com/espada/marketplace-api/infrastructure/repository"
	"github.com/espada/marketplace-api/infrastructure/repository/mocks"
	"github.com/espada/marketplace-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

// stubRunner executa fn diretamente, sem transação real
type stubRunner struct{}

func (stubRunner) RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	return fn(nil)
}

func newTestService(repo repository.RatingRepository) *Service {
	return &Service{
		runner:     stubRunner{},
		ratingRepo: repo,
	}
}

func TestSubmitRating_Validation(t *testing.T) {
	service := newTestService(nil)

	tests := []struct {
		name    string
		input   SubmitRatingInput
		baseErr error
	}{
		{
			name:    "sem usuário",
			input:   SubmitRatingInput{StoreID: 3, Rating: 4},
			baseErr: ErrMissingIDs,
		},
		{
			name:    "sem loja",
			input:   SubmitRatingInput{UserID: 1, Rating: 4},
			baseErr: ErrMissingIDs,
		},
		{
			name:    "nota abaixo do mínimo",
			input:   SubmitRatingInput{UserID: 1, StoreID: 3, Rating: 0},
			baseErr: ErrInvalidRating,
		},
		{
			name:    "nota acima do máximo",
			input:   SubmitRatingInput{UserID: 1, StoreID: 3, Rating: 6},
			baseErr: ErrInvalidRating,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.SubmitRating(context.Background(), tt.input)

			assert.ErrorIs(t, err, tt.baseErr)
		})
	}
}

func TestSubmitRating_FirstRatingWritesAggregate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRatingRepository(ctrl)
	service := newTestService(mockRepo)

	input := SubmitRatingInput{UserID: 1, StoreID: 3, Rating: 5}

	mockRepo.EXPECT().
		LockStore(gomock.Any(), gomock.Any(), 3).
		Return(nil)
	mockRepo.EXPECT().
		FindByKeys(gomock.Any(), gomock.Any(), 1, 3, gomock.Nil()).
		Return(nil, nil)
	mockRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ any, r *domain.Rating) (*domain.Rating, error) {
			assert.Equal(t, 5, r.Rating)
			r.ID = 1
			return r, nil
		})

	// Primeira avaliação: agregado rederivado vira {1, 5.00}
	mockRepo.EXPECT().
		ComputeAggregate(gomock.Any(), gomock.Any(), 3).
		Return(&domain.StoreRatingAggregate{StoreID: 3, RatingCount: 1, AverageRating: 5}, nil)
	mockRepo.EXPECT().
		SaveAggregate(gomock.Any(), gomock.Any(), &domain.StoreRatingAggregate{
			StoreID:       3,
			RatingCount:   1,
			AverageRating: 5,
		}).
		Return(nil)

	err := service.SubmitRating(context.Background(), input)

	assert.NoError(t, err)
}

func TestSubmitRating_ResubmitUpdatesInPlace(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRatingRepository(ctrl)
	service := newTestService(mockRepo)

	input := SubmitRatingInput{UserID: 1, StoreID: 3, Rating: 1}
	existing := &domain.Rating{ID: 7, UserID: 1, StoreID: 3, Rating: 5}

	// Reenvio da mesma chave: atualiza a linha existente, a contagem da
	// loja não muda e a média é rederivada do conjunto vivo.
	mockRepo.EXPECT().
		LockStore(gomock.Any(), gomock.Any(), 3).
		Return(nil)
	mockRepo.EXPECT().
		FindByKeys(gomock.Any(), gomock.Any(), 1, 3, gomock.Nil()).
		Return(existing, nil)
	mockRepo.EXPECT().
		UpdateRating(gomock.Any(), gomock.Any(), 7, 1, gomock.Any()).
		Return(nil)
	mockRepo.EXPECT().
		ComputeAggregate(gomock.Any(), gomock.Any(), 3).
		Return(&domain.StoreRatingAggregate{StoreID: 3, RatingCount: 2, AverageRating: 2}, nil)
	mockRepo.EXPECT().
		SaveAggregate(gomock.Any(), gomock.Any(), &domain.StoreRatingAggregate{
			StoreID:       3,
			RatingCount:   2,
			AverageRating: 2,
		}).
		Return(nil)

	err := service.SubmitRating(context.Background(), input)

	assert.NoError(t, err)
}

func TestSubmitRating_AverageRoundedToTwoDecimals(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRatingRepository(ctrl)
	service := newTestService(mockRepo)

	productID := 10
	input := SubmitRatingInput{UserID: 2, StoreID: 3, ProductID: &productID, Rating: 4}

	mockRepo.EXPECT().
		LockStore(gomock.Any(), gomock.Any(), 3).
		Return(nil)
	mockRepo.EXPECT().
		FindByKeys(gomock.Any(), gomock.Any(), 2, 3, &productID).
		Return(nil, nil)
	mockRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&domain.Rating{ID: 8}, nil)

	// (5+4+4)/3 = 4.3333... persiste como 4.33
	mockRepo.EXPECT().
		ComputeAggregate(gomock.Any(), gomock.Any(), 3).
		Return(&domain.StoreRatingAggregate{StoreID: 3, RatingCount: 3, AverageRating: 4.333333333333333}, nil)
	mockRepo.EXPECT().
		SaveAggregate(gomock.Any(), gomock.Any(), &domain.StoreRatingAggregate{
			StoreID:       3,
			RatingCount:   3,
			AverageRating: 4.33,
		}).
		Return(nil)

	err := service.SubmitRating(context.Background(), input)

	assert.NoError(t, err)
}

func TestSubmitRating_RetriesOnceWhenRowVanishes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRatingRepository(ctrl)
	service := newTestService(mockRepo)

	input := SubmitRatingInput{UserID: 1, StoreID: 3, Rating: 4}
	existing := &domain.Rating{ID: 7, UserID: 1, StoreID: 3, Rating: 5}

	mockRepo.EXPECT().
		LockStore(gomock.Any(), gomock.Any(), 3).
		Return(nil).
		Times(2)

	// Primeira tentativa: a linha sumiu entre a busca e o update
	first := mockRepo.EXPECT().
		FindByKeys(gomock.Any(), gomock.Any(), 1, 3, gomock.Nil()).
		Return(existing, nil)
	mockRepo.EXPECT().
		UpdateRating(gomock.Any(), gomock.Any(), 7, 4, gomock.Any()).
		Return(repository.ErrNotFound)

	// Segunda tentativa: insere e refaz o rollup
	mockRepo.EXPECT().
		FindByKeys(gomock.Any(), gomock.Any(), 1, 3, gomock.Nil()).
		Return(nil, nil).
		After(first)
	mockRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&domain.Rating{ID: 9}, nil)
	mockRepo.EXPECT().
		ComputeAggregate(gomock.Any(), gomock.Any(), 3).
		Return(&domain.StoreRatingAggregate{StoreID: 3, RatingCount: 1, AverageRating: 4}, nil)
	mockRepo.EXPECT().
		SaveAggregate(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	err := service.SubmitRating(context.Background(), input)

	assert.NoError(t, err)
}

func TestSubmitRating_LocksStoreBeforeUpsertAndRollup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRatingRepository(ctrl)
	service := newTestService(mockRepo)

	input := SubmitRatingInput{UserID: 1, StoreID: 3, Rating: 4}

	// O lock da loja precisa vir antes do upsert e do ComputeAggregate: é
	// ele que garante que o rollup de cada escritor roda depois do commit
	// do anterior e nunca regrava o agregado com contagem e média velhas.
	lock := mockRepo.EXPECT().
		LockStore(gomock.Any(), gomock.Any(), 3).
		Return(nil)
	mockRepo.EXPECT().
		FindByKeys(gomock.Any(), gomock.Any(), 1, 3, gomock.Nil()).
		Return(nil, nil).
		After(lock)
	mockRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&domain.Rating{ID: 11}, nil)
	mockRepo.EXPECT().
		ComputeAggregate(gomock.Any(), gomock.Any(), 3).
		Return(&domain.StoreRatingAggregate{StoreID: 3, RatingCount: 1, AverageRating: 4}, nil).
		After(lock)
	mockRepo.EXPECT().
		SaveAggregate(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	assert.NoError(t, service.SubmitRating(context.Background(), input))
}

func TestSubmitRating_LockFailureAbortsSubmission(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRatingRepository(ctrl)
	service := newTestService(mockRepo)

	input := SubmitRatingInput{UserID: 1, StoreID: 3, Rating: 4}

	// Sem o lock nada mais acontece: nem upsert, nem rollup
	mockRepo.EXPECT().
		LockStore(gomock.Any(), gomock.Any(), 3).
		Return(assert.AnError)

	err := service.SubmitRating(context.Background(), input)

	assert.ErrorIs(t, err, ErrDatabaseOperation)
}

func TestGetStoreRating_NoRatingsIsZeroAggregate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRatingRepository(ctrl)
	service := newTestService(mockRepo)

	// Loja sem avaliações responde contagem zero e média 0.00, nunca erro
	mockRepo.EXPECT().
		GetAggregate(gomock.Any(), 3).
		Return(&domain.StoreRatingAggregate{StoreID: 3}, nil)

	agg, err := service.GetStoreRating(context.Background(), 3)

	assert.NoError(t, err)
	assert.Equal(t, 0, agg.RatingCount)
	assert.Equal(t, 0.0, agg.AverageRating)
}

func TestGetUserRating(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRatingRepository(ctrl)
	service := newTestService(mockRepo)

	t.Run("usuário nunca avaliou", func(t *testing.T) {
		mockRepo.EXPECT().
			GetLatestUserRating(gomock.Any(), 3, 1).
			Return(nil, nil)

		rating, err := service.GetUserRating(context.Background(), 3, 1)

		assert.NoError(t, err)
		assert.Equal(t, 0, rating)
	})

	t.Run("usuário já avaliou", func(t *testing.T) {
		mockRepo.EXPECT().
			GetLatestUserRating(gomock.Any(), 3, 1).
			Return(&domain.Rating{ID: 7, Rating: 4}, nil)

		rating, err := service.GetUserRating(context.Background(), 3, 1)

		assert.NoError(t, err)
		assert.Equal(t, 4, rating)
	})
}

func TestResyncAggregate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRatingRepository(ctrl)
	service := newTestService(mockRepo)

	mockRepo.EXPECT().
		LockStore(gomock.Any(), gomock.Any(), 3).
		Return(nil)
	mockRepo.EXPECT().
		ComputeAggregate(gomock.Any(), gomock.Any(), 3).
		Return(&domain.StoreRatingAggregate{StoreID: 3, RatingCount: 2, AverageRating: 4.5}, nil)
	mockRepo.EXPECT().
		SaveAggregate(gomock.Any(), gomock.Any(), &domain.StoreRatingAggregate{
			StoreID:       3,
			RatingCount:   2,
			AverageRating: 4.5,
		}).
		Return(nil)

	assert.NoError(t, service.ResyncAggregate(context.Background(), 3))
}
