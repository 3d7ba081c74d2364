package purchasing

import (
	"context"
	"database/sql"
	"testing"
	"time"

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

func newTestService(repo repository.PriceHistoryRepository) *Service {
	return &Service{
		runner:           stubRunner{},
		priceHistoryRepo: repo,
	}
}

func validInput() SubmitPurchaseInput {
	return SubmitPurchaseInput{
		UserID:     1,
		ProductID:  10,
		StoreID:    3,
		Price:      2500.00,
		ObservedAt: "2026-08-20T14:30:00Z",
	}
}

func entriesWithIDs(ids ...int) []*domain.PriceEntry {
	entries := make([]*domain.PriceEntry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, &domain.PriceEntry{ID: id, ProductID: 10})
	}
	return entries
}

func TestSubmit_Validation(t *testing.T) {
	service := newTestService(nil)

	tests := []struct {
		name    string
		mutate  func(*SubmitPurchaseInput)
		baseErr error
	}{
		{
			name:    "sem usuário",
			mutate:  func(in *SubmitPurchaseInput) { in.UserID = 0 },
			baseErr: ErrMissingIDs,
		},
		{
			name:    "sem produto",
			mutate:  func(in *SubmitPurchaseInput) { in.ProductID = 0 },
			baseErr: ErrMissingIDs,
		},
		{
			name:    "preço zero",
			mutate:  func(in *SubmitPurchaseInput) { in.Price = 0 },
			baseErr: ErrInvalidPrice,
		},
		{
			name:    "preço negativo",
			mutate:  func(in *SubmitPurchaseInput) { in.Price = -10 },
			baseErr: ErrInvalidPrice,
		},
		{
			name:    "data fora do formato ISO",
			mutate:  func(in *SubmitPurchaseInput) { in.ObservedAt = "20/08/2026" },
			baseErr: ErrInvalidTimestamp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)

			err := service.Submit(context.Background(), input)

			assert.ErrorIs(t, err, tt.baseErr)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestSubmit_SameDayCollapses(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPriceHistoryRepository(ctrl)
	service := newTestService(mockRepo)

	input := validInput()
	existing := &domain.PriceEntry{
		ID:         42,
		UserID:     input.UserID,
		ProductID:  input.ProductID,
		StoreID:    input.StoreID,
		Price:      2300.00,
		ObservedAt: time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC),
	}

	// Mesma pessoa, mesmo produto, mesmo dia: a entrada existente é
	// atualizada. Nenhuma inserção e nenhuma poda acontecem.
	mockRepo.EXPECT().
		LockProduct(gomock.Any(), gomock.Any(), input.ProductID).
		Return(nil)
	mockRepo.EXPECT().
		FindSameDayEntry(gomock.Any(), gomock.Any(), input.UserID, input.ProductID, gomock.Any()).
		Return(existing, nil)
	mockRepo.EXPECT().
		Update(gomock.Any(), gomock.Any(), 42, input.Price, gomock.Any()).
		Return(nil)

	err := service.Submit(context.Background(), input)

	assert.NoError(t, err)
}

func TestSubmit_NewEntryPrunesOverflow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPriceHistoryRepository(ctrl)
	service := newTestService(mockRepo)

	input := validInput()

	mockRepo.EXPECT().
		LockProduct(gomock.Any(), gomock.Any(), input.ProductID).
		Return(nil)
	mockRepo.EXPECT().
		FindSameDayEntry(gomock.Any(), gomock.Any(), input.UserID, input.ProductID, gomock.Any()).
		Return(nil, nil)
	mockRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ any, entry *domain.PriceEntry) (*domain.PriceEntry, error) {
			entry.ID = 6
			return entry, nil
		})

	// Após a sexta inserção o keep-set são as cinco mais recentes; a mais
	// antiga fica fora e é removida pelo DeleteExcept.
	mockRepo.EXPECT().
		ListRecentByProduct(gomock.Any(), gomock.Any(), input.ProductID, domain.PriceHistoryLimit).
		Return(entriesWithIDs(6, 5, 4, 3, 2), nil)
	mockRepo.EXPECT().
		DeleteExcept(gomock.Any(), gomock.Any(), input.ProductID, []int{6, 5, 4, 3, 2}).
		Return(nil)

	err := service.Submit(context.Background(), input)

	assert.NoError(t, err)
}

func TestSubmit_RetriesOnceWhenEntryVanishes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPriceHistoryRepository(ctrl)
	service := newTestService(mockRepo)

	input := validInput()
	existing := &domain.PriceEntry{ID: 42, UserID: input.UserID, ProductID: input.ProductID}

	mockRepo.EXPECT().
		LockProduct(gomock.Any(), gomock.Any(), input.ProductID).
		Return(nil).
		Times(2)

	// Primeira tentativa: a entrada sumiu entre a busca e o update
	first := mockRepo.EXPECT().
		FindSameDayEntry(gomock.Any(), gomock.Any(), input.UserID, input.ProductID, gomock.Any()).
		Return(existing, nil)
	mockRepo.EXPECT().
		Update(gomock.Any(), gomock.Any(), 42, input.Price, gomock.Any()).
		Return(repository.ErrNotFound)

	// Segunda tentativa: toma o caminho de inserção
	mockRepo.EXPECT().
		FindSameDayEntry(gomock.Any(), gomock.Any(), input.UserID, input.ProductID, gomock.Any()).
		Return(nil, nil).
		After(first)
	mockRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ any, entry *domain.PriceEntry) (*domain.PriceEntry, error) {
			entry.ID = 43
			return entry, nil
		})
	mockRepo.EXPECT().
		ListRecentByProduct(gomock.Any(), gomock.Any(), input.ProductID, domain.PriceHistoryLimit).
		Return(entriesWithIDs(43), nil)
	mockRepo.EXPECT().
		DeleteExcept(gomock.Any(), gomock.Any(), input.ProductID, []int{43}).
		Return(nil)

	err := service.Submit(context.Background(), input)

	assert.NoError(t, err)
}

func TestSubmit_SecondFailureSurfaces(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPriceHistoryRepository(ctrl)
	service := newTestService(mockRepo)

	input := validInput()
	existing := &domain.PriceEntry{ID: 42, UserID: input.UserID, ProductID: input.ProductID}

	// As duas tentativas falham: o erro é devolvido, sem terceira tentativa
	mockRepo.EXPECT().
		LockProduct(gomock.Any(), gomock.Any(), input.ProductID).
		Return(nil).
		Times(2)
	mockRepo.EXPECT().
		FindSameDayEntry(gomock.Any(), gomock.Any(), input.UserID, input.ProductID, gomock.Any()).
		Return(existing, nil).
		Times(2)
	mockRepo.EXPECT().
		Update(gomock.Any(), gomock.Any(), 42, input.Price, gomock.Any()).
		Return(repository.ErrNotFound).
		Times(2)

	err := service.Submit(context.Background(), input)

	assert.ErrorIs(t, err, ErrDatabaseOperation)
}

func TestRecentPurchases_ClampsLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPriceHistoryRepository(ctrl)
	service := newTestService(mockRepo)

	items := []*domain.PurchaseHistoryItem{
		{DisplayName: "Maria S.", Price: 2500.00},
	}

	tests := []struct {
		name          string
		requested     int
		expectedLimit int
	}{
		{"limite zero usa o padrão", 0, domain.PriceHistoryLimit},
		{"limite negativo usa o padrão", -3, domain.PriceHistoryLimit},
		{"limite acima do teto usa o padrão", 50, domain.PriceHistoryLimit},
		{"limite válido é respeitado", 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo.EXPECT().
				ListRecentPurchases(gomock.Any(), 10, tt.expectedLimit).
				Return(items, nil)

			result, err := service.RecentPurchases(context.Background(), 10, tt.requested)

			assert.NoError(t, err)
			assert.Equal(t, items, result)
		})
	}
}

func TestEnforceRetention_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPriceHistoryRepository(ctrl)
	service := newTestService(mockRepo)

	// Produto dentro do limite: o keep-set cobre tudo que existe e a
	// deleção não afeta nenhuma linha. Rodar de novo não muda nada.
	mockRepo.EXPECT().
		LockProduct(gomock.Any(), gomock.Any(), 10).
		Return(nil).
		Times(2)
	mockRepo.EXPECT().
		ListRecentByProduct(gomock.Any(), gomock.Any(), 10, domain.PriceHistoryLimit).
		Return(entriesWithIDs(3, 2, 1), nil).
		Times(2)
	mockRepo.EXPECT().
		DeleteExcept(gomock.Any(), gomock.Any(), 10, []int{3, 2, 1}).
		Return(nil).
		Times(2)

	assert.NoError(t, service.EnforceRetention(context.Background(), 10))
	assert.NoError(t, service.EnforceRetention(context.Background(), 10))
}

func TestSubmit_LocksProductBeforeDedupCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPriceHistoryRepository(ctrl)
	service := newTestService(mockRepo)

	input := validInput()

	// O lock do produto precisa vir antes da checagem de mesmo dia: só assim
	// dois escritores concorrentes não conseguem ambos ver "sem entrada no
	// dia" e ambos inserir.
	lock := mockRepo.EXPECT().
		LockProduct(gomock.Any(), gomock.Any(), input.ProductID).
		Return(nil)
	mockRepo.EXPECT().
		FindSameDayEntry(gomock.Any(), gomock.Any(), input.UserID, input.ProductID, gomock.Any()).
		Return(nil, nil).
		After(lock)
	mockRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ any, entry *domain.PriceEntry) (*domain.PriceEntry, error) {
			entry.ID = 7
			return entry, nil
		})
	mockRepo.EXPECT().
		ListRecentByProduct(gomock.Any(), gomock.Any(), input.ProductID, domain.PriceHistoryLimit).
		Return(entriesWithIDs(7), nil)
	mockRepo.EXPECT().
		DeleteExcept(gomock.Any(), gomock.Any(), input.ProductID, []int{7}).
		Return(nil)

	assert.NoError(t, service.Submit(context.Background(), input))
}

func TestSubmit_LockFailureAbortsSubmission(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPriceHistoryRepository(ctrl)
	service := newTestService(mockRepo)

	input := validInput()

	// Sem o lock nada mais acontece: nem busca, nem inserção, nem poda
	mockRepo.EXPECT().
		LockProduct(gomock.Any(), gomock.Any(), input.ProductID).
		Return(assert.AnError)

	err := service.Submit(context.Background(), input)

	assert.ErrorIs(t, err, ErrDatabaseOperation)
}

func TestEnforceRetention_EmptyHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPriceHistoryRepository(ctrl)
	service := newTestService(mockRepo)

	// Sem histórico, o keep-set é vazio e o DeleteExcept recebe keepIDs vazio
	mockRepo.EXPECT().
		LockProduct(gomock.Any(), gomock.Any(), 10).
		Return(nil)
	mockRepo.EXPECT().
		ListRecentByProduct(gomock.Any(), gomock.Any(), 10, domain.PriceHistoryLimit).
		Return(nil, nil)
	mockRepo.EXPECT().
		DeleteExcept(gomock.Any(), gomock.Any(), 10, []int{}).
		Return(nil)

	assert.NoError(t, service.EnforceRetention(context.Background(), 10))
}
