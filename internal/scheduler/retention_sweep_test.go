package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/espada/marketplace-api/infrastructure/repository/mocks"
	"github.com/espada/marketplace-api/internal/domain"
	"github.com/espada/marketplace-api/internal/usecases/purchasing"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

// fakePurchaseService registra os produtos podados e permite injetar falhas
type fakePurchaseService struct {
	pruned  []int
	failFor map[int]error
}

func (f *fakePurchaseService) Submit(ctx context.Context, input purchasing.SubmitPurchaseInput) error {
	return nil
}

func (f *fakePurchaseService) RecentPurchases(ctx context.Context, productID, limit int) ([]*domain.PurchaseHistoryItem, error) {
	return nil, nil
}

func (f *fakePurchaseService) EnforceRetention(ctx context.Context, productID int) error {
	if err, ok := f.failFor[productID]; ok {
		return err
	}
	f.pruned = append(f.pruned, productID)
	return nil
}

func TestRetentionSweep_RunSweep(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPriceHistoryRepository(ctrl)
	fake := &fakePurchaseService{}

	service := &RetentionSweepService{
		priceHistoryRepo: mockRepo,
		purchaseService:  fake,
	}

	mockRepo.EXPECT().
		ListProductIDs(gomock.Any()).
		Return([]int{10, 20, 30}, nil)

	err := service.RunSweep(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []int{10, 20, 30}, fake.pruned)
}

func TestRetentionSweep_ContinuesAfterFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPriceHistoryRepository(ctrl)
	fake := &fakePurchaseService{
		failFor: map[int]error{20: errors.New("deadlock detectado")},
	}

	service := &RetentionSweepService{
		priceHistoryRepo: mockRepo,
		purchaseService:  fake,
	}

	mockRepo.EXPECT().
		ListProductIDs(gomock.Any()).
		Return([]int{10, 20, 30}, nil)

	err := service.RunSweep(context.Background())

	// A falha de um produto não interrompe a varredura dos demais
	assert.Error(t, err)
	assert.Equal(t, []int{10, 30}, fake.pruned)
}
