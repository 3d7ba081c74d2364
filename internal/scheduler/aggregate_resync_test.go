package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/espada/marketplace-api/infrastructure/repository/mocks"
	"github.com/espada/marketplace-api/internal/domain"
	"github.com/espada/marketplace-api/internal/usecases/rating"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

// fakeRollupService registra as lojas ressincronizadas e permite injetar falhas
type fakeRollupService struct {
	resynced []int
	failFor  map[int]error
}

func (f *fakeRollupService) SubmitRating(ctx context.Context, input rating.SubmitRatingInput) error {
	return nil
}

func (f *fakeRollupService) GetStoreRating(ctx context.Context, storeID int) (*domain.StoreRatingAggregate, error) {
	return nil, nil
}

func (f *fakeRollupService) GetUserRating(ctx context.Context, storeID, userID int) (int, error) {
	return 0, nil
}

func (f *fakeRollupService) ResyncAggregate(ctx context.Context, storeID int) error {
	if err, ok := f.failFor[storeID]; ok {
		return err
	}
	f.resynced = append(f.resynced, storeID)
	return nil
}

func TestAggregateResync_RunResync(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRatingRepository(ctrl)
	fake := &fakeRollupService{}

	service := &AggregateResyncService{
		ratingRepo:    mockRepo,
		rollupService: fake,
	}

	mockRepo.EXPECT().
		ListStoreIDs(gomock.Any()).
		Return([]int{1, 2}, nil)

	err := service.RunResync(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2}, fake.resynced)
}

func TestAggregateResync_ContinuesAfterFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRatingRepository(ctrl)
	fake := &fakeRollupService{
		failFor: map[int]error{1: errors.New("conexão perdida")},
	}

	service := &AggregateResyncService{
		ratingRepo:    mockRepo,
		rollupService: fake,
	}

	mockRepo.EXPECT().
		ListStoreIDs(gomock.Any()).
		Return([]int{1, 2}, nil)

	err := service.RunResync(context.Background())

	assert.Error(t, err)
	assert.Equal(t, []int{2}, fake.resynced)
}
