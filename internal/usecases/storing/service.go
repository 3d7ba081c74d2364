// Package storing expõe a consulta de lojas e de seus horários de
// funcionamento.
package storing

import (
	"context"

	"github.com/espada/marketplace-api/infrastructure/repository"
	"github.com/espada/marketplace-api/internal/domain"
)

type StoreService interface {
	ListStores(ctx context.Context) ([]*domain.Store, error)
	GetStore(ctx context.Context, storeID int) (*domain.Store, error)
	GetStoreHours(ctx context.Context, storeID int) ([]*domain.StoreHours, error)
}

type Service struct {
	storeRepo repository.StoreRepository
	hoursRepo repository.StoreHoursRepository
}

func NewService(storeRepo repository.StoreRepository, hoursRepo repository.StoreHoursRepository) StoreService {
	return &Service{
		storeRepo: storeRepo,
		hoursRepo: hoursRepo,
	}
}

func (s *Service) ListStores(ctx context.Context) ([]*domain.Store, error) {
	return s.storeRepo.ListStores(ctx)
}

// GetStore retorna nil sem erro quando a loja não existe; o handler traduz
// para 404.
func (s *Service) GetStore(ctx context.Context, storeID int) (*domain.Store, error) {
	return s.storeRepo.GetStoreByID(ctx, storeID)
}

func (s *Service) GetStoreHours(ctx context.Context, storeID int) ([]*domain.StoreHours, error) {
	return s.hoursRepo.GetByStoreID(ctx, storeID)
}
