// Package cataloging implementa o CRUD do catálogo de correntes.
package cataloging

import (
	"context"
	"errors"

	"github.com/espada/marketplace-api/infrastructure/repository"
	"github.com/espada/marketplace-api/internal/domain"
)

// Erros de validação do catálogo
var (
	ErrInvalidSetPrice = errors.New("preço de varejo deve ser maior que zero")
	ErrMissingStore    = errors.New("produto deve pertencer a uma loja")
)

type CatalogService interface {
	ListProducts(ctx context.Context, storeID *int) ([]*domain.Product, error)
	GetProduct(ctx context.Context, productID int) (*domain.Product, error)
	AddProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateSetPrice(ctx context.Context, productID int, setPrice float64) error
	DeleteProduct(ctx context.Context, productID int) error
}

type Service struct {
	productRepo repository.ProductRepository
}

func NewService(productRepo repository.ProductRepository) CatalogService {
	return &Service{
		productRepo: productRepo,
	}
}

func (s *Service) ListProducts(ctx context.Context, storeID *int) ([]*domain.Product, error) {
	if storeID != nil {
		return s.productRepo.ListByStore(ctx, *storeID)
	}
	return s.productRepo.ListProducts(ctx)
}

func (s *Service) GetProduct(ctx context.Context, productID int) (*domain.Product, error) {
	return s.productRepo.GetProductByID(ctx, productID)
}

func (s *Service) AddProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product.StoreID <= 0 {
		return nil, ErrMissingStore
	}

	if product.SetPrice <= 0 {
		return nil, ErrInvalidSetPrice
	}

	return s.productRepo.CreateProduct(ctx, product)
}

func (s *Service) UpdateSetPrice(ctx context.Context, productID int, setPrice float64) error {
	if setPrice <= 0 {
		return ErrInvalidSetPrice
	}

	return s.productRepo.UpdateSetPrice(ctx, productID, setPrice)
}

// DeleteProduct remove o produto e, em cascata, seu histórico de preços.
func (s *Service) DeleteProduct(ctx context.Context, productID int) error {
	return s.productRepo.DeleteProduct(ctx, productID)
}
