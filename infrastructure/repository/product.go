package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/espada/marketplace-api/infrastructure/database/postgres"
	"github.com/espada/marketplace-api/internal/domain"
)

const productTable = "product"

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	ListByStore(ctx context.Context, storeID int) ([]*domain.Product, error)
	GetProductByID(ctx context.Context, productID int) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateSetPrice(ctx context.Context, productID int, setPrice float64) error
	DeleteProduct(ctx context.Context, productID int) error
}

type productRepository struct {
	conn *postgres.Connection
}

func NewProductRepository(conn *postgres.Connection) ProductRepository {
	return &productRepository{
		conn: conn,
	}
}

var productColumns = []string{
	"id",
	"store_id",
	"chain_type",
	"chain_purity",
	"chain_thickness",
	"chain_length",
	"chain_color",
	"chain_weight",
	"set_price",
	"created_at",
}

func (r *productRepository) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return r.list(ctx, squirrel.
		Select(productColumns...).
		From(productTable).
		OrderBy("id ASC"))
}

func (r *productRepository) ListByStore(ctx context.Context, storeID int) ([]*domain.Product, error) {
	return r.list(ctx, squirrel.
		Select(productColumns...).
		From(productTable).
		Where(squirrel.Eq{"store_id": storeID}).
		OrderBy("id ASC"))
}

func (r *productRepository) list(ctx context.Context, builder squirrel.SelectBuilder) ([]*domain.Product, error) {
	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar produtos: %w", err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		var p domain.Product
		if err := scanProduct(rows.Scan, &p); err != nil {
			return nil, fmt.Errorf("erro ao escanear produto: %w", err)
		}
		products = append(products, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return products, nil
}

func (r *productRepository) GetProductByID(ctx context.Context, productID int) (*domain.Product, error) {
	query, args, err := squirrel.
		Select(productColumns...).
		From(productTable).
		Where(squirrel.Eq{"id": productID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var p domain.Product
	err = scanProduct(r.conn.QueryRowContext(ctx, query, args...).Scan, &p)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar produto: %w", err)
	}

	return &p, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query, args, err := squirrel.
		Insert(productTable).
		Columns(
			"store_id",
			"chain_type",
			"chain_purity",
			"chain_thickness",
			"chain_length",
			"chain_color",
			"chain_weight",
			"set_price",
		).
		Values(
			product.StoreID,
			product.ChainType,
			product.ChainPurity,
			product.ChainThickness,
			product.ChainLength,
			product.ChainColor,
			product.ChainWeight,
			product.SetPrice,
		).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("erro ao inserir produto: %w", err)
	}

	return product, nil
}

func (r *productRepository) UpdateSetPrice(ctx context.Context, productID int, setPrice float64) error {
	query, args, err := squirrel.
		Update(productTable).
		Set("set_price", setPrice).
		Where(squirrel.Eq{"id": productID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar preço do produto: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteProduct remove o produto; o histórico de preços associado cai em
// cascata pela foreign key.
func (r *productRepository) DeleteProduct(ctx context.Context, productID int) error {
	query, args, err := squirrel.
		Delete(productTable).
		Where(squirrel.Eq{"id": productID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao remover produto: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func scanProduct(scan func(dest ...interface{}) error, p *domain.Product) error {
	return scan(
		&p.ID,
		&p.StoreID,
		&p.ChainType,
		&p.ChainPurity,
		&p.ChainThickness,
		&p.ChainLength,
		&p.ChainColor,
		&p.ChainWeight,
		&p.SetPrice,
		&p.CreatedAt,
	)
}
