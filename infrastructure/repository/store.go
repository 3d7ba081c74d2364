package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/espada/marketplace-api/infrastructure/database/postgres"
	"github.com/espada/marketplace-api/internal/domain"
)

const storeTable = "store"

type StoreRepository interface {
	ListStores(ctx context.Context) ([]*domain.Store, error)
	GetStoreByID(ctx context.Context, storeID int) (*domain.Store, error)
}

type storeRepository struct {
	conn *postgres.Connection
}

func NewStoreRepository(conn *postgres.Connection) StoreRepository {
	return &storeRepository{
		conn: conn,
	}
}

// storeColumns junta a loja com o agregado de avaliações; lojas sem
// avaliações aparecem com nota 0 e contagem 0.
var storeColumns = []string{
	"s.id",
	"s.store_name",
	"s.address",
	"s.lat",
	"s.lng",
	"s.phone",
	"s.email",
	"s.website",
	"COALESCE(sra.average_rating, 0)",
	"COALESCE(sra.rating_count, 0)",
}

func (r *storeRepository) ListStores(ctx context.Context) ([]*domain.Store, error) {
	query, _, err := squirrel.
		Select(storeColumns...).
		From(storeTable + " s").
		LeftJoin("store_rating_aggregate sra ON sra.store_id = s.id").
		OrderBy("s.store_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar lojas: %w", err)
	}
	defer rows.Close()

	stores := make([]*domain.Store, 0)
	for rows.Next() {
		store, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear loja: %w", err)
		}
		stores = append(stores, store)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return stores, nil
}

func (r *storeRepository) GetStoreByID(ctx context.Context, storeID int) (*domain.Store, error) {
	query, args, err := squirrel.
		Select(storeColumns...).
		From(storeTable + " s").
		LeftJoin("store_rating_aggregate sra ON sra.store_id = s.id").
		Where(squirrel.Eq{"s.id": storeID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var store domain.Store
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&store.ID,
		&store.Name,
		&store.Address,
		&store.Lat,
		&store.Lng,
		&store.Phone,
		&store.Email,
		&store.Website,
		&store.Rating,
		&store.RatingCount,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar loja: %w", err)
	}

	return &store, nil
}

func scanStore(rows *sql.Rows) (*domain.Store, error) {
	store := &domain.Store{}

	err := rows.Scan(
		&store.ID,
		&store.Name,
		&store.Address,
		&store.Lat,
		&store.Lng,
		&store.Phone,
		&store.Email,
		&store.Website,
		&store.Rating,
		&store.RatingCount,
	)
	if err != nil {
		return nil, err
	}

	return store, nil
}
