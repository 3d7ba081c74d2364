package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/espada/marketplace-api/infrastructure/database/postgres"
	"github.com/espada/marketplace-api/internal/domain"
)

const (
	ratingTable    = "rating"
	aggregateTable = "store_rating_aggregate"
)

// RatingRepository persiste as avaliações e o agregado por loja. A escrita
// da avaliação e a regravação do agregado sempre acontecem dentro da mesma
// transação, por isso os métodos de escrita recebem um postgres.Queryer.
type RatingRepository interface {
	LockStore(ctx context.Context, q postgres.Queryer, storeID int) error
	FindByKeys(ctx context.Context, q postgres.Queryer, userID, storeID int, productID *int) (*domain.Rating, error)
	Insert(ctx context.Context, q postgres.Queryer, rating *domain.Rating) (*domain.Rating, error)
	UpdateRating(ctx context.Context, q postgres.Queryer, id, rating int, submittedAt time.Time) error
	ComputeAggregate(ctx context.Context, q postgres.Queryer, storeID int) (*domain.StoreRatingAggregate, error)
	SaveAggregate(ctx context.Context, q postgres.Queryer, agg *domain.StoreRatingAggregate) error
	GetAggregate(ctx context.Context, storeID int) (*domain.StoreRatingAggregate, error)
	GetLatestUserRating(ctx context.Context, storeID, userID int) (*domain.Rating, error)
	ListStoreIDs(ctx context.Context) ([]int, error)
}

type ratingRepository struct {
	conn *postgres.Connection
}

func NewRatingRepository(conn *postgres.Connection) RatingRepository {
	return &ratingRepository{
		conn: conn,
	}
}

// LockStore toma o advisory lock transacional da loja. Serializa as escritas
// de avaliação da loja inteira: impede que dois escritores da mesma chave
// insiram em duplicidade e garante que o rollup de cada escritor enxergue a
// escrita commitada do anterior antes de recomputar o agregado. O lock é
// liberado no commit/rollback da transação.
func (r *ratingRepository) LockStore(ctx context.Context, q postgres.Queryer, storeID int) error {
	key := fmt.Sprintf("rating/%d", storeID)

	if _, err := q.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", key); err != nil {
		return fmt.Errorf("erro ao obter lock da loja: %w", err)
	}

	return nil
}

// FindByKeys busca a avaliação viva da chave (usuário, loja, produto).
// productID nulo casa com linhas sem produto. Ausência não é erro.
func (r *ratingRepository) FindByKeys(ctx context.Context, q postgres.Queryer, userID, storeID int, productID *int) (*domain.Rating, error) {
	builder := squirrel.
		Select("id", "user_id", "store_id", "product_id", "rating", "submitted_at").
		From(ratingTable).
		Where(squirrel.Eq{"user_id": userID, "store_id": storeID})

	if productID != nil {
		builder = builder.Where(squirrel.Eq{"product_id": *productID})
	} else {
		builder = builder.Where("product_id IS NULL")
	}

	query, args, err := builder.
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var rating domain.Rating
	err = q.QueryRowContext(ctx, query, args...).Scan(
		&rating.ID,
		&rating.UserID,
		&rating.StoreID,
		&rating.ProductID,
		&rating.Rating,
		&rating.SubmittedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar avaliação: %w", err)
	}

	return &rating, nil
}

func (r *ratingRepository) Insert(ctx context.Context, q postgres.Queryer, rating *domain.Rating) (*domain.Rating, error) {
	query, args, err := squirrel.
		Insert(ratingTable).
		Columns("user_id", "store_id", "product_id", "rating", "submitted_at").
		Values(rating.UserID, rating.StoreID, rating.ProductID, rating.Rating, rating.SubmittedAt).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := q.QueryRowContext(ctx, query, args...).Scan(&rating.ID); err != nil {
		return nil, fmt.Errorf("erro ao inserir avaliação: %w", err)
	}

	return rating, nil
}

func (r *ratingRepository) UpdateRating(ctx context.Context, q postgres.Queryer, id, rating int, submittedAt time.Time) error {
	query, args, err := squirrel.
		Update(ratingTable).
		Set("rating", rating).
		Set("submitted_at", submittedAt).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar avaliação: %w", err)
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

// ComputeAggregate rederiva contagem e média do conjunto vivo de avaliações
// da loja. Loja sem avaliações produz {0, 0} em vez de erro.
func (r *ratingRepository) ComputeAggregate(ctx context.Context, q postgres.Queryer, storeID int) (*domain.StoreRatingAggregate, error) {
	query, args, err := squirrel.
		Select("COUNT(*)", "COALESCE(AVG(rating), 0)").
		From(ratingTable).
		Where(squirrel.Eq{"store_id": storeID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	agg := &domain.StoreRatingAggregate{StoreID: storeID}
	err = q.QueryRowContext(ctx, query, args...).Scan(&agg.RatingCount, &agg.AverageRating)
	if err != nil {
		return nil, fmt.Errorf("erro ao calcular agregado da loja: %w", err)
	}

	return agg, nil
}

// SaveAggregate grava o agregado recalculado, substituindo integralmente o
// valor anterior.
func (r *ratingRepository) SaveAggregate(ctx context.Context, q postgres.Queryer, agg *domain.StoreRatingAggregate) error {
	query, args, err := squirrel.
		Insert(aggregateTable).
		Columns("store_id", "rating_count", "average_rating").
		Values(agg.StoreID, agg.RatingCount, agg.AverageRating).
		Suffix(`
			ON CONFLICT (store_id) DO UPDATE SET
				rating_count = EXCLUDED.rating_count,
				average_rating = EXCLUDED.average_rating
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao gravar agregado da loja: %w", err)
	}

	return nil
}

func (r *ratingRepository) GetAggregate(ctx context.Context, storeID int) (*domain.StoreRatingAggregate, error) {
	query, args, err := squirrel.
		Select("store_id", "rating_count", "average_rating").
		From(aggregateTable).
		Where(squirrel.Eq{"store_id": storeID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var agg domain.StoreRatingAggregate
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&agg.StoreID,
		&agg.RatingCount,
		&agg.AverageRating,
	)
	if err == sql.ErrNoRows {
		// Loja ainda sem avaliações
		return &domain.StoreRatingAggregate{StoreID: storeID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar agregado da loja: %w", err)
	}

	return &agg, nil
}

// GetLatestUserRating retorna a avaliação mais recente do usuário para a
// loja, ou nil se não houver.
func (r *ratingRepository) GetLatestUserRating(ctx context.Context, storeID, userID int) (*domain.Rating, error) {
	query, args, err := squirrel.
		Select("id", "user_id", "store_id", "product_id", "rating", "submitted_at").
		From(ratingTable).
		Where(squirrel.Eq{"store_id": storeID, "user_id": userID}).
		OrderBy("submitted_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var rating domain.Rating
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&rating.ID,
		&rating.UserID,
		&rating.StoreID,
		&rating.ProductID,
		&rating.Rating,
		&rating.SubmittedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar avaliação do usuário: %w", err)
	}

	return &rating, nil
}

// ListStoreIDs retorna as lojas que possuem avaliações, para a
// ressincronização periódica dos agregados.
func (r *ratingRepository) ListStoreIDs(ctx context.Context) ([]int, error) {
	query, _, err := squirrel.
		Select("DISTINCT store_id").
		From(ratingTable).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar lojas com avaliações: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("erro ao escanear store_id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return ids, nil
}
