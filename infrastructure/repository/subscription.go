package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/espada/marketplace-api/infrastructure/database/postgres"
	"github.com/espada/marketplace-api/internal/domain"
)

const (
	storeOwnersTable   = "store_owners"
	subscriptionsTable = "subscriptions"
)

// SubscriptionRepository persiste lojistas e suas assinaturas. A criação do
// lojista e da assinatura acontece em uma única transação, por isso os
// métodos de escrita recebem um postgres.Queryer.
type SubscriptionRepository interface {
	CreateOwner(ctx context.Context, q postgres.Queryer, userID int) (int, error)
	InsertSubscription(ctx context.Context, q postgres.Queryer, sub *domain.Subscription) (*domain.Subscription, error)
	GetLatestByOwner(ctx context.Context, ownerID int) (*domain.Subscription, error)
	ListAll(ctx context.Context) ([]domain.Subscription, error)
	TotalJoinFees(ctx context.Context) (float64, error)
}

type subscriptionRepository struct {
	conn *postgres.Connection
}

func NewSubscriptionRepository(conn *postgres.Connection) SubscriptionRepository {
	return &subscriptionRepository{
		conn: conn,
	}
}

func (r *subscriptionRepository) CreateOwner(ctx context.Context, q postgres.Queryer, userID int) (int, error) {
	query, args, err := squirrel.
		Insert(storeOwnersTable).
		Columns("user_id").
		Values(userID).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var ownerID int
	if err := q.QueryRowContext(ctx, query, args...).Scan(&ownerID); err != nil {
		return 0, fmt.Errorf("erro ao criar lojista: %w", err)
	}

	return ownerID, nil
}

func (r *subscriptionRepository) InsertSubscription(ctx context.Context, q postgres.Queryer, sub *domain.Subscription) (*domain.Subscription, error) {
	query, args, err := squirrel.
		Insert(subscriptionsTable).
		Columns("owner_id", "reference_code", "plan", "start_date", "end_date", "join_fee").
		Values(sub.OwnerID, sub.ReferenceCode, sub.Plan, sub.StartDate, sub.EndDate, sub.JoinFee).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := q.QueryRowContext(ctx, query, args...).Scan(&sub.ID); err != nil {
		return nil, fmt.Errorf("erro ao inserir assinatura: %w", err)
	}

	return sub, nil
}

var subscriptionColumns = []string{
	"id",
	"owner_id",
	"reference_code",
	"plan",
	"start_date",
	"end_date",
	"join_fee",
}

func (r *subscriptionRepository) GetLatestByOwner(ctx context.Context, ownerID int) (*domain.Subscription, error) {
	query, args, err := squirrel.
		Select(subscriptionColumns...).
		From(subscriptionsTable).
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("start_date DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var sub domain.Subscription
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&sub.ID,
		&sub.OwnerID,
		&sub.ReferenceCode,
		&sub.Plan,
		&sub.StartDate,
		&sub.EndDate,
		&sub.JoinFee,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar assinatura: %w", err)
	}

	return &sub, nil
}

func (r *subscriptionRepository) ListAll(ctx context.Context) ([]domain.Subscription, error) {
	query, _, err := squirrel.
		Select(subscriptionColumns...).
		From(subscriptionsTable).
		OrderBy("start_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar assinaturas: %w", err)
	}
	defer rows.Close()

	subs := make([]domain.Subscription, 0)
	for rows.Next() {
		var sub domain.Subscription
		if err := rows.Scan(
			&sub.ID,
			&sub.OwnerID,
			&sub.ReferenceCode,
			&sub.Plan,
			&sub.StartDate,
			&sub.EndDate,
			&sub.JoinFee,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear assinatura: %w", err)
		}
		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return subs, nil
}

func (r *subscriptionRepository) TotalJoinFees(ctx context.Context) (float64, error) {
	query, _, err := squirrel.
		Select("COALESCE(SUM(join_fee), 0)").
		From(subscriptionsTable).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var total float64
	if err := r.conn.QueryRowContext(ctx, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("erro ao somar taxas de adesão: %w", err)
	}

	return total, nil
}
