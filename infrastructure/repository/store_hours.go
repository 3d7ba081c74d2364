package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/espada/marketplace-api/infrastructure/database/postgres"
	"github.com/espada/marketplace-api/internal/domain"
)

const storeHoursTable = "store_hours"

type StoreHoursRepository interface {
	GetByStoreID(ctx context.Context, storeID int) ([]*domain.StoreHours, error)
}

type storeHoursRepository struct {
	conn *postgres.Connection
}

func NewStoreHoursRepository(conn *postgres.Connection) StoreHoursRepository {
	return &storeHoursRepository{
		conn: conn,
	}
}

// GetByStoreID retorna os horários formatados (hh:mm AM/PM ou CLOSED),
// ordenados de segunda a domingo.
func (r *storeHoursRepository) GetByStoreID(ctx context.Context, storeID int) ([]*domain.StoreHours, error) {
	query, args, err := squirrel.
		Select(
			"id",
			"store_id",
			"day",
			"CASE WHEN open_time IS NULL THEN 'CLOSED' ELSE TO_CHAR(open_time, 'HH12:MI AM') END",
			"CASE WHEN close_time IS NULL THEN 'CLOSED' ELSE TO_CHAR(close_time, 'HH12:MI AM') END",
		).
		From(storeHoursTable).
		Where(squirrel.Eq{"store_id": storeID}).
		OrderBy("array_position(ARRAY['Monday','Tuesday','Wednesday','Thursday','Friday','Saturday','Sunday'], day)").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar horários da loja: %w", err)
	}
	defer rows.Close()

	hours := make([]*domain.StoreHours, 0, 7)
	for rows.Next() {
		var h domain.StoreHours
		if err := rows.Scan(&h.ID, &h.StoreID, &h.Day, &h.OpenTime, &h.CloseTime); err != nil {
			return nil, fmt.Errorf("erro ao escanear horário: %w", err)
		}
		hours = append(hours, &h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return hours, nil
}
