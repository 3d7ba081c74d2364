package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/espada/marketplace-api/infrastructure/database/postgres"
	"github.com/espada/marketplace-api/internal/domain"
)

const priceHistoryTable = "price_history"

// PriceHistoryRepository persiste e consulta as entradas do histórico de
// preços. Os métodos que recebem um postgres.Queryer participam da
// transação aberta pelo serviço de submissão; os demais leem direto da
// conexão.
type PriceHistoryRepository interface {
	LockProduct(ctx context.Context, q postgres.Queryer, productID int) error
	FindSameDayEntry(ctx context.Context, q postgres.Queryer, userID, productID int, day time.Time) (*domain.PriceEntry, error)
	Insert(ctx context.Context, q postgres.Queryer, entry *domain.PriceEntry) (*domain.PriceEntry, error)
	Update(ctx context.Context, q postgres.Queryer, id int, price float64, observedAt time.Time) error
	ListRecentByProduct(ctx context.Context, q postgres.Queryer, productID, limit int) ([]*domain.PriceEntry, error)
	DeleteExcept(ctx context.Context, q postgres.Queryer, productID int, keepIDs []int) error
	ListRecentPurchases(ctx context.Context, productID, limit int) ([]*domain.PurchaseHistoryItem, error)
	ListProductIDs(ctx context.Context) ([]int, error)
}

type priceHistoryRepository struct {
	conn *postgres.Connection
}

func NewPriceHistoryRepository(conn *postgres.Connection) PriceHistoryRepository {
	return &priceHistoryRepository{
		conn: conn,
	}
}

// LockProduct toma o advisory lock transacional do produto. Serializa as
// escritas concorrentes no histórico do produto: dois escritores não podem
// ambos ver "sem entrada no dia" e ambos inserir, nem rederivar o keep-set
// da retenção sem enxergar a escrita um do outro. O lock é liberado no
// commit/rollback da transação.
func (r *priceHistoryRepository) LockProduct(ctx context.Context, q postgres.Queryer, productID int) error {
	key := fmt.Sprintf("price_history/%d", productID)

	if _, err := q.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", key); err != nil {
		return fmt.Errorf("erro ao obter lock do produto: %w", err)
	}

	return nil
}

// FindSameDayEntry busca a entrada do par (usuário, produto) cujo
// observed_at cai no mesmo dia-calendário de day. Ausência não é erro.
func (r *priceHistoryRepository) FindSameDayEntry(ctx context.Context, q postgres.Queryer, userID, productID int, day time.Time) (*domain.PriceEntry, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	query, args, err := squirrel.
		Select("id", "user_id", "product_id", "store_id", "price", "observed_at").
		From(priceHistoryTable).
		Where(squirrel.Eq{"user_id": userID, "product_id": productID}).
		Where(squirrel.GtOrEq{"observed_at": dayStart}).
		Where(squirrel.Lt{"observed_at": dayEnd}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var entry domain.PriceEntry
	err = q.QueryRowContext(ctx, query, args...).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.ProductID,
		&entry.StoreID,
		&entry.Price,
		&entry.ObservedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar entrada do dia: %w", err)
	}

	return &entry, nil
}

func (r *priceHistoryRepository) Insert(ctx context.Context, q postgres.Queryer, entry *domain.PriceEntry) (*domain.PriceEntry, error) {
	query, args, err := squirrel.
		Insert(priceHistoryTable).
		Columns("user_id", "product_id", "store_id", "price", "observed_at").
		Values(entry.UserID, entry.ProductID, entry.StoreID, entry.Price, entry.ObservedAt).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := q.QueryRowContext(ctx, query, args...).Scan(&entry.ID); err != nil {
		return nil, fmt.Errorf("erro ao inserir entrada de preço: %w", err)
	}

	return entry, nil
}

// Update muta price/observed_at de uma entrada existente. Se a linha já
// foi removida por um escritor concorrente, retorna ErrNotFound.
func (r *priceHistoryRepository) Update(ctx context.Context, q postgres.Queryer, id int, price float64, observedAt time.Time) error {
	query, args, err := squirrel.
		Update(priceHistoryTable).
		Set("price", price).
		Set("observed_at", observedAt).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar entrada de preço: %w", err)
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

// ListRecentByProduct retorna as entradas do produto ordenadas por
// observed_at decrescente. Empates são desfeitos pelo id mais alto, de
// forma determinística, para que o keep-set da retenção seja estável.
func (r *priceHistoryRepository) ListRecentByProduct(ctx context.Context, q postgres.Queryer, productID, limit int) ([]*domain.PriceEntry, error) {
	query, args, err := squirrel.
		Select("id", "user_id", "product_id", "store_id", "price", "observed_at").
		From(priceHistoryTable).
		Where(squirrel.Eq{"product_id": productID}).
		OrderBy("observed_at DESC", "id DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar histórico de preços: %w", err)
	}
	defer rows.Close()

	entries := make([]*domain.PriceEntry, 0, limit)
	for rows.Next() {
		var entry domain.PriceEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.ProductID,
			&entry.StoreID,
			&entry.Price,
			&entry.ObservedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear entrada de preço: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return entries, nil
}

// DeleteExcept remove todas as entradas do produto fora do keep-set.
// Com o produto já dentro do limite, a deleção não afeta nenhuma linha.
func (r *priceHistoryRepository) DeleteExcept(ctx context.Context, q postgres.Queryer, productID int, keepIDs []int) error {
	builder := squirrel.
		Delete(priceHistoryTable).
		Where(squirrel.Eq{"product_id": productID}).
		PlaceholderFormat(squirrel.Dollar)

	if len(keepIDs) > 0 {
		builder = builder.Where(squirrel.NotEq{"id": keepIDs})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao podar histórico de preços: %w", err)
	}

	return nil
}

// ListRecentPurchases retorna o histórico recente do produto já projetado
// para exibição (nome abreviado do usuário, preço e data).
func (r *priceHistoryRepository) ListRecentPurchases(ctx context.Context, productID, limit int) ([]*domain.PurchaseHistoryItem, error) {
	query, args, err := squirrel.
		Select("u.name", "u.lastname", "ph.price", "ph.observed_at").
		From(priceHistoryTable+" ph").
		Join("users u ON u.id = ph.user_id").
		Where(squirrel.Eq{"ph.product_id": productID}).
		OrderBy("ph.observed_at DESC", "ph.id DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar compras recentes: %w", err)
	}
	defer rows.Close()

	items := make([]*domain.PurchaseHistoryItem, 0, limit)
	for rows.Next() {
		var (
			name, lastname string
			item           domain.PurchaseHistoryItem
		)
		if err := rows.Scan(&name, &lastname, &item.Price, &item.PurchasedAt); err != nil {
			return nil, fmt.Errorf("erro ao escanear compra recente: %w", err)
		}
		item.DisplayName = abbreviateName(name, lastname)
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return items, nil
}

// ListProductIDs retorna os produtos que possuem histórico, para a varredura
// noturna de retenção.
func (r *priceHistoryRepository) ListProductIDs(ctx context.Context) ([]int, error) {
	query, _, err := squirrel.
		Select("DISTINCT product_id").
		From(priceHistoryTable).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar produtos com histórico: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("erro ao escanear product_id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return ids, nil
}

// abbreviateName monta o nome de exibição: primeiro nome + inicial do sobrenome.
func abbreviateName(name, lastname string) string {
	first := strings.Fields(name)
	if len(first) == 0 {
		return ""
	}

	if lastname == "" {
		return first[0]
	}

	// A inicial é a primeira runa, não o primeiro byte: sobrenomes
	// acentuados ("Ávila") ocupam mais de um byte em UTF-8.
	initial := []rune(lastname)[0]

	return fmt.Sprintf("%s %s.", first[0], strings.ToUpper(string(initial)))
}
