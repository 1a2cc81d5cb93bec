package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StockEntryRepository = (*StockEntryRepo)(nil)

// StockEntryRepo implementación sobre PostgreSQL del libro de entradas
// (append-only: solo inserta y lee; jamás UPDATE ni DELETE).
type StockEntryRepo struct {
	q Querier
}

// NewStockEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockEntryRepository(q Querier) *StockEntryRepo {
	return &StockEntryRepo{q: q}
}

// Create persiste una entrada de stock.
func (r *StockEntryRepo) Create(entry *entity.StockEntry) error {
	query := `
		INSERT INTO stock_entries (id, user_id, item_id, quantity_added, note, added_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.OwnerID, entry.ItemID, entry.QuantityAdded, entry.Note, entry.AddedAt)
	if err != nil {
		return fmt.Errorf("insert stock entry: %w", err)
	}
	return nil
}

// ListByItem lista las entradas de un artículo, más reciente primero.
func (r *StockEntryRepo) ListByItem(itemID, ownerID string, limit, offset int) ([]*entity.StockEntry, error) {
	query := `
		SELECT id, user_id, item_id, quantity_added, note, added_at
		FROM stock_entries WHERE item_id = $1 AND user_id = $2
		ORDER BY added_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, itemID, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock entries: %w", err)
	}
	defer rows.Close()
	return scanStockEntries(rows)
}

// ListRecent últimas entradas del usuario, huérfanas incluidas.
func (r *StockEntryRepo) ListRecent(ownerID string, limit int) ([]*entity.StockEntry, error) {
	query := `
		SELECT id, user_id, item_id, quantity_added, note, added_at
		FROM stock_entries WHERE user_id = $1
		ORDER BY added_at DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent stock entries: %w", err)
	}
	defer rows.Close()
	return scanStockEntries(rows)
}

func scanStockEntries(rows pgx.Rows) ([]*entity.StockEntry, error) {
	var list []*entity.StockEntry
	for rows.Next() {
		var e entity.StockEntry
		var itemID *string
		if err := rows.Scan(&e.ID, &e.OwnerID, &itemID, &e.QuantityAdded, &e.Note, &e.AddedAt); err != nil {
			return nil, fmt.Errorf("scan stock entry: %w", err)
		}
		if itemID != nil {
			e.ItemID = *itemID
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
