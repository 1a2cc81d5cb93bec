package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación sobre PostgreSQL del libro de ventas
// (append-only: solo inserta y lee; jamás UPDATE ni DELETE).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una venta con nombre y precio congelados.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, user_id, item_id, item_name, quantity, unit_price, total_price, note, sold_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.OwnerID, sale.ItemID, sale.ItemName, sale.Quantity,
		sale.UnitPrice, sale.TotalPrice, sale.Note, sale.SoldAt)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// ListByItem lista las ventas de un artículo, más reciente primero.
func (r *SaleRepo) ListByItem(itemID, ownerID string, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT id, user_id, item_id, item_name, quantity, unit_price, total_price, note, sold_at
		FROM sales WHERE item_id = $1 AND user_id = $2
		ORDER BY sold_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, itemID, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	return scanSales(rows)
}

// ListRecent últimas ventas del usuario, huérfanas incluidas.
func (r *SaleRepo) ListRecent(ownerID string, limit int) ([]*entity.Sale, error) {
	query := `
		SELECT id, user_id, item_id, item_name, quantity, unit_price, total_price, note, sold_at
		FROM sales WHERE user_id = $1
		ORDER BY sold_at DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent sales: %w", err)
	}
	defer rows.Close()
	return scanSales(rows)
}

func scanSales(rows pgx.Rows) ([]*entity.Sale, error) {
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		var itemID *string
		if err := rows.Scan(&s.ID, &s.OwnerID, &itemID, &s.ItemName, &s.Quantity,
			&s.UnitPrice, &s.TotalPrice, &s.Note, &s.SoldAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if itemID != nil {
			s.ItemID = *itemID
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
