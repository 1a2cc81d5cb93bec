package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de solo lectura para el dashboard.
// Opera siempre sobre el pool, fuera de toda transacción.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// GetSalesTotals ingreso total y unidades vendidas históricas del usuario.
func (r *ReportRepo) GetSalesTotals(ctx context.Context, ownerID string) (*repository.SalesTotals, error) {
	query := `
		SELECT COALESCE(SUM(total_price), 0), COALESCE(SUM(quantity), 0)
		FROM sales WHERE user_id = $1`
	var totals repository.SalesTotals
	err := r.q.QueryRow(ctx, query, ownerID).Scan(&totals.TotalRevenue, &totals.UnitsSold)
	if err != nil {
		return nil, fmt.Errorf("sales totals: %w", err)
	}
	return &totals, nil
}

// RecentEntriesWithItem últimas entradas de stock con el nombre del artículo.
// LEFT JOIN: las entradas de artículos eliminados salen con nombre vacío.
func (r *ReportRepo) RecentEntriesWithItem(ctx context.Context, ownerID string, limit int) ([]repository.RecentEntryRow, error) {
	query := `
		SELECT e.id, COALESCE(e.item_id::text, ''), COALESCE(i.name, ''), e.quantity_added, e.note, e.added_at
		FROM stock_entries e
		LEFT JOIN inventory_items i ON i.id = e.item_id
		WHERE e.user_id = $1
		ORDER BY e.added_at DESC LIMIT $2`
	rows, err := r.q.Query(ctx, query, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent entries: %w", err)
	}
	defer rows.Close()
	var list []repository.RecentEntryRow
	for rows.Next() {
		var row repository.RecentEntryRow
		if err := rows.Scan(&row.ID, &row.ItemID, &row.ItemName,
			&row.QuantityAdded, &row.Note, &row.AddedAt); err != nil {
			return nil, fmt.Errorf("scan recent entry: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
