package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesTotals agregados históricos de ventas de un usuario.
type SalesTotals struct {
	TotalRevenue decimal.Decimal
	UnitsSold    int64
}

// RecentEntryRow entrada de stock con el nombre del artículo (JOIN), para
// el panel de actividad reciente. ItemName queda vacío si el artículo fue
// eliminado (registro huérfano).
type RecentEntryRow struct {
	ID            string
	ItemID        string
	ItemName      string
	QuantityAdded int64
	Note          string
	AddedAt       time.Time
}

// ReportRepository consultas de solo lectura para el dashboard.
type ReportRepository interface {
	GetSalesTotals(ctx context.Context, ownerID string) (*SalesTotals, error)
	RecentEntriesWithItem(ctx context.Context, ownerID string, limit int) ([]RecentEntryRow, error)
}
