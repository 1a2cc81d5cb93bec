package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecentEntryDTO entrada de stock con el nombre del artículo para el panel
// de actividad reciente.
type RecentEntryDTO struct {
	ID            string    `json:"id"`
	ItemID        string    `json:"item_id,omitempty"`
	ItemName      string    `json:"item_name"`
	QuantityAdded int64     `json:"quantity_added"`
	Note          string    `json:"note,omitempty"`
	AddedAt       time.Time `json:"added_at"`
}

// DashboardSummaryDTO resumen para la pantalla principal: ingresos y
// unidades vendidas históricos más actividad reciente de ambos libros.
type DashboardSummaryDTO struct {
	TotalRevenue   decimal.Decimal  `json:"total_revenue"`
	TotalItemsSold int64            `json:"total_items_sold"`
	RecentSales    []SaleResponse   `json:"recent_sales"`
	RecentEntries  []RecentEntryDTO `json:"recent_entries"`
}
