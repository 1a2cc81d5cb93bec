package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RestockRequest body para POST /api/items/:id/restock.
type RestockRequest struct {
	Quantity int64  `json:"quantity" validate:"required,gt=0"`
	Note     string `json:"note"`
}

// SellRequest body para POST /api/items/:id/sell.
type SellRequest struct {
	Quantity int64  `json:"quantity" validate:"required,gt=0"`
	Note     string `json:"note"`
}

// StockEntryResponse una entrada del libro de stock.
type StockEntryResponse struct {
	ID            string    `json:"id"`
	ItemID        string    `json:"item_id,omitempty"`
	QuantityAdded int64     `json:"quantity_added"`
	Note          string    `json:"note,omitempty"`
	AddedAt       time.Time `json:"added_at"`
}

// SaleResponse una venta registrada.
type SaleResponse struct {
	ID         string          `json:"id"`
	ItemID     string          `json:"item_id,omitempty"`
	ItemName   string          `json:"item_name"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Note       string          `json:"note,omitempty"`
	SoldAt     time.Time       `json:"sold_at"`
}

// SplitResponse resultado de dividir un artículo: el origen decrementado
// y el nuevo artículo de cantidad 1.
type SplitResponse struct {
	Source ItemResponse `json:"source"`
	New    ItemResponse `json:"new"`
}
