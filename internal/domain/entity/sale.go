package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale es un registro append-only de venta. Congela nombre y precio unitario
// del artículo al momento de la venta; TotalPrice = UnitPrice × Quantity.
type Sale struct {
	ID         string
	OwnerID    string
	ItemID     string // vacío si el artículo fue eliminado
	ItemName   string // snapshot del nombre
	Quantity   int64  // siempre > 0
	UnitPrice  decimal.Decimal // snapshot del precio
	TotalPrice decimal.Decimal
	Note       string
	SoldAt     time.Time
}
