package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo del inventario de un usuario.
// Quantity nunca es negativa; toda mutación pasa por el ledger salvo la
// edición directa (UpdateItem), que puede sobrescribirla sin movimiento.
type Item struct {
	ID            string
	OwnerID       string
	Name          string
	Category      string // etiqueta libre, no FK
	SubcategoryID *string
	Quantity      int64
	Price         decimal.Decimal  // precio unitario de venta
	Weight        *decimal.Decimal // opcional, en kg
	Description   string
	CreatedAt     time.Time
}
