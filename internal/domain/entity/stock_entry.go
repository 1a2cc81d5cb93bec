package entity

import "time"

// StockEntry es un registro append-only del libro de stock: entrada inicial
// o reposición. Nunca se modifica ni se borra; si el artículo se elimina,
// ItemID queda vacío (FK SET NULL) pero el registro sobrevive.
type StockEntry struct {
	ID            string
	OwnerID       string
	ItemID        string // vacío si el artículo fue eliminado
	QuantityAdded int64  // siempre > 0
	Note          string
	AddedAt       time.Time
}
