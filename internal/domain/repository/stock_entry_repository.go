package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// StockEntryRepository define el puerto de persistencia para el libro de
// entradas de stock (append-only: solo Create y lecturas).
type StockEntryRepository interface {
	Create(entry *entity.StockEntry) error
	ListByItem(itemID, ownerID string, limit, offset int) ([]*entity.StockEntry, error)
	ListRecent(ownerID string, limit int) ([]*entity.StockEntry, error)
}

// SaleRepository define el puerto de persistencia para el libro de ventas
// (append-only: solo Create y lecturas).
type SaleRepository interface {
	Create(sale *entity.Sale) error
	ListByItem(itemID, ownerID string, limit, offset int) ([]*entity.Sale, error)
	ListRecent(ownerID string, limit int) ([]*entity.Sale, error)
}
