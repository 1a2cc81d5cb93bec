package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// ItemRepository define el puerto de persistencia para Item (DIP).
// Todas las lecturas y escrituras están acotadas por ownerID: un artículo
// de otro usuario se comporta como inexistente.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id, ownerID string) (*entity.Item, error)
	// GetForUpdate obtiene el artículo y bloquea la fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción (TxRunner).
	GetForUpdate(id, ownerID string) (*entity.Item, error)
	Update(item *entity.Item) error
	UpdateQuantity(id string, quantity int64) error
	ListByOwner(ownerID, search string, limit, offset int) ([]*entity.Item, error)
	AllByOwner(ownerID string) ([]*entity.Item, error)
	Delete(id, ownerID string) error
}
