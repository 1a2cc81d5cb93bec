package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id, ownerID string) (*entity.Category, error)
	GetByOwnerAndName(ownerID, name string) (*entity.Category, error)
	ListByOwner(ownerID string) ([]*entity.Category, error)
	Delete(id, ownerID string) error
}

// SubcategoryRepository define el puerto de persistencia para Subcategory (DIP).
type SubcategoryRepository interface {
	Create(subcategory *entity.Subcategory) error
	GetByID(id, ownerID string) (*entity.Subcategory, error)
	ListByOwner(ownerID string) ([]*entity.Subcategory, error)
	ListByCategory(categoryID, ownerID string) ([]*entity.Subcategory, error)
	Delete(id, ownerID string) error
}
