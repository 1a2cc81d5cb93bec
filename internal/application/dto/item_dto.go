package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un artículo. La cantidad inicial
// genera una entrada de stock con ese delta (si es mayor que cero).
type CreateItemRequest struct {
	Name          string           `json:"name" validate:"required,min=1,max=200"`
	Category      string           `json:"category"`
	SubcategoryID *string          `json:"subcategory_id,omitempty"`
	Quantity      int64            `json:"quantity"`
	Price         decimal.Decimal  `json:"price"`
	Weight        *decimal.Decimal `json:"weight,omitempty"`
	Description   string           `json:"description"`
}

// UpdateItemRequest edición directa de un artículo. Quantity sobrescribe el
// stock SIN generar movimiento: es una vía de escape deliberada para
// correcciones manuales, no pasa por el libro.
type UpdateItemRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category      *string          `json:"category"`
	SubcategoryID *string          `json:"subcategory_id"`
	Quantity      *int64           `json:"quantity"`
	Price         *decimal.Decimal `json:"price"`
	Weight        *decimal.Decimal `json:"weight"`
	Description   *string          `json:"description"`
}

// ItemResponse salida de un artículo.
type ItemResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Category      string           `json:"category"`
	SubcategoryID *string          `json:"subcategory_id,omitempty"`
	Quantity      int64            `json:"quantity"`
	Price         decimal.Decimal  `json:"price"`
	Weight        *decimal.Decimal `json:"weight,omitempty"`
	Description   string           `json:"description"`
	CreatedAt     time.Time        `json:"created_at"`
}

// ItemListResponse lista paginada de artículos.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
