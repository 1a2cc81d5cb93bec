package entity

import "time"

// Category representa una categoría de artículos (nombre único por usuario).
type Category struct {
	ID        string
	OwnerID   string
	Name      string
	CreatedAt time.Time
}

// Subcategory pertenece a una Category del mismo usuario.
type Subcategory struct {
	ID         string
	OwnerID    string
	CategoryID string
	Name       string
	CreatedAt  time.Time
}
