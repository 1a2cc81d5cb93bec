package entity

import "time"

// User representa una cuenta de la aplicación. Cada usuario es dueño de su
// propio inventario (multi-tenant por user_id).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
