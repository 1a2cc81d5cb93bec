package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, user_id, name, category, subcategory_id, quantity, price, weight, description, created_at`

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL
// (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un nuevo artículo.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO inventory_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OwnerID, item.Name, item.Category, item.SubcategoryID,
		item.Quantity, item.Price, item.Weight, item.Description, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID acotado al dueño.
func (r *ItemRepo) GetByID(id, ownerID string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1 AND user_id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id, ownerID), "get item")
}

// GetForUpdate obtiene el artículo y bloquea la fila (SELECT FOR UPDATE)
// para evitar condiciones de carrera en las mutaciones de cantidad. Usar
// solo dentro de una transacción.
func (r *ItemRepo) GetForUpdate(id, ownerID string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1 AND user_id = $2 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id, ownerID), "get item for update")
}

// Update sobrescribe los campos editables del artículo, incluida la
// cantidad (edición directa sin movimiento).
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE inventory_items
		SET name = $2, category = $3, subcategory_id = $4, quantity = $5, price = $6, weight = $7, description = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Category, item.SubcategoryID,
		item.Quantity, item.Price, item.Weight, item.Description,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// UpdateQuantity actualiza solo la cantidad (usado por el libro de stock,
// con la fila ya bloqueada).
func (r *ItemRepo) UpdateQuantity(id string, quantity int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE inventory_items SET quantity = $2 WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update item quantity: %w", err)
	}
	return nil
}

// ListByOwner lista artículos del usuario con paginación y búsqueda
// opcional (ILIKE sobre nombre y categoría).
func (r *ItemRepo) ListByOwner(ownerID, search string, limit, offset int) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE user_id = $1`
	args := []any{ownerID}
	pos := 2
	if search != "" {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR category ILIKE $%d)", pos, pos)
		args = append(args, "%"+search+"%")
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// AllByOwner devuelve todos los artículos del usuario ordenados por nombre
// (reporte de inventario).
func (r *ItemRepo) AllByOwner(ownerID string) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE user_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("all items: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// Delete elimina el artículo. Las filas de stock_entries y sales que lo
// referencian quedan con item_id NULL (FK SET NULL), nunca se borran.
func (r *ItemRepo) Delete(id, ownerID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM inventory_items WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func (r *ItemRepo) scanOne(row pgx.Row, op string) (*entity.Item, error) {
	var i entity.Item
	err := row.Scan(&i.ID, &i.OwnerID, &i.Name, &i.Category, &i.SubcategoryID,
		&i.Quantity, &i.Price, &i.Weight, &i.Description, &i.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &i, nil
}

func (r *ItemRepo) scanMany(rows pgx.Rows) ([]*entity.Item, error) {
	var list []*entity.Item
	for rows.Next() {
		var i entity.Item
		if err := rows.Scan(&i.ID, &i.OwnerID, &i.Name, &i.Category, &i.SubcategoryID,
			&i.Quantity, &i.Price, &i.Weight, &i.Description, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}
