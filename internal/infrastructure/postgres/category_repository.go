package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una categoría. Nombre único por usuario.
func (r *CategoryRepo) Create(category *entity.Category) error {
	query := `INSERT INTO categories (id, user_id, name, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.OwnerID, category.Name, category.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID acotada al dueño.
func (r *CategoryRepo) GetByID(id, ownerID string) (*entity.Category, error) {
	query := `SELECT id, user_id, name, created_at FROM categories WHERE id = $1 AND user_id = $2`
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, id, ownerID).Scan(
		&c.ID, &c.OwnerID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// GetByOwnerAndName obtiene una categoría por nombre.
func (r *CategoryRepo) GetByOwnerAndName(ownerID, name string) (*entity.Category, error) {
	query := `SELECT id, user_id, name, created_at FROM categories WHERE user_id = $1 AND name = $2`
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, ownerID, name).Scan(
		&c.ID, &c.OwnerID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category by name: %w", err)
	}
	return &c, nil
}

// ListByOwner lista las categorías del usuario.
func (r *CategoryRepo) ListByOwner(ownerID string) ([]*entity.Category, error) {
	query := `SELECT id, user_id, name, created_at FROM categories WHERE user_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Delete elimina una categoría (cascada a subcategorías por FK).
func (r *CategoryRepo) Delete(id, ownerID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM categories WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
