package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.SubcategoryRepository = (*SubcategoryRepo)(nil)

// SubcategoryRepo implementación de SubcategoryRepository sobre PostgreSQL.
type SubcategoryRepo struct {
	q Querier
}

// NewSubcategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSubcategoryRepository(q Querier) *SubcategoryRepo {
	return &SubcategoryRepo{q: q}
}

// Create persiste una subcategoría.
func (r *SubcategoryRepo) Create(sub *entity.Subcategory) error {
	query := `INSERT INTO subcategories (id, user_id, category_id, name, created_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		sub.ID, sub.OwnerID, sub.CategoryID, sub.Name, sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert subcategory: %w", err)
	}
	return nil
}

// GetByID obtiene una subcategoría por ID acotada al dueño.
func (r *SubcategoryRepo) GetByID(id, ownerID string) (*entity.Subcategory, error) {
	query := `SELECT id, user_id, category_id, name, created_at FROM subcategories WHERE id = $1 AND user_id = $2`
	var s entity.Subcategory
	err := r.q.QueryRow(context.Background(), query, id, ownerID).Scan(
		&s.ID, &s.OwnerID, &s.CategoryID, &s.Name, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subcategory: %w", err)
	}
	return &s, nil
}

// ListByOwner lista todas las subcategorías del usuario.
func (r *SubcategoryRepo) ListByOwner(ownerID string) ([]*entity.Subcategory, error) {
	query := `SELECT id, user_id, category_id, name, created_at FROM subcategories WHERE user_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	defer rows.Close()
	return scanSubcategories(rows)
}

// ListByCategory lista las subcategorías de una categoría del usuario.
func (r *SubcategoryRepo) ListByCategory(categoryID, ownerID string) ([]*entity.Subcategory, error) {
	query := `SELECT id, user_id, category_id, name, created_at FROM subcategories WHERE category_id = $1 AND user_id = $2 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, categoryID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list subcategories by category: %w", err)
	}
	defer rows.Close()
	return scanSubcategories(rows)
}

// Delete elimina una subcategoría (los artículos quedan con subcategory_id
// NULL por FK).
func (r *SubcategoryRepo) Delete(id, ownerID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM subcategories WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete subcategory: %w", err)
	}
	return nil
}

func scanSubcategories(rows pgx.Rows) ([]*entity.Subcategory, error) {
	var list []*entity.Subcategory
	for rows.Next() {
		var s entity.Subcategory
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.CategoryID, &s.Name, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan subcategory: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
