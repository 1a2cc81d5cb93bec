package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// CategoryUseCase CRUD de categorías y subcategorías por usuario.
type CategoryUseCase struct {
	categoryRepo    repository.CategoryRepository
	subcategoryRepo repository.SubcategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(
	categoryRepo repository.CategoryRepository,
	subcategoryRepo repository.SubcategoryRepository,
) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo, subcategoryRepo: subcategoryRepo}
}

// CreateCategory crea una categoría. El nombre es único por usuario.
func (uc *CategoryUseCase) CreateCategory(ownerID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.categoryRepo.GetByOwnerAndName(ownerID, in.Name)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	cat := &entity.Category{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      in.Name,
		CreatedAt: time.Now(),
	}
	if err := uc.categoryRepo.Create(cat); err != nil {
		return nil, err
	}
	return toCategoryResponse(cat), nil
}

// ListCategories lista las categorías del usuario.
func (uc *CategoryUseCase) ListCategories(ownerID string) ([]dto.CategoryResponse, error) {
	list, err := uc.categoryRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

// DeleteCategory elimina la categoría y, en cascada, sus subcategorías.
// Los artículos conservan su etiqueta de texto y quedan sin subcategoría.
func (uc *CategoryUseCase) DeleteCategory(id, ownerID string) error {
	cat, err := uc.categoryRepo.GetByID(id, ownerID)
	if err != nil {
		return err
	}
	if cat == nil {
		return domain.ErrNotFound
	}
	return uc.categoryRepo.Delete(id, ownerID)
}

// CreateSubcategory crea una subcategoría; la categoría padre debe existir
// y pertenecer al mismo usuario.
func (uc *CategoryUseCase) CreateSubcategory(ownerID string, in dto.CreateSubcategoryRequest) (*dto.SubcategoryResponse, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.Name == "" || in.CategoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	parent, err := uc.categoryRepo.GetByID(in.CategoryID, ownerID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, domain.ErrNotFound
	}
	sub := &entity.Subcategory{
		ID:         uuid.New().String(),
		OwnerID:    ownerID,
		CategoryID: in.CategoryID,
		Name:       in.Name,
		CreatedAt:  time.Now(),
	}
	if err := uc.subcategoryRepo.Create(sub); err != nil {
		return nil, err
	}
	return toSubcategoryResponse(sub), nil
}

// ListSubcategories lista subcategorías del usuario, opcionalmente filtradas
// por categoría padre.
func (uc *CategoryUseCase) ListSubcategories(ownerID, categoryID string) ([]dto.SubcategoryResponse, error) {
	var list []*entity.Subcategory
	var err error
	if categoryID != "" {
		list, err = uc.subcategoryRepo.ListByCategory(categoryID, ownerID)
	} else {
		list, err = uc.subcategoryRepo.ListByOwner(ownerID)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.SubcategoryResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSubcategoryResponse(s))
	}
	return out, nil
}

// DeleteSubcategory elimina una subcategoría del usuario.
func (uc *CategoryUseCase) DeleteSubcategory(id, ownerID string) error {
	sub, err := uc.subcategoryRepo.GetByID(id, ownerID)
	if err != nil {
		return err
	}
	if sub == nil {
		return domain.ErrNotFound
	}
	return uc.subcategoryRepo.Delete(id, ownerID)
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
}

func toSubcategoryResponse(s *entity.Subcategory) *dto.SubcategoryResponse {
	if s == nil {
		return nil
	}
	return &dto.SubcategoryResponse{ID: s.ID, CategoryID: s.CategoryID, Name: s.Name, CreatedAt: s.CreatedAt}
}
