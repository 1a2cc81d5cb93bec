package usecase

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// InventoryPDFGenerator puerto para la representación PDF del inventario.
type InventoryPDFGenerator interface {
	GenerateInventoryPDF(ctx context.Context, ownerName string, items []*entity.Item) ([]byte, error)
}

// ReportUseCase genera el reporte de inventario descargable.
type ReportUseCase struct {
	itemRepo     repository.ItemRepository
	userRepo     repository.UserRepository
	pdfGenerator InventoryPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	pdfGenerator InventoryPDFGenerator,
) *ReportUseCase {
	return &ReportUseCase{itemRepo: itemRepo, userRepo: userRepo, pdfGenerator: pdfGenerator}
}

// InventoryPDF devuelve los bytes del PDF con el inventario completo del
// usuario (cantidades, precios y valor de stock).
func (uc *ReportUseCase) InventoryPDF(ctx context.Context, ownerID string) ([]byte, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(ownerID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	items, err := uc.itemRepo.AllByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	return uc.pdfGenerator.GenerateInventoryPDF(ctx, user.Name, items)
}
