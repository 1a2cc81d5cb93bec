package usecase

import (
	"strings"
	"unicode"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ItemUseCase consultas de artículos (listado, detalle, historiales).
// Las mutaciones viven en el paquete ledger; aquí solo hay lecturas.
type ItemUseCase struct {
	itemRepo  repository.ItemRepository
	entryRepo repository.StockEntryRepository
	saleRepo  repository.SaleRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(
	itemRepo repository.ItemRepository,
	entryRepo repository.StockEntryRepository,
	saleRepo repository.SaleRepository,
) *ItemUseCase {
	return &ItemUseCase{itemRepo: itemRepo, entryRepo: entryRepo, saleRepo: saleRepo}
}

// List lista artículos del usuario con paginación y búsqueda opcional por
// nombre o categoría. El término se normaliza sin tildes ("café" == "cafe")
// porque los CSV importados de Excel suelen venir con acentos inconsistentes.
func (uc *ItemUseCase) List(ownerID, search string, limit, offset int) (*dto.ItemListResponse, error) {
	list, err := uc.itemRepo.ListByOwner(ownerID, foldSearch(search), limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, i := range list {
		items = append(items, *toItemResponse(i))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// GetByID obtiene un artículo del usuario por ID.
func (uc *ItemUseCase) GetByID(id, ownerID string) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id, ownerID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return toItemResponse(item), nil
}

// StockEntries historial de entradas de stock de un artículo.
func (uc *ItemUseCase) StockEntries(itemID, ownerID string, limit, offset int) ([]dto.StockEntryResponse, error) {
	list, err := uc.entryRepo.ListByItem(itemID, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockEntryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toStockEntryResponse(e))
	}
	return out, nil
}

// Sales historial de ventas de un artículo.
func (uc *ItemUseCase) Sales(itemID, ownerID string, limit, offset int) ([]dto.SaleResponse, error) {
	list, err := uc.saleRepo.ListByItem(itemID, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleResponse(s))
	}
	return out, nil
}

// RecentEntries últimas entradas de stock del usuario (panel de reposición).
func (uc *ItemUseCase) RecentEntries(ownerID string, limit int) ([]dto.StockEntryResponse, error) {
	list, err := uc.entryRepo.ListRecent(ownerID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockEntryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toStockEntryResponse(e))
	}
	return out, nil
}

// RecentSales últimas ventas del usuario (panel de ventas).
func (uc *ItemUseCase) RecentSales(ownerID string, limit int) ([]dto.SaleResponse, error) {
	list, err := uc.saleRepo.ListRecent(ownerID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleResponse(s))
	}
	return out, nil
}

// foldSearch normaliza el término de búsqueda: minúsculas y sin marcas
// diacríticas (NFD + eliminación de Mn).
func foldSearch(s string) string {
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return folded
}

func toItemResponse(i *entity.Item) *dto.ItemResponse {
	if i == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:            i.ID,
		Name:          i.Name,
		Category:      i.Category,
		SubcategoryID: i.SubcategoryID,
		Quantity:      i.Quantity,
		Price:         i.Price,
		Weight:        i.Weight,
		Description:   i.Description,
		CreatedAt:     i.CreatedAt,
	}
}

func toStockEntryResponse(e *entity.StockEntry) dto.StockEntryResponse {
	return dto.StockEntryResponse{
		ID:            e.ID,
		ItemID:        e.ItemID,
		QuantityAdded: e.QuantityAdded,
		Note:          e.Note,
		AddedAt:       e.AddedAt,
	}
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:         s.ID,
		ItemID:     s.ItemID,
		ItemName:   s.ItemName,
		Quantity:   s.Quantity,
		UnitPrice:  s.UnitPrice,
		TotalPrice: s.TotalPrice,
		Note:       s.Note,
		SoldAt:     s.SoldAt,
	}
}
