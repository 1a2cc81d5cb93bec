package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// UseCase es el libro de stock: toda mutación de cantidad (crear, reponer,
// vender, dividir) se ejecuta dentro de una transacción con bloqueo de fila
// (SELECT FOR UPDATE) para evitar dobles descuentos bajo concurrencia.
//
// Invariante: la cantidad de un artículo nunca queda negativa. La edición
// directa (UpdateItem) puede sobrescribir la cantidad sin movimiento; es una
// vía de escape documentada, no un bug.
type UseCase struct {
	txRunner        TxRunner
	subcategoryRepo repository.SubcategoryRepository
}

// NewUseCase construye el libro de stock.
func NewUseCase(txRunner TxRunner, subcategoryRepo repository.SubcategoryRepository) *UseCase {
	return &UseCase{txRunner: txRunner, subcategoryRepo: subcategoryRepo}
}

// CreateItem crea un artículo y, si la cantidad inicial es mayor que cero,
// registra una entrada de stock con ese delta en la misma transacción.
func (uc *UseCase) CreateItem(ctx context.Context, ownerID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.Name == "" || in.Quantity < 0 || in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.Weight != nil && in.Weight.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.SubcategoryID != nil && *in.SubcategoryID != "" {
		sub, err := uc.subcategoryRepo.GetByID(*in.SubcategoryID, ownerID)
		if err != nil {
			return nil, err
		}
		if sub == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	item := &entity.Item{
		ID:            uuid.New().String(),
		OwnerID:       ownerID,
		Name:          in.Name,
		Category:      in.Category,
		SubcategoryID: normalizeID(in.SubcategoryID),
		Quantity:      in.Quantity,
		Price:         in.Price,
		Weight:        in.Weight,
		Description:   in.Description,
		CreatedAt:     now,
	}

	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		entryRepo repository.StockEntryRepository,
		_ repository.SaleRepository,
	) error {
		if err := itemRepo.Create(item); err != nil {
			return err
		}
		if item.Quantity == 0 {
			// Sin stock inicial no hay delta que registrar (los deltas son > 0).
			return nil
		}
		return entryRepo.Create(&entity.StockEntry{
			ID:            uuid.New().String(),
			OwnerID:       ownerID,
			ItemID:        item.ID,
			QuantityAdded: item.Quantity,
			Note:          "stock inicial",
			AddedAt:       now,
		})
	})
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Restock suma cantidad a un artículo y registra la entrada en el libro.
// Lee y escribe la cantidad dentro de la misma transacción con la fila
// bloqueada: dos reposiciones concurrentes nunca pierden una actualización.
func (uc *UseCase) Restock(ctx context.Context, ownerID, itemID string, in dto.RestockRequest) error {
	if ownerID == "" {
		return domain.ErrUnauthorized
	}
	if in.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		entryRepo repository.StockEntryRepository,
		_ repository.SaleRepository,
	) error {
		item, err := itemRepo.GetForUpdate(itemID, ownerID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if err := itemRepo.UpdateQuantity(item.ID, item.Quantity+in.Quantity); err != nil {
			return err
		}
		return entryRepo.Create(&entity.StockEntry{
			ID:            uuid.New().String(),
			OwnerID:       ownerID,
			ItemID:        item.ID,
			QuantityAdded: in.Quantity,
			Note:          in.Note,
			AddedAt:       now,
		})
	})
}

// Sell descuenta stock y registra la venta con nombre y precio congelados.
// Si la cantidad pedida supera el stock actual falla con ErrInsufficientStock
// y no escribe nada: la fila queda como estaba. El registro de venta y el
// descuento comparten transacción, así que una venta a medias no existe.
func (uc *UseCase) Sell(ctx context.Context, ownerID, itemID string, in dto.SellRequest) error {
	if ownerID == "" {
		return domain.ErrUnauthorized
	}
	if in.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.StockEntryRepository,
		saleRepo repository.SaleRepository,
	) error {
		item, err := itemRepo.GetForUpdate(itemID, ownerID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if in.Quantity > item.Quantity {
			return domain.ErrInsufficientStock
		}
		if err := itemRepo.UpdateQuantity(item.ID, item.Quantity-in.Quantity); err != nil {
			return err
		}
		qty := decimal.NewFromInt(in.Quantity)
		return saleRepo.Create(&entity.Sale{
			ID:         uuid.New().String(),
			OwnerID:    ownerID,
			ItemID:     item.ID,
			ItemName:   item.Name,
			Quantity:   in.Quantity,
			UnitPrice:  item.Price,
			TotalPrice: item.Price.Mul(qty),
			Note:       in.Note,
			SoldAt:     now,
		})
	})
}

// Split separa una unidad de un artículo con cantidad > 1: el origen queda
// con n-1 y se crea un artículo nuevo de cantidad 1 copiando los campos
// descriptivos. No registra movimiento en ningún lado: es una partición del
// stock existente, el total se conserva, no se crea stock.
func (uc *UseCase) Split(ctx context.Context, ownerID, itemID string) (*dto.SplitResponse, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	var out dto.SplitResponse
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.StockEntryRepository,
		_ repository.SaleRepository,
	) error {
		item, err := itemRepo.GetForUpdate(itemID, ownerID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if item.Quantity <= 1 {
			// No se puede dividir una unidad suelta.
			return domain.ErrInvalidInput
		}
		if err := itemRepo.UpdateQuantity(item.ID, item.Quantity-1); err != nil {
			return err
		}
		split := &entity.Item{
			ID:            uuid.New().String(),
			OwnerID:       ownerID,
			Name:          item.Name,
			Category:      item.Category,
			SubcategoryID: item.SubcategoryID,
			Quantity:      1,
			Price:         item.Price,
			Weight:        item.Weight,
			Description:   item.Description,
			CreatedAt:     time.Now(),
		}
		if err := itemRepo.Create(split); err != nil {
			return err
		}
		item.Quantity--
		out.Source = *toItemResponse(item)
		out.New = *toItemResponse(split)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateItem sobrescribe campos descriptivos y, opcionalmente, la cantidad.
// La cantidad directa NO pasa por el libro: queda documentado que rompe la
// igualdad cantidad == suma(entradas) - suma(ventas) a propósito.
func (uc *UseCase) UpdateItem(ctx context.Context, ownerID, itemID string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.Name != nil && *in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Price != nil && in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.SubcategoryID != nil && *in.SubcategoryID != "" {
		sub, err := uc.subcategoryRepo.GetByID(*in.SubcategoryID, ownerID)
		if err != nil {
			return nil, err
		}
		if sub == nil {
			return nil, domain.ErrNotFound
		}
	}

	var out *dto.ItemResponse
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.StockEntryRepository,
		_ repository.SaleRepository,
	) error {
		item, err := itemRepo.GetForUpdate(itemID, ownerID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if in.Name != nil {
			item.Name = *in.Name
		}
		if in.Category != nil {
			item.Category = *in.Category
		}
		if in.SubcategoryID != nil {
			item.SubcategoryID = normalizeID(in.SubcategoryID)
		}
		if in.Quantity != nil {
			item.Quantity = *in.Quantity
		}
		if in.Price != nil {
			item.Price = *in.Price
		}
		if in.Weight != nil {
			item.Weight = in.Weight
		}
		if in.Description != nil {
			item.Description = *in.Description
		}
		if err := itemRepo.Update(item); err != nil {
			return err
		}
		out = toItemResponse(item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteItem elimina el artículo. Las entradas y ventas que lo referencian
// quedan huérfanas (FK SET NULL), nunca se borran.
func (uc *UseCase) DeleteItem(ctx context.Context, ownerID, itemID string) error {
	if ownerID == "" {
		return domain.ErrUnauthorized
	}
	return uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.StockEntryRepository,
		_ repository.SaleRepository,
	) error {
		item, err := itemRepo.GetByID(itemID, ownerID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		return itemRepo.Delete(itemID, ownerID)
	})
}

// normalizeID convierte el puntero a "" en nil (desasociar subcategoría).
func normalizeID(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
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
