package ledger

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el libro de stock:
// la lectura con bloqueo de fila, la escritura de cantidad y el registro
// append-only hacen Commit o Rollback juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		entryRepo repository.StockEntryRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
