package ledger_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// fakeStore simula la base de datos; fakeTxRunner simula la transacción con
// bloqueo de fila: serializa las transacciones con un mutex (igual que hace
// SELECT FOR UPDATE con dos ventas concurrentes sobre la misma fila) y revierte
// la escritura completa si el callback devuelve error.
// ──────────────────────────────────────────────────────────────────────────────

const (
	testOwnerID = "00000000-0000-0000-0000-000000000001"
	otherOwner  = "00000000-0000-0000-0000-000000000099"
)

type fakeStore struct {
	mu      sync.Mutex
	items   map[string]*entity.Item
	entries []*entity.StockEntry
	sales   []*entity.Sale
	subs    map[string]*entity.Subcategory
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		items: make(map[string]*entity.Item),
		subs:  make(map[string]*entity.Subcategory),
	}
}

func (s *fakeStore) snapshot() (map[string]*entity.Item, int, int) {
	items := make(map[string]*entity.Item, len(s.items))
	for id, it := range s.items {
		cp := *it
		items[id] = &cp
	}
	return items, len(s.entries), len(s.sales)
}

// entriesSum suma de deltas de entradas para un item.
func (s *fakeStore) entriesSum(itemID string) int64 {
	var sum int64
	for _, e := range s.entries {
		if e.ItemID == itemID {
			sum += e.QuantityAdded
		}
	}
	return sum
}

func (s *fakeStore) salesSum(itemID string) int64 {
	var sum int64
	for _, sale := range s.sales {
		if sale.ItemID == itemID {
			sum += sale.Quantity
		}
	}
	return sum
}

type fakeTxRunner struct {
	store *fakeStore
	// failSaleInsert fuerza el fallo del insert de venta para verificar que
	// el descuento de stock se revierte junto con la venta.
	failSaleInsert bool
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	itemRepo repository.ItemRepository,
	entryRepo repository.StockEntryRepository,
	saleRepo repository.SaleRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	items, nEntries, nSales := r.store.snapshot()
	err := fn(
		&fakeItemRepo{store: r.store},
		&fakeEntryRepo{store: r.store},
		&fakeSaleRepo{store: r.store, fail: r.failSaleInsert},
	)
	if err != nil {
		// rollback
		r.store.items = items
		r.store.entries = r.store.entries[:nEntries]
		r.store.sales = r.store.sales[:nSales]
		return err
	}
	return nil
}

type fakeItemRepo struct{ store *fakeStore }

func (r *fakeItemRepo) Create(item *entity.Item) error {
	cp := *item
	r.store.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) GetByID(id, ownerID string) (*entity.Item, error) {
	it, ok := r.store.items[id]
	if !ok || it.OwnerID != ownerID {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeItemRepo) GetForUpdate(id, ownerID string) (*entity.Item, error) {
	return r.GetByID(id, ownerID)
}

func (r *fakeItemRepo) Update(item *entity.Item) error {
	cp := *item
	r.store.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) UpdateQuantity(id string, quantity int64) error {
	it, ok := r.store.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Quantity = quantity
	return nil
}

func (r *fakeItemRepo) ListByOwner(ownerID, _ string, _, _ int) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, it := range r.store.items {
		if it.OwnerID == ownerID {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) AllByOwner(ownerID string) ([]*entity.Item, error) {
	return r.ListByOwner(ownerID, "", 0, 0)
}

func (r *fakeItemRepo) Delete(id, ownerID string) error {
	it, ok := r.store.items[id]
	if !ok || it.OwnerID != ownerID {
		return nil
	}
	delete(r.store.items, id)
	// FK SET NULL: los libros quedan huérfanos, no se borran
	for _, e := range r.store.entries {
		if e.ItemID == id {
			e.ItemID = ""
		}
	}
	for _, s := range r.store.sales {
		if s.ItemID == id {
			s.ItemID = ""
		}
	}
	return nil
}

type fakeEntryRepo struct{ store *fakeStore }

func (r *fakeEntryRepo) Create(entry *entity.StockEntry) error {
	cp := *entry
	r.store.entries = append(r.store.entries, &cp)
	return nil
}

func (r *fakeEntryRepo) ListByItem(itemID, ownerID string, _, _ int) ([]*entity.StockEntry, error) {
	var out []*entity.StockEntry
	for _, e := range r.store.entries {
		if e.ItemID == itemID && e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEntryRepo) ListRecent(ownerID string, _ int) ([]*entity.StockEntry, error) {
	var out []*entity.StockEntry
	for _, e := range r.store.entries {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeSaleRepo struct {
	store *fakeStore
	fail  bool
}

func (r *fakeSaleRepo) Create(sale *entity.Sale) error {
	if r.fail {
		return errors.New("insert sale: conexión perdida")
	}
	cp := *sale
	r.store.sales = append(r.store.sales, &cp)
	return nil
}

func (r *fakeSaleRepo) ListByItem(itemID, ownerID string, _, _ int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.store.sales {
		if s.ItemID == itemID && s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) ListRecent(ownerID string, _ int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.store.sales {
		if s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeSubcategoryRepo struct{ store *fakeStore }

func (r *fakeSubcategoryRepo) Create(sub *entity.Subcategory) error {
	cp := *sub
	r.store.subs[sub.ID] = &cp
	return nil
}

func (r *fakeSubcategoryRepo) GetByID(id, ownerID string) (*entity.Subcategory, error) {
	sub, ok := r.store.subs[id]
	if !ok || sub.OwnerID != ownerID {
		return nil, nil
	}
	cp := *sub
	return &cp, nil
}

func (r *fakeSubcategoryRepo) ListByOwner(string) ([]*entity.Subcategory, error) {
	return nil, nil
}

func (r *fakeSubcategoryRepo) ListByCategory(string, string) ([]*entity.Subcategory, error) {
	return nil, nil
}

func (r *fakeSubcategoryRepo) Delete(string, string) error { return nil }

func newTestUseCase() (*ledger.UseCase, *fakeStore, *fakeTxRunner) {
	store := newFakeStore()
	runner := &fakeTxRunner{store: store}
	uc := ledger.NewUseCase(runner, &fakeSubcategoryRepo{store: store})
	return uc, store, runner
}

func createItem(t *testing.T, uc *ledger.UseCase, qty int64, price string) *dto.ItemResponse {
	t.Helper()
	item, err := uc.CreateItem(context.Background(), testOwnerID, dto.CreateItemRequest{
		Name:     "Aceite de oliva 1L",
		Category: "Despensa",
		Quantity: qty,
		Price:    decimal.RequireFromString(price),
	})
	require.NoError(t, err)
	return item
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateItem
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateItem_ConStockInicialRegistraEntrada(t *testing.T) {
	uc, store, _ := newTestUseCase()

	item := createItem(t, uc, 10, "5.00")

	assert.Equal(t, int64(10), item.Quantity)
	require.Len(t, store.entries, 1, "la cantidad inicial debe generar una entrada")
	assert.Equal(t, item.ID, store.entries[0].ItemID)
	assert.Equal(t, int64(10), store.entries[0].QuantityAdded)
	assert.Equal(t, "stock inicial", store.entries[0].Note)
}

func TestCreateItem_SinStockInicialNoRegistraEntrada(t *testing.T) {
	uc, store, _ := newTestUseCase()

	item := createItem(t, uc, 0, "5.00")

	assert.Equal(t, int64(0), item.Quantity)
	assert.Empty(t, store.entries, "cantidad cero no genera entrada: los deltas son > 0")
}

func TestCreateItem_Validaciones(t *testing.T) {
	uc, _, _ := newTestUseCase()
	ctx := context.Background()

	_, err := uc.CreateItem(ctx, "", dto.CreateItemRequest{Name: "x", Price: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "sin usuario no hay creación")

	_, err = uc.CreateItem(ctx, testOwnerID, dto.CreateItemRequest{Name: "", Price: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nombre vacío")

	_, err = uc.CreateItem(ctx, testOwnerID, dto.CreateItemRequest{Name: "x", Quantity: -1, Price: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad negativa")

	_, err = uc.CreateItem(ctx, testOwnerID, dto.CreateItemRequest{Name: "x", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "precio negativo")
}

func TestCreateItem_SubcategoriaInexistente(t *testing.T) {
	uc, _, _ := newTestUseCase()
	subID := "no-existe"

	_, err := uc.CreateItem(context.Background(), testOwnerID, dto.CreateItemRequest{
		Name:          "x",
		SubcategoryID: &subID,
		Price:         decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Restock / Sell
// ──────────────────────────────────────────────────────────────────────────────

func TestRestock_SumaYRegistraEntrada(t *testing.T) {
	uc, store, _ := newTestUseCase()
	item := createItem(t, uc, 10, "5.00")

	err := uc.Restock(context.Background(), testOwnerID, item.ID, dto.RestockRequest{Quantity: 2, Note: "compra feria"})
	require.NoError(t, err)

	assert.Equal(t, int64(12), store.items[item.ID].Quantity)
	assert.Equal(t, int64(12), store.entriesSum(item.ID), "el libro de entradas acumula 10 + 2")
}

func TestRestock_CantidadNoPositiva(t *testing.T) {
	uc, _, _ := newTestUseCase()
	item := createItem(t, uc, 10, "5.00")
	ctx := context.Background()

	assert.ErrorIs(t, uc.Restock(ctx, testOwnerID, item.ID, dto.RestockRequest{Quantity: 0}), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.Restock(ctx, testOwnerID, item.ID, dto.RestockRequest{Quantity: -5}), domain.ErrInvalidInput)
}

func TestRestock_ArticuloInexistente(t *testing.T) {
	uc, _, _ := newTestUseCase()

	err := uc.Restock(context.Background(), testOwnerID, "no-existe", dto.RestockRequest{Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSell_DescuentaYCongelaPrecio(t *testing.T) {
	uc, store, _ := newTestUseCase()
	item := createItem(t, uc, 10, "5.00")

	err := uc.Sell(context.Background(), testOwnerID, item.ID, dto.SellRequest{Quantity: 3})
	require.NoError(t, err)

	assert.Equal(t, int64(7), store.items[item.ID].Quantity)
	require.Len(t, store.sales, 1)
	sale := store.sales[0]
	assert.Equal(t, "Aceite de oliva 1L", sale.ItemName, "el nombre queda congelado en la venta")
	assert.True(t, sale.UnitPrice.Equal(decimal.RequireFromString("5.00")))
	assert.True(t, sale.TotalPrice.Equal(decimal.RequireFromString("15.00")), "total = precio × cantidad")
}

func TestSell_StockInsuficienteNoEscribeNada(t *testing.T) {
	uc, store, _ := newTestUseCase()
	item := createItem(t, uc, 5, "5.00")

	err := uc.Sell(context.Background(), testOwnerID, item.ID, dto.SellRequest{Quantity: 6})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(5), store.items[item.ID].Quantity, "la cantidad no cambia")
	assert.Empty(t, store.sales, "no queda registro de venta")
}

func TestSell_VentaExactaDejaCero(t *testing.T) {
	uc, store, _ := newTestUseCase()
	item := createItem(t, uc, 5, "5.00")

	require.NoError(t, uc.Sell(context.Background(), testOwnerID, item.ID, dto.SellRequest{Quantity: 5}))
	assert.Equal(t, int64(0), store.items[item.ID].Quantity)
}

func TestSell_FalloDelInsertRevierteElDescuento(t *testing.T) {
	uc, store, runner := newTestUseCase()
	item := createItem(t, uc, 10, "5.00")

	runner.failSaleInsert = true
	err := uc.Sell(context.Background(), testOwnerID, item.ID, dto.SellRequest{Quantity: 3})
	require.Error(t, err)

	assert.Equal(t, int64(10), store.items[item.ID].Quantity,
		"descuento y venta comparten transacción: si la venta falla, el stock vuelve")
	assert.Empty(t, store.sales)
}

func TestSell_ArticuloDeOtroUsuario(t *testing.T) {
	uc, _, _ := newTestUseCase()
	item := createItem(t, uc, 10, "5.00")

	err := uc.Sell(context.Background(), otherOwner, item.ID, dto.SellRequest{Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound, "un artículo ajeno se comporta como inexistente")
}

// TestSell_ConcurrenciaUnSoloGanador: dos ventas simultáneas (3 y 4) sobre
// stock 5. Con las transacciones serializadas por el bloqueo de fila, solo una
// puede caber: exactamente una falla con ErrInsufficientStock y la cantidad
// final nunca es negativa.
func TestSell_ConcurrenciaUnSoloGanador(t *testing.T) {
	uc, store, _ := newTestUseCase()
	item := createItem(t, uc, 5, "5.00")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, qty := range []int64{3, 4} {
		wg.Add(1)
		go func(i int, qty int64) {
			defer wg.Done()
			errs[i] = uc.Sell(context.Background(), testOwnerID, item.ID, dto.SellRequest{Quantity: qty})
		}(i, qty)
	}
	wg.Wait()

	var failed int
	for _, err := range errs {
		if errors.Is(err, domain.ErrInsufficientStock) {
			failed++
		} else {
			require.NoError(t, err)
		}
	}
	assert.Equal(t, 1, failed, "exactamente una de las dos ventas debe fallar")
	final := store.items[item.ID].Quantity
	assert.GreaterOrEqual(t, final, int64(0), "el stock jamás queda negativo")
	assert.Equal(t, int64(5)-store.salesSum(item.ID), final)
}

// ──────────────────────────────────────────────────────────────────────────────
// Split
// ──────────────────────────────────────────────────────────────────────────────

func TestSplit_ConservaElTotal(t *testing.T) {
	uc, store, _ := newTestUseCase()
	item := createItem(t, uc, 5, "5.00")

	out, err := uc.Split(context.Background(), testOwnerID, item.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(4), out.Source.Quantity)
	assert.Equal(t, int64(1), out.New.Quantity)
	assert.NotEqual(t, out.Source.ID, out.New.ID)
	assert.Equal(t, out.Source.Name, out.New.Name, "el nuevo artículo copia los campos descriptivos")
	assert.True(t, out.New.Price.Equal(out.Source.Price))

	var total int64
	for _, it := range store.items {
		total += it.Quantity
	}
	assert.Equal(t, int64(5), total, "dividir no crea ni destruye stock")
	assert.Len(t, store.entries, 1, "dividir no registra movimiento en el libro")
}

func TestSplit_UnidadSueltaNoSeDivide(t *testing.T) {
	uc, _, _ := newTestUseCase()
	item := createItem(t, uc, 1, "5.00")

	_, err := uc.Split(context.Background(), testOwnerID, item.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSplit_ArticuloInexistente(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.Split(context.Background(), testOwnerID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateItem / DeleteItem
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateItem_SobrescribeCantidadSinMovimiento(t *testing.T) {
	uc, store, _ := newTestUseCase()
	item := createItem(t, uc, 10, "5.00")

	newQty := int64(42)
	out, err := uc.UpdateItem(context.Background(), testOwnerID, item.ID, dto.UpdateItemRequest{Quantity: &newQty})
	require.NoError(t, err)

	assert.Equal(t, int64(42), out.Quantity)
	assert.Equal(t, int64(42), store.items[item.ID].Quantity)
	assert.Len(t, store.entries, 1,
		"la edición directa no pasa por el libro: solo queda la entrada inicial")
}

func TestUpdateItem_CamposParciales(t *testing.T) {
	uc, _, _ := newTestUseCase()
	item := createItem(t, uc, 10, "5.00")

	name := "Aceite de girasol 1L"
	price := decimal.RequireFromString("4.50")
	out, err := uc.UpdateItem(context.Background(), testOwnerID, item.ID, dto.UpdateItemRequest{
		Name:  &name,
		Price: &price,
	})
	require.NoError(t, err)

	assert.Equal(t, name, out.Name)
	assert.True(t, out.Price.Equal(price))
	assert.Equal(t, item.Category, out.Category, "los campos no enviados no cambian")
	assert.Equal(t, item.Quantity, out.Quantity)
}

func TestUpdateItem_Validaciones(t *testing.T) {
	uc, _, _ := newTestUseCase()
	item := createItem(t, uc, 10, "5.00")
	ctx := context.Background()

	empty := ""
	_, err := uc.UpdateItem(ctx, testOwnerID, item.ID, dto.UpdateItemRequest{Name: &empty})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nombre vacío")

	neg := int64(-1)
	_, err = uc.UpdateItem(ctx, testOwnerID, item.ID, dto.UpdateItemRequest{Quantity: &neg})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad negativa")
}

func TestDeleteItem_DejaLosLibrosHuerfanos(t *testing.T) {
	uc, store, _ := newTestUseCase()
	item := createItem(t, uc, 10, "5.00")
	require.NoError(t, uc.Sell(context.Background(), testOwnerID, item.ID, dto.SellRequest{Quantity: 2}))

	require.NoError(t, uc.DeleteItem(context.Background(), testOwnerID, item.ID))

	assert.NotContains(t, store.items, item.ID)
	require.Len(t, store.entries, 1, "las entradas sobreviven al borrado")
	require.Len(t, store.sales, 1, "las ventas sobreviven al borrado")
	assert.Empty(t, store.entries[0].ItemID, "la referencia queda en NULL")
	assert.Empty(t, store.sales[0].ItemID)
	assert.Equal(t, "Aceite de oliva 1L", store.sales[0].ItemName,
		"el snapshot del nombre sigue disponible en la venta huérfana")
}

func TestDeleteItem_Inexistente(t *testing.T) {
	uc, _, _ := newTestUseCase()

	err := uc.DeleteItem(context.Background(), testOwnerID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedad de consistencia: crear → vender → reponer
// ──────────────────────────────────────────────────────────────────────────────

// Secuencia del caso típico: Create(10, $5.00) → Sell(3) → Restock(2).
// La cantidad final debe ser 9, la venta registrada por $15.00 y el libro de
// entradas sumar 12 (10 inicial + 2 reposición).
func TestLibro_SecuenciaCrearVenderReponer(t *testing.T) {
	uc, store, _ := newTestUseCase()
	ctx := context.Background()

	item := createItem(t, uc, 10, "5.00")
	require.NoError(t, uc.Sell(ctx, testOwnerID, item.ID, dto.SellRequest{Quantity: 3}))
	require.NoError(t, uc.Restock(ctx, testOwnerID, item.ID, dto.RestockRequest{Quantity: 2}))

	assert.Equal(t, int64(9), store.items[item.ID].Quantity)
	assert.Equal(t, int64(12), store.entriesSum(item.ID))
	require.Len(t, store.sales, 1)
	assert.True(t, store.sales[0].TotalPrice.Equal(decimal.RequireFromString("15.00")))

	// Invariante del libro: cantidad == entradas - ventas
	assert.Equal(t, store.entriesSum(item.ID)-store.salesSum(item.ID), store.items[item.ID].Quantity)
}
