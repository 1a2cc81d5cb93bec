package usecase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

const testOwnerID = "00000000-0000-0000-0000-000000000001"

// stubItemRepo captura el término de búsqueda que recibe ListByOwner y
// devuelve una lista fija.
type stubItemRepo struct {
	gotSearch string
	items     []*entity.Item
}

func (r *stubItemRepo) Create(*entity.Item) error { return nil }

func (r *stubItemRepo) GetByID(id, ownerID string) (*entity.Item, error) {
	for _, it := range r.items {
		if it.ID == id && it.OwnerID == ownerID {
			return it, nil
		}
	}
	return nil, nil
}

func (r *stubItemRepo) GetForUpdate(id, ownerID string) (*entity.Item, error) {
	return r.GetByID(id, ownerID)
}

func (r *stubItemRepo) Update(*entity.Item) error          { return nil }
func (r *stubItemRepo) UpdateQuantity(string, int64) error { return nil }
func (r *stubItemRepo) Delete(string, string) error        { return nil }

func (r *stubItemRepo) AllByOwner(string) ([]*entity.Item, error) { return r.items, nil }

func (r *stubItemRepo) ListByOwner(_, search string, _, _ int) ([]*entity.Item, error) {
	r.gotSearch = search
	return r.items, nil
}

type stubEntryRepo struct{ entries []*entity.StockEntry }

func (r *stubEntryRepo) Create(*entity.StockEntry) error { return nil }

func (r *stubEntryRepo) ListByItem(string, string, int, int) ([]*entity.StockEntry, error) {
	return r.entries, nil
}

func (r *stubEntryRepo) ListRecent(string, int) ([]*entity.StockEntry, error) {
	return r.entries, nil
}

type stubSaleRepo struct{ sales []*entity.Sale }

func (r *stubSaleRepo) Create(*entity.Sale) error { return nil }

func (r *stubSaleRepo) ListByItem(string, string, int, int) ([]*entity.Sale, error) {
	return r.sales, nil
}

func (r *stubSaleRepo) ListRecent(string, int) ([]*entity.Sale, error) {
	return r.sales, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// List: normalización del término de búsqueda
// ──────────────────────────────────────────────────────────────────────────────

func TestList_NormalizaBusquedaSinTildes(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Café", "cafe"},
		{"  AZÚCAR  ", "azucar"},
		{"jalapeño", "jalapeno"},
		{"aceite", "aceite"},
		{"", ""},
	}

	for _, tc := range cases {
		repo := &stubItemRepo{}
		uc := usecase.NewItemUseCase(repo, &stubEntryRepo{}, &stubSaleRepo{})

		_, err := uc.List(testOwnerID, tc.in, 20, 0)
		require.NoError(t, err)
		assert.Equal(t, tc.want, repo.gotSearch, "búsqueda %q", tc.in)
	}
}

func TestList_DevuelvePaginacion(t *testing.T) {
	repo := &stubItemRepo{items: []*entity.Item{
		{ID: "a", OwnerID: testOwnerID, Name: "Arroz", Quantity: 3, Price: decimal.NewFromInt(2)},
		{ID: "b", OwnerID: testOwnerID, Name: "Café", Quantity: 1, Price: decimal.NewFromInt(8)},
	}}
	uc := usecase.NewItemUseCase(repo, &stubEntryRepo{}, &stubSaleRepo{})

	out, err := uc.List(testOwnerID, "", 20, 0)
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, 20, out.Page.Limit)
	assert.Equal(t, 0, out.Page.Offset)
}

func TestGetByID_NoEncontradoDevuelveNil(t *testing.T) {
	uc := usecase.NewItemUseCase(&stubItemRepo{}, &stubEntryRepo{}, &stubSaleRepo{})

	out, err := uc.GetByID("no-existe", testOwnerID)
	require.NoError(t, err)
	assert.Nil(t, out)
}

// Los historiales de un artículo huérfano llegan con item_id vacío y el
// snapshot del nombre intacto.
func TestSales_ConservaSnapshotsDeVentaHuerfana(t *testing.T) {
	sale := &entity.Sale{
		ID:         "s1",
		OwnerID:    testOwnerID,
		ItemID:     "",
		ItemName:   "Aceite de oliva 1L",
		Quantity:   2,
		UnitPrice:  decimal.RequireFromString("5.00"),
		TotalPrice: decimal.RequireFromString("10.00"),
		SoldAt:     time.Now(),
	}
	uc := usecase.NewItemUseCase(&stubItemRepo{}, &stubEntryRepo{}, &stubSaleRepo{sales: []*entity.Sale{sale}})

	out, err := uc.RecentSales(testOwnerID, 20)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Empty(t, out[0].ItemID)
	assert.Equal(t, "Aceite de oliva 1L", out[0].ItemName)
	assert.True(t, out[0].TotalPrice.Equal(decimal.RequireFromString("10.00")))
}
