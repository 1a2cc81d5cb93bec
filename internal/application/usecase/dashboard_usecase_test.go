package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

type stubReportRepo struct {
	totals  *repository.SalesTotals
	entries []repository.RecentEntryRow
	err     error
}

func (r *stubReportRepo) GetSalesTotals(context.Context, string) (*repository.SalesTotals, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.totals, nil
}

func (r *stubReportRepo) RecentEntriesWithItem(context.Context, string, int) ([]repository.RecentEntryRow, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.entries, nil
}

func TestGetSummary_AgregaLibrosYActividad(t *testing.T) {
	now := time.Now()
	reportRepo := &stubReportRepo{
		totals: &repository.SalesTotals{
			TotalRevenue: decimal.RequireFromString("123.456"),
			UnitsSold:    17,
		},
		entries: []repository.RecentEntryRow{
			{ID: "e1", ItemID: "i1", ItemName: "Café molido", QuantityAdded: 5, AddedAt: now},
			{ID: "e2", ItemID: "", ItemName: "", QuantityAdded: 2, AddedAt: now},
		},
	}
	saleRepo := &stubSaleRepo{sales: []*entity.Sale{
		{ID: "s1", OwnerID: testOwnerID, ItemName: "Café molido", Quantity: 3,
			UnitPrice: decimal.NewFromInt(4), TotalPrice: decimal.NewFromInt(12), SoldAt: now},
	}}

	uc := usecase.NewDashboardUseCase(reportRepo, saleRepo)
	out, err := uc.GetSummary(context.Background(), testOwnerID)
	require.NoError(t, err)

	assert.True(t, out.TotalRevenue.Equal(decimal.RequireFromString("123.46")),
		"el ingreso total se redondea a 2 decimales")
	assert.Equal(t, int64(17), out.TotalItemsSold)
	require.Len(t, out.RecentSales, 1)
	assert.Equal(t, "Café molido", out.RecentSales[0].ItemName)
	require.Len(t, out.RecentEntries, 2)
	assert.Empty(t, out.RecentEntries[1].ItemName, "la entrada huérfana llega sin nombre")
}

func TestGetSummary_SinActividad(t *testing.T) {
	reportRepo := &stubReportRepo{
		totals: &repository.SalesTotals{TotalRevenue: decimal.Zero, UnitsSold: 0},
	}
	uc := usecase.NewDashboardUseCase(reportRepo, &stubSaleRepo{})

	out, err := uc.GetSummary(context.Background(), testOwnerID)
	require.NoError(t, err)

	assert.True(t, out.TotalRevenue.IsZero())
	assert.Zero(t, out.TotalItemsSold)
	assert.Empty(t, out.RecentSales)
	assert.Empty(t, out.RecentEntries)
}

func TestGetSummary_PropagaErrores(t *testing.T) {
	reportRepo := &stubReportRepo{err: errors.New("conexión perdida")}
	uc := usecase.NewDashboardUseCase(reportRepo, &stubSaleRepo{})

	_, err := uc.GetSummary(context.Background(), testOwnerID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dashboard:")
}
