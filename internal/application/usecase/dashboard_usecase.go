// Paquete usecase: casos de uso de consulta (artículos, categorías,
// dashboard y reporte de inventario). Las mutaciones del stock viven en
// el paquete ledger.
package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

const dashboardRecentLimit = 20 // filas en los paneles de actividad reciente

// DashboardUseCase genera el resumen de la pantalla principal: ingresos y
// unidades vendidas históricos más la actividad reciente de ambos libros.
//
// Fuente de datos: ReportRepository y SaleRepository (consultas read-only).
type DashboardUseCase struct {
	reportRepo repository.ReportRepository
	saleRepo   repository.SaleRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(reportRepo repository.ReportRepository, saleRepo repository.SaleRepository) *DashboardUseCase {
	return &DashboardUseCase{reportRepo: reportRepo, saleRepo: saleRepo}
}

// GetSummary construye el DashboardSummaryDTO del usuario.
//
// Tres llamadas en paralelo:
//  1. GetSalesTotals           → TotalRevenue + TotalItemsSold
//  2. ListRecent(ventas)       → RecentSales
//  3. RecentEntriesWithItem    → RecentEntries
func (uc *DashboardUseCase) GetSummary(ctx context.Context, ownerID string) (*dto.DashboardSummaryDTO, error) {
	type totalsResult struct {
		totals *repository.SalesTotals
		err    error
	}
	type salesResult struct {
		sales []dto.SaleResponse
		err   error
	}
	type entriesResult struct {
		entries []dto.RecentEntryDTO
		err     error
	}

	totalsCh := make(chan totalsResult, 1)
	salesCh := make(chan salesResult, 1)
	entriesCh := make(chan entriesResult, 1)

	go func() {
		t, err := uc.reportRepo.GetSalesTotals(ctx, ownerID)
		totalsCh <- totalsResult{t, err}
	}()
	go func() {
		list, err := uc.saleRepo.ListRecent(ownerID, dashboardRecentLimit)
		if err != nil {
			salesCh <- salesResult{nil, err}
			return
		}
		out := make([]dto.SaleResponse, 0, len(list))
		for _, s := range list {
			out = append(out, toSaleResponse(s))
		}
		salesCh <- salesResult{out, nil}
	}()
	go func() {
		rows, err := uc.reportRepo.RecentEntriesWithItem(ctx, ownerID, dashboardRecentLimit)
		if err != nil {
			entriesCh <- entriesResult{nil, err}
			return
		}
		out := make([]dto.RecentEntryDTO, 0, len(rows))
		for _, r := range rows {
			out = append(out, dto.RecentEntryDTO{
				ID:            r.ID,
				ItemID:        r.ItemID,
				ItemName:      r.ItemName,
				QuantityAdded: r.QuantityAdded,
				Note:          r.Note,
				AddedAt:       r.AddedAt,
			})
		}
		entriesCh <- entriesResult{out, nil}
	}()

	totals := <-totalsCh
	sales := <-salesCh
	entries := <-entriesCh

	if totals.err != nil {
		return nil, fmt.Errorf("dashboard: totales de ventas: %w", totals.err)
	}
	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: ventas recientes: %w", sales.err)
	}
	if entries.err != nil {
		return nil, fmt.Errorf("dashboard: entradas recientes: %w", entries.err)
	}

	return &dto.DashboardSummaryDTO{
		TotalRevenue:   totals.totals.TotalRevenue.Round(2),
		TotalItemsSold: totals.totals.UnitsSold,
		RecentSales:    sales.sales,
		RecentEntries:  entries.entries,
	}, nil
}
