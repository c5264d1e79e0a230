package inventory

import (
	"context"
	"sort"

	"github.com/erp/erpcore/internal/domain/inventory"
	"github.com/erp/erpcore/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const recentMovementsLimit = 10

// DashboardService builds the inventory overview and stock reports
type DashboardService struct {
	productRepo  inventory.ProductRepository
	categoryRepo inventory.CategoryRepository
	movementRepo inventory.MovementRepository
	alertRepo    inventory.AlertRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	productRepo inventory.ProductRepository,
	categoryRepo inventory.CategoryRepository,
	movementRepo inventory.MovementRepository,
	alertRepo inventory.AlertRepository,
) *DashboardService {
	return &DashboardService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		movementRepo: movementRepo,
		alertRepo:    alertRepo,
	}
}

// Get returns the counts and value of active products, the latest
// movements, open alerts and a per-category summary
func (s *DashboardService) Get(ctx context.Context) (*InventoryDashboardResponse, error) {
	products, err := s.productRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.FindAll(ctx, true)
	if err != nil {
		return nil, err
	}
	movements, err := s.movementRepo.FindRecent(ctx, recentMovementsLimit)
	if err != nil {
		return nil, err
	}
	open := false
	alerts, err := s.alertRepo.FindAll(ctx, inventory.AlertFilter{Resolved: &open})
	if err != nil {
		return nil, err
	}

	resp := &InventoryDashboardResponse{
		TotalProducts:       len(products),
		TotalInventoryValue: decimal.Zero,
		RecentMovements:     make([]MovementResponse, 0, len(movements)),
		ActiveAlerts:        make([]AlertResponse, 0, len(alerts)),
	}

	summaries := make(map[uuid.UUID]*CategorySummary, len(categories))
	for _, c := range categories {
		summaries[c.ID] = &CategorySummary{CategoryID: c.ID, Name: c.Name, StockValue: decimal.Zero}
	}
	for _, p := range products {
		value := p.StockValue()
		resp.TotalInventoryValue = resp.TotalInventoryValue.Add(value)
		if p.StockStatus() == inventory.StockStatusLow {
			resp.LowStockItems++
		}
		if sum, ok := summaries[p.CategoryID]; ok {
			sum.ProductCount++
			sum.StockValue = sum.StockValue.Add(value)
		}
	}
	resp.TotalInventoryValue = valueobject.RoundMoney(resp.TotalInventoryValue)

	resp.CategorySummary = make([]CategorySummary, 0, len(summaries))
	for _, sum := range summaries {
		if sum.ProductCount > 0 {
			resp.CategorySummary = append(resp.CategorySummary, *sum)
		}
	}
	sort.Slice(resp.CategorySummary, func(i, j int) bool {
		return resp.CategorySummary[i].Name < resp.CategorySummary[j].Name
	})

	for _, m := range movements {
		resp.RecentMovements = append(resp.RecentMovements, ToMovementResponse(m))
	}
	for _, a := range alerts {
		resp.ActiveAlerts = append(resp.ActiveAlerts, ToAlertResponse(a))
	}
	return resp, nil
}

// StockLevels reports every active product with its stock status
func (s *DashboardService) StockLevels(ctx context.Context) (*StockLevelsReport, error) {
	products, err := s.productRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	report := &StockLevelsReport{
		Products:   make([]ProductResponse, 0, len(products)),
		TotalValue: decimal.Zero,
		ByStatus:   map[string]int{},
	}
	for _, p := range products {
		resp := ToProductResponse(p)
		report.Products = append(report.Products, resp)
		report.TotalValue = report.TotalValue.Add(resp.StockValue)
		report.ByStatus[resp.Status]++
	}
	report.TotalValue = valueobject.RoundMoney(report.TotalValue)
	return report, nil
}

// LowStock lists active products at or below their minimum, lowest
// stock relative to the minimum first
func (s *DashboardService) LowStock(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	low := make([]*inventory.Product, 0)
	for _, p := range products {
		if p.StockStatus() == inventory.StockStatusLow {
			low = append(low, p)
		}
	}
	sort.SliceStable(low, func(i, j int) bool {
		return low[i].CurrentStock-low[i].MinStock < low[j].CurrentStock-low[j].MinStock
	})

	result := make([]ProductResponse, 0, len(low))
	for _, p := range low {
		result = append(result, ToProductResponse(p))
	}
	return result, nil
}
