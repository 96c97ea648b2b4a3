package service

import (
	"context"
	"time"

	"go-creamery-pos/internal/model"
	"go-creamery-pos/internal/repository"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	revenueChartDays  = 7
	topProductsLimit  = 5
	recentSalesLimit  = 5
	maxStockChartDays = 90
	defaultStockDays  = 7
)

type DashboardService interface {
	GetStockMovement(ctx context.Context, days int) ([]repository.StockMovementData, error)
	GetAdminStats(ctx context.Context) (*AdminStats, error)
}

type AdminStats struct {
	TotalRevenue  decimal.Decimal           `json:"total_revenue"`
	TotalProfit   decimal.Decimal           `json:"total_profit"`
	TotalOrders   int64                     `json:"total_orders"`
	LowStockCount int64                     `json:"low_stock_count"`
	SalesChart    []repository.DailyRevenue `json:"sales_chart"`
	TopProducts   []repository.TopProduct   `json:"top_products"`
	RecentSales   []model.Sale              `json:"recent_sales"`
}

type dashboardService struct {
	store repository.Store
	now   func() time.Time
}

func NewDashboardService(store repository.Store) DashboardService {
	return &dashboardService{store: store, now: time.Now}
}

func (s *dashboardService) GetStockMovement(ctx context.Context, days int) ([]repository.StockMovementData, error) {
	if days <= 0 {
		days = defaultStockDays
	}
	if days > maxStockChartDays {
		days = maxStockChartDays
	}
	endDate := s.now()
	startDate := endDate.AddDate(0, 0, -days)

	return s.store.Movements().GetStockMovement(ctx, startDate, endDate)
}

// GetAdminStats runs the dashboard queries concurrently.
func (s *dashboardService) GetAdminStats(ctx context.Context) (*AdminStats, error) {
	var (
		summary  *repository.SalesSummary
		lowStock int64
		chart    []repository.DailyRevenue
		top      []repository.TopProduct
		recent   []model.Sale
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		summary, err = s.store.Sales().Summary(gctx)
		return err
	})
	g.Go(func() (err error) {
		lowStock, err = s.store.Ingredients().CountLowStock(gctx)
		return err
	})
	g.Go(func() (err error) {
		since := s.now().AddDate(0, 0, -(revenueChartDays - 1))
		chart, err = s.store.Sales().DailyRevenue(gctx, since)
		return err
	})
	g.Go(func() (err error) {
		top, err = s.store.Sales().TopProducts(gctx, topProductsLimit)
		return err
	})
	g.Go(func() (err error) {
		recent, err = s.store.Sales().Recent(gctx, recentSalesLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if chart == nil {
		chart = []repository.DailyRevenue{}
	}
	if top == nil {
		top = []repository.TopProduct{}
	}
	if recent == nil {
		recent = []model.Sale{}
	}
	return &AdminStats{
		TotalRevenue:  summary.TotalRevenue,
		TotalProfit:   summary.TotalProfit,
		TotalOrders:   summary.OrderCount,
		LowStockCount: lowStock,
		SalesChart:    chart,
		TopProducts:   top,
		RecentSales:   recent,
	}, nil
}
