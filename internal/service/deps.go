package service

import (
	"context"

	"go-creamery-pos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuCache holds the public menu between changes to sellable products.
type MenuCache interface {
	GetMenu(ctx context.Context) ([]model.MenuItem, bool)
	SetMenu(ctx context.Context, items []model.MenuItem)
	InvalidateMenu(ctx context.Context)
}

// OrderStatusCache answers customer status polling without touching the database.
type OrderStatusCache interface {
	GetOrderStatus(ctx context.Context, orderID uuid.UUID) (model.OrderStatus, bool)
	SetOrderStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus)
	InvalidateOrderStatus(ctx context.Context, orderID uuid.UUID)
}

// Metrics receives pipeline outcomes.
type Metrics interface {
	PurchaseRecorded()
	ProductionRun(ok bool)
	SaleCompleted(source string, total, profit decimal.Decimal)
	StockRejected(stage string)
}

type nopMenuCache struct{}

func (nopMenuCache) GetMenu(context.Context) ([]model.MenuItem, bool) { return nil, false }
func (nopMenuCache) SetMenu(context.Context, []model.MenuItem)        {}
func (nopMenuCache) InvalidateMenu(context.Context)                   {}

type nopOrderStatusCache struct{}

func (nopOrderStatusCache) GetOrderStatus(context.Context, uuid.UUID) (model.OrderStatus, bool) {
	return "", false
}
func (nopOrderStatusCache) SetOrderStatus(context.Context, uuid.UUID, model.OrderStatus) {}
func (nopOrderStatusCache) InvalidateOrderStatus(context.Context, uuid.UUID)             {}

type nopMetrics struct{}

func (nopMetrics) PurchaseRecorded()                                      {}
func (nopMetrics) ProductionRun(bool)                                     {}
func (nopMetrics) SaleCompleted(string, decimal.Decimal, decimal.Decimal) {}
func (nopMetrics) StockRejected(string)                                   {}
