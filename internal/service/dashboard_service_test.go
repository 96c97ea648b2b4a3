package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminStats(t *testing.T) {
	store := newFakeStore()
	sales := NewSalesService(store, &fixedInvoices{numbers: []string{"INV-000001", "INV-000002", "INV-000003"}}, nil, nil, nil)
	ctx := context.Background()

	vanilla := store.addProduct("Vanilla", "20", "2.3333", "5")
	chocolate := store.addProduct("Chocolate", "20", "3", "6")
	store.addIngredient("Milk", "liter", "3", "2") // low
	store.addIngredient("Sugar", "kg", "50", "1")  // fine
	store.addIngredient("Cocoa", "kg", "5", "4")   // at threshold

	_, err := sales.Checkout(ctx, &CheckoutRequest{Items: []CartLine{{ProductID: vanilla.ID, Quantity: d("5"), UnitPrice: d("5")}}}, "cashier")
	require.NoError(t, err)
	_, err = sales.Checkout(ctx, &CheckoutRequest{Items: []CartLine{
		{ProductID: vanilla.ID, Quantity: d("1"), UnitPrice: d("5")},
		{ProductID: chocolate.ID, Quantity: d("2"), UnitPrice: d("6")},
	}}, "cashier")
	require.NoError(t, err)

	svc := &dashboardService{store: store, now: func() time.Time { return store.now.Add(time.Hour) }}
	stats, err := svc.GetAdminStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, "42", stats.TotalRevenue.String())
	assert.EqualValues(t, 2, stats.TotalOrders)
	assert.EqualValues(t, 2, stats.LowStockCount)
	require.Len(t, stats.SalesChart, 1)
	assert.Equal(t, "42", stats.SalesChart[0].Revenue.String())
	require.Len(t, stats.TopProducts, 2)
	assert.Equal(t, "Vanilla", stats.TopProducts[0].ProductName)
	assert.Equal(t, "6", stats.TopProducts[0].Quantity.String())
	require.Len(t, stats.RecentSales, 2)
	assert.Equal(t, "INV-000002", stats.RecentSales[0].InvoiceNo)
}

func TestAdminStatsEmptyShop(t *testing.T) {
	svc := NewDashboardService(newFakeStore())
	stats, err := svc.GetAdminStats(context.Background())
	require.NoError(t, err)
	assert.True(t, stats.TotalRevenue.IsZero())
	assert.NotNil(t, stats.SalesChart)
	assert.NotNil(t, stats.TopProducts)
	assert.NotNil(t, stats.RecentSales)
}

func TestStockMovementSplitsInboundAndOutbound(t *testing.T) {
	store := newFakeStore()
	ctx := context.Background()
	milk := store.addIngredient("Milk", "liter", "0", "0")

	inventory := NewInventoryService(store, nil, nil)
	_, err := inventory.RecordPurchase(ctx, &PurchaseRequest{IngredientID: milk.ID, Quantity: d("100"), UnitPrice: d("2")}, "owner")
	require.NoError(t, err)
	_, err = inventory.AdjustStock(ctx, milk.ID, &StockAdjustmentRequest{Delta: d("-30")}, "owner")
	require.NoError(t, err)

	svc := &dashboardService{store: store, now: func() time.Time { return store.now.Add(time.Minute) }}
	rows, err := svc.GetStockMovement(ctx, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "100", rows[0].Inbound.String())
	assert.Equal(t, "30", rows[0].Outbound.String())
}
