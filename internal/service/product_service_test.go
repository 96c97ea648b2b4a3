package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicMenuHidesUnsellableAndCachesResult(t *testing.T) {
	store := newFakeStore()
	menu := &countingMenu{}
	svc := NewProductService(store, nil, menu)
	ctx := context.Background()

	vanilla := store.addProduct("Vanilla", "15", "2.3333", "5")
	store.addProduct("Unpriced", "10", "1", "0")
	store.addProduct("Sold Out", "0", "1", "4")

	items, err := svc.PublicMenu(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, vanilla.ID, items[0].ID)
	assert.Equal(t, "5", items[0].SellingPrice.String())

	cached, ok := menu.GetMenu(ctx)
	require.True(t, ok)
	assert.Len(t, cached, 1)

	_, err = svc.SetSellingPrice(ctx, vanilla.ID, &PriceRequest{SellingPrice: d("0")}, "owner")
	require.NoError(t, err)
	assert.Equal(t, 1, menu.invalidated)

	items, err = svc.PublicMenu(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSetSellingPrice(t *testing.T) {
	store := newFakeStore()
	svc := NewProductService(store, nil, nil)
	ctx := context.Background()
	vanilla := store.addProduct("Vanilla", "15", "2.3333", "0")

	p, err := svc.SetSellingPrice(ctx, vanilla.ID, &PriceRequest{SellingPrice: d("4.995")}, "owner")
	require.NoError(t, err)
	assert.Equal(t, "5", p.SellingPrice.String())

	_, err = svc.SetSellingPrice(ctx, vanilla.ID, &PriceRequest{SellingPrice: d("-1")}, "owner")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SetSellingPrice(ctx, uuid.New(), &PriceRequest{SellingPrice: d("1")}, "owner")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductDetailsAndStockAdjustment(t *testing.T) {
	store := newFakeStore()
	svc := NewProductService(store, nil, nil)
	ctx := context.Background()
	vanilla := store.addProduct("Vanilla", "15", "2.3333", "5")

	p, err := svc.UpdateDetails(ctx, vanilla.ID, &ProductDetailsRequest{ProductName: "Vanilla Bean", MinStockAlert: decPtr("3")}, "owner")
	require.NoError(t, err)
	assert.Equal(t, "Vanilla Bean", p.ProductName)
	assert.Equal(t, "scoop", p.Unit, "blank unit keeps the old one")
	assert.Equal(t, "2.3333", store.product(vanilla.ID).ProductionCostPerUnit.String())

	p, err = svc.AdjustStock(ctx, vanilla.ID, &StockAdjustmentRequest{Delta: d("-2"), Note: "melted"}, "owner")
	require.NoError(t, err)
	assert.Equal(t, "13", p.CurrentStock.String())

	_, err = svc.AdjustStock(ctx, vanilla.ID, &StockAdjustmentRequest{Delta: d("-20")}, "owner")
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, "13", store.product(vanilla.ID).CurrentStock.String())

	_, err = svc.AdjustStock(ctx, vanilla.ID, &StockAdjustmentRequest{Delta: d("0.00001")}, "owner")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "13", store.product(vanilla.ID).CurrentStock.String())
}

func decPtr(s string) *decimal.Decimal {
	v := d(s)
	return &v
}
