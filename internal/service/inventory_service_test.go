package service

import (
	"context"
	"errors"
	"testing"

	"go-creamery-pos/internal/model"
	"go-creamery-pos/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordPurchaseWeightedAverage(t *testing.T) {
	store := newFakeStore()
	pub := &recordingPublisher{}
	svc := NewInventoryService(store, pub, nil)
	ctx := context.Background()

	milk, err := svc.CreateIngredient(ctx, &IngredientRequest{ItemCode: "MILK-01", Name: "Milk", Unit: "liter"}, "owner")
	require.NoError(t, err)
	assert.True(t, milk.CurrentStock.IsZero())
	assert.True(t, model.DefaultMinStockAlert.Equal(milk.MinStockAlert))

	first, err := svc.RecordPurchase(ctx, &PurchaseRequest{IngredientID: milk.ID, Quantity: d("100"), Supplier: "Dairy Co", UnitPrice: d("2")}, "owner")
	require.NoError(t, err)
	assert.Equal(t, "100", first.CurrentStock.String())
	assert.Equal(t, "2", first.AvgCostPerUnit.String())
	assert.Equal(t, "200", first.Purchase.TotalPrice.String())
	assert.Equal(t, "Milk", first.Purchase.IngredientName)

	second, err := svc.RecordPurchase(ctx, &PurchaseRequest{IngredientID: milk.ID, Quantity: d("50"), Supplier: "Dairy Co", UnitPrice: d("3")}, "owner")
	require.NoError(t, err)
	assert.Equal(t, "150", second.CurrentStock.String())
	assert.Equal(t, "2.3333", second.AvgCostPerUnit.String())

	stored := store.ingredient(milk.ID)
	assert.Equal(t, "2.3333", stored.AvgCostPerUnit.String())

	purchases, _, _, movements := store.counts()
	assert.Equal(t, 2, purchases)
	assert.Equal(t, 2, movements)
	assert.Equal(t, []string{"purchase_recorded", "purchase_recorded"}, pub.actions())
}

func TestRecordPurchaseRollsBackOnCostingFailure(t *testing.T) {
	store := newFakeStore()
	svc := NewInventoryService(store, nil, nil)
	milk := store.addIngredient("Milk", "liter", "10", "2")
	store.fail["ingredients.UpdateCosting"] = errors.New("connection reset")

	_, err := svc.RecordPurchase(context.Background(), &PurchaseRequest{IngredientID: milk.ID, Quantity: d("5"), UnitPrice: d("4")}, "owner")
	require.Error(t, err)

	purchases, _, _, _ := store.counts()
	assert.Zero(t, purchases, "purchase must not survive a failed cost update")
	assert.Equal(t, "10", store.ingredient(milk.ID).CurrentStock.String())
}

func TestRecordPurchaseValidation(t *testing.T) {
	store := newFakeStore()
	svc := NewInventoryService(store, nil, nil)
	milk := store.addIngredient("Milk", "liter", "0", "0")
	ctx := context.Background()

	_, err := svc.RecordPurchase(ctx, &PurchaseRequest{IngredientID: milk.ID, Quantity: d("0"), UnitPrice: d("1")}, "owner")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.RecordPurchase(ctx, &PurchaseRequest{IngredientID: milk.ID, Quantity: d("1"), UnitPrice: d("-1")}, "owner")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.RecordPurchase(ctx, &PurchaseRequest{IngredientID: uuid.New(), Quantity: d("1"), UnitPrice: d("1")}, "owner")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordPurchaseRejectsQuantityBelowPrecision(t *testing.T) {
	store := newFakeStore()
	svc := NewInventoryService(store, nil, nil)
	milk := store.addIngredient("Milk", "liter", "10", "2")

	_, err := svc.RecordPurchase(context.Background(), &PurchaseRequest{IngredientID: milk.ID, Quantity: d("0.00001"), UnitPrice: d("2")}, "owner")
	assert.ErrorIs(t, err, ErrInvalidInput)

	purchases, _, _, movements := store.counts()
	assert.Zero(t, purchases)
	assert.Zero(t, movements)
	assert.Equal(t, "10", store.ingredient(milk.ID).CurrentStock.String())
}

func TestCreateIngredientDuplicateItemCode(t *testing.T) {
	svc := NewInventoryService(newFakeStore(), nil, nil)
	ctx := context.Background()

	_, err := svc.CreateIngredient(ctx, &IngredientRequest{ItemCode: "SUG-01", Name: "Sugar", Unit: "kg"}, "owner")
	require.NoError(t, err)

	_, err = svc.CreateIngredient(ctx, &IngredientRequest{ItemCode: "SUG-01", Name: "Cane Sugar", Unit: "kg"}, "owner")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUpdateIngredientKeepsStockAndCost(t *testing.T) {
	store := newFakeStore()
	svc := NewInventoryService(store, nil, nil)
	ctx := context.Background()
	milk := store.addIngredient("Milk", "liter", "40", "2.5")
	sugar := store.addIngredient("Sugar", "kg", "5", "1")

	updated, err := svc.UpdateIngredient(ctx, milk.ID, &IngredientRequest{ItemCode: milk.ItemCode, Name: "Whole Milk", Unit: "liter"}, "owner")
	require.NoError(t, err)
	assert.Equal(t, "Whole Milk", updated.Name)
	assert.Equal(t, "40", store.ingredient(milk.ID).CurrentStock.String())
	assert.Equal(t, "2.5", store.ingredient(milk.ID).AvgCostPerUnit.String())

	_, err = svc.UpdateIngredient(ctx, milk.ID, &IngredientRequest{ItemCode: sugar.ItemCode, Name: "Milk", Unit: "liter"}, "owner")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAdjustIngredientStock(t *testing.T) {
	store := newFakeStore()
	svc := NewInventoryService(store, nil, nil)
	ctx := context.Background()
	milk := store.addIngredient("Milk", "liter", "10", "2")

	ing, err := svc.AdjustStock(ctx, milk.ID, &StockAdjustmentRequest{Delta: d("-4"), Note: "spilled"}, "owner")
	require.NoError(t, err)
	assert.Equal(t, "6", ing.CurrentStock.String())

	_, err = svc.AdjustStock(ctx, milk.ID, &StockAdjustmentRequest{Delta: d("-7")}, "owner")
	var shortage *InsufficientStockError
	require.ErrorAs(t, err, &shortage)
	assert.Equal(t, "Milk", shortage.Item)
	assert.Equal(t, "6", store.ingredient(milk.ID).CurrentStock.String())

	_, err = svc.AdjustStock(ctx, milk.ID, &StockAdjustmentRequest{Delta: d("0")}, "owner")
	assert.ErrorIs(t, err, ErrInvalidInput)

	// rounds to zero at four places
	_, err = svc.AdjustStock(ctx, milk.ID, &StockAdjustmentRequest{Delta: d("0.00001")}, "owner")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, _, _, movements := store.counts()
	assert.Equal(t, 1, movements, "only the first adjustment is logged")
}

func TestListIngredientsSearch(t *testing.T) {
	store := newFakeStore()
	svc := NewInventoryService(store, nil, nil)
	store.addIngredient("Milk", "liter", "1", "1")
	store.addIngredient("Sugar", "kg", "1", "1")
	store.addIngredient("Milk Powder", "kg", "1", "1")

	page, err := svc.ListIngredients(context.Background(), repository.ListQuery{Search: "milk", Limit: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Milk Powder", page.Items[0].Name, "newest first")
}

func TestIngredientsFlagLowStock(t *testing.T) {
	store := newFakeStore()
	svc := NewInventoryService(store, nil, nil)
	ctx := context.Background()
	milk := store.addIngredient("Milk", "liter", "40", "2")
	sugar := store.addIngredient("Sugar", "kg", "5", "1")

	page, err := svc.ListIngredients(ctx, repository.ListQuery{})
	require.NoError(t, err)
	flags := map[string]bool{}
	for _, ing := range page.Items {
		flags[ing.Name] = ing.LowStock
	}
	assert.Equal(t, map[string]bool{"Milk": false, "Sugar": true}, flags, "at the threshold counts as low")

	got, err := svc.GetIngredient(ctx, milk.ID)
	require.NoError(t, err)
	assert.False(t, got.LowStock)
	got, err = svc.GetIngredient(ctx, sugar.ID)
	require.NoError(t, err)
	assert.True(t, got.LowStock)
}
