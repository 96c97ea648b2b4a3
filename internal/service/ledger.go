package service

import (
	"context"
	"errors"

	"go-creamery-pos/internal/costing"
	"go-creamery-pos/internal/model"
	"go-creamery-pos/internal/repository"

	"github.com/shopspring/decimal"
)

// ingredientLedger applies stock and cost changes to ingredients inside a
// transaction and logs each change as a stock movement.
type ingredientLedger struct {
	tx repository.Store
}

// adjustStock applies a signed delta with a conditional write, so stock can never go negative.
func (l ingredientLedger) adjustStock(ctx context.Context, ing *model.Ingredient, delta decimal.Decimal, kind model.MovementKind, ref, note, userID string) error {
	delta = costing.Quantity(delta)
	if err := l.tx.Ingredients().AdjustStock(ctx, ing.ID, delta, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return notFound("Ingredient")
		case errors.Is(err, repository.ErrInsufficientStock):
			return &InsufficientStockError{Item: ing.Name, Required: delta.Neg(), Available: ing.CurrentStock}
		}
		return err
	}
	ing.CurrentStock = ing.CurrentStock.Add(delta)
	return l.tx.Movements().Create(ctx, &model.StockMovement{
		BaseModel: model.BaseModel{CreatedBy: userID, UpdatedBy: userID},
		ItemType:  model.ItemIngredient,
		ItemID:    ing.ID,
		ItemName:  ing.Name,
		Kind:      kind,
		Quantity:  delta,
		UnitCost:  ing.AvgCostPerUnit,
		Reference: ref,
		Note:      note,
	})
}

// applyPurchase folds quantity units at unitPrice into the ingredient's
// weighted-average cost. ing must have been read under a row lock.
func (l ingredientLedger) applyPurchase(ctx context.Context, ing *model.Ingredient, quantity, unitPrice decimal.Decimal, ref, userID string) error {
	newStock := costing.Quantity(ing.CurrentStock.Add(quantity))
	newAvg := costing.NewAverage(ing.CurrentStock, ing.AvgCostPerUnit, quantity, quantity.Mul(unitPrice))

	if err := l.tx.Ingredients().UpdateCosting(ctx, ing.ID, newStock, newAvg, userID); err != nil {
		return lookupErr(err, "Ingredient")
	}
	ing.CurrentStock = newStock
	ing.AvgCostPerUnit = newAvg

	return l.tx.Movements().Create(ctx, &model.StockMovement{
		BaseModel: model.BaseModel{CreatedBy: userID, UpdatedBy: userID},
		ItemType:  model.ItemIngredient,
		ItemID:    ing.ID,
		ItemName:  ing.Name,
		Kind:      model.MovePurchase,
		Quantity:  quantity,
		UnitCost:  costing.UnitCost(unitPrice),
		Reference: ref,
	})
}

// productLedger is the finished-goods counterpart of ingredientLedger.
type productLedger struct {
	tx repository.Store
}

func (l productLedger) adjustStock(ctx context.Context, p *model.Product, delta decimal.Decimal, kind model.MovementKind, ref, note, userID string) error {
	delta = costing.Quantity(delta)
	if err := l.tx.Products().AdjustStock(ctx, p.ID, delta, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return notFound("Product")
		case errors.Is(err, repository.ErrInsufficientStock):
			return &StockError{Product: p.ProductName, Requested: delta.Neg(), Available: p.CurrentStock}
		}
		return err
	}
	p.CurrentStock = p.CurrentStock.Add(delta)
	return l.tx.Movements().Create(ctx, &model.StockMovement{
		BaseModel: model.BaseModel{CreatedBy: userID, UpdatedBy: userID},
		ItemType:  model.ItemProduct,
		ItemID:    p.ID,
		ItemName:  p.ProductName,
		Kind:      kind,
		Quantity:  delta,
		UnitCost:  p.ProductionCostPerUnit,
		Reference: ref,
		Note:      note,
	})
}

// applyProduction adds quantity units worth batchCost to the product's
// weighted-average production cost. p must have been read under a row lock.
func (l productLedger) applyProduction(ctx context.Context, p *model.Product, quantity, batchCost decimal.Decimal, ref, userID string) error {
	newStock := costing.Quantity(p.CurrentStock.Add(quantity))
	newCost := costing.NewAverage(p.CurrentStock, p.ProductionCostPerUnit, quantity, batchCost)

	if err := l.tx.Products().UpdateCosting(ctx, p.ID, newStock, newCost, userID); err != nil {
		return lookupErr(err, "Product")
	}
	p.CurrentStock = newStock
	p.ProductionCostPerUnit = newCost

	unitCost := decimal.Zero
	if quantity.IsPositive() {
		unitCost = costing.UnitCost(batchCost.Div(quantity))
	}
	return l.tx.Movements().Create(ctx, &model.StockMovement{
		BaseModel: model.BaseModel{CreatedBy: userID, UpdatedBy: userID},
		ItemType:  model.ItemProduct,
		ItemID:    p.ID,
		ItemName:  p.ProductName,
		Kind:      model.MoveProductionIn,
		Quantity:  quantity,
		UnitCost:  unitCost,
		Reference: ref,
	})
}
