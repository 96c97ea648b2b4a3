package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go-creamery-pos/internal/costing"
	"go-creamery-pos/internal/events"
	"go-creamery-pos/internal/model"
	"go-creamery-pos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductionService interface {
	Produce(ctx context.Context, req *ProduceRequest, userID string) (*ProductionResult, error)
	ListBatches(ctx context.Context, q repository.ListQuery) (*repository.Page[model.ProductionBatch], error)
}

type ProduceRequest struct {
	RecipeID       uuid.UUID       `json:"recipe_id" validate:"uuid_required"`
	QuantityToMake decimal.Decimal `json:"quantity_to_make" validate:"dgt0"`
}

type ProductionResult struct {
	Product *model.Product         `json:"product"`
	Batch   *model.ProductionBatch `json:"batch"`
}

// deduction is one planned ingredient draw for a production run.
type deduction struct {
	ingredient *model.Ingredient
	required   decimal.Decimal
}

type productionService struct {
	store   repository.Store
	events  events.Publisher
	menu    MenuCache
	metrics Metrics
}

func NewProductionService(store repository.Store, publisher events.Publisher, menu MenuCache, m Metrics) ProductionService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	if menu == nil {
		menu = nopMenuCache{}
	}
	if m == nil {
		m = nopMetrics{}
	}
	return &productionService{store: store, events: publisher, menu: menu, metrics: m}
}

// Produce turns ingredients into finished goods. Every recipe line is checked
// against stock before any ingredient is drawn, and the whole run commits or
// rolls back as one unit.
func (s *productionService) Produce(ctx context.Context, req *ProduceRequest, userID string) (*ProductionResult, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	quantity := costing.Quantity(req.QuantityToMake)
	if !quantity.IsPositive() {
		return nil, invalidInput("Quantity to make must be greater than zero")
	}

	var result ProductionResult
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		recipe, err := tx.Recipes().FindByID(ctx, req.RecipeID)
		if err != nil {
			return lookupErr(err, "Recipe")
		}
		if len(recipe.Lines) == 0 {
			return invalidInput("Recipe '%s' has no ingredients", recipe.RecipeName)
		}

		batch := &model.ProductionBatch{
			RecipeID:   recipe.ID,
			RecipeName: recipe.RecipeName,
			Quantity:   quantity,
			BatchRatio: costing.UnitCost(costing.BatchRatio(quantity, recipe.OutputYield)),
		}
		batch.ID = uuid.New()
		batch.Stamp(userID)
		ref := batch.ID.String()

		plan, totalCost, err := planDeductions(ctx, tx, recipe, costing.BatchRatio(quantity, recipe.OutputYield))
		if err != nil {
			return err
		}

		ledger := ingredientLedger{tx: tx}
		for _, d := range plan {
			if err := ledger.adjustStock(ctx, d.ingredient, d.required.Neg(), model.MoveProductionOut, ref, "", userID); err != nil {
				return err
			}
			batch.Lines = append(batch.Lines, model.ProductionBatchLine{
				IngredientID:   d.ingredient.ID,
				IngredientName: d.ingredient.Name,
				Quantity:       d.required,
				UnitCost:       d.ingredient.AvgCostPerUnit,
				LineCost:       costing.UnitCost(d.required.Mul(d.ingredient.AvgCostPerUnit)),
			})
		}

		seed := &model.Product{
			RecipeID:      recipe.ID,
			ProductName:   recipe.RecipeName,
			Unit:          recipe.YieldUnit,
			MinStockAlert: model.DefaultMinStockAlert,
		}
		seed.Stamp(userID)
		product, err := tx.Products().EnsureForRecipe(ctx, seed)
		if err != nil {
			return err
		}

		if err := (productLedger{tx: tx}).applyProduction(ctx, product, quantity, totalCost, ref, userID); err != nil {
			return err
		}

		batch.ProductID = product.ID
		batch.TotalCost = totalCost
		batch.UnitCost = costing.UnitCost(totalCost.Div(quantity))
		if err := tx.Productions().Create(ctx, batch); err != nil {
			return err
		}

		result = ProductionResult{Product: product, Batch: batch}
		return nil
	})
	if err != nil {
		s.metrics.ProductionRun(false)
		if errors.Is(err, ErrInsufficientStock) {
			s.metrics.StockRejected("production")
		}
		return nil, err
	}

	s.metrics.ProductionRun(true)
	s.menu.InvalidateMenu(ctx)
	s.events.Publish(ctx, events.Event{
		Type:    events.TypeStock,
		Action:  "production_completed",
		Data:    result,
		UserID:  userID,
		Message: fmt.Sprintf("Produced %s %s of '%s'", quantity, result.Product.Unit, result.Product.ProductName),
	})
	return &result, nil
}

// planDeductions locks every ingredient the recipe uses and checks that all
// of them can cover the run. Nothing is written. Ingredients are locked in id
// order so concurrent runs cannot deadlock each other.
func planDeductions(ctx context.Context, tx repository.Store, recipe *model.Recipe, ratio decimal.Decimal) ([]deduction, decimal.Decimal, error) {
	ids := make([]uuid.UUID, 0, len(recipe.Lines))
	seen := map[uuid.UUID]bool{}
	for _, line := range recipe.Lines {
		if !seen[line.IngredientID] {
			seen[line.IngredientID] = true
			ids = append(ids, line.IngredientID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	locked := make(map[uuid.UUID]*model.Ingredient, len(ids))
	for _, id := range ids {
		ing, err := tx.Ingredients().FindByIDForUpdate(ctx, id)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, decimal.Zero, err
		}
		locked[id] = ing
	}

	var (
		plan      []deduction
		totalCost = decimal.Zero
		drawn     = map[uuid.UUID]decimal.Decimal{}
	)
	for _, line := range recipe.Lines {
		required := costing.Quantity(line.Quantity.Mul(ratio))
		ing := locked[line.IngredientID]
		if ing == nil {
			return nil, decimal.Zero, &InsufficientStockError{Item: line.IngredientName, Required: required, Available: decimal.Zero}
		}

		cumulative := drawn[ing.ID].Add(required)
		if ing.CurrentStock.LessThan(cumulative) {
			return nil, decimal.Zero, &InsufficientStockError{Item: ing.Name, Required: cumulative, Available: ing.CurrentStock}
		}
		drawn[ing.ID] = cumulative

		totalCost = totalCost.Add(required.Mul(ing.AvgCostPerUnit))
		plan = append(plan, deduction{ingredient: ing, required: required})
	}
	return plan, costing.UnitCost(totalCost), nil
}

func (s *productionService) ListBatches(ctx context.Context, q repository.ListQuery) (*repository.Page[model.ProductionBatch], error) {
	q = q.Normalize()
	items, total, err := s.store.Productions().List(ctx, q)
	if err != nil {
		return nil, err
	}
	return repository.NewPage(items, total, q), nil
}
