package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-creamery-pos/internal/costing"
	"go-creamery-pos/internal/events"
	"go-creamery-pos/internal/model"
	"go-creamery-pos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InventoryService interface {
	CreateIngredient(ctx context.Context, req *IngredientRequest, userID string) (*model.Ingredient, error)
	UpdateIngredient(ctx context.Context, id uuid.UUID, req *IngredientRequest, userID string) (*model.Ingredient, error)
	GetIngredient(ctx context.Context, id uuid.UUID) (*model.Ingredient, error)
	ListIngredients(ctx context.Context, q repository.ListQuery) (*repository.Page[model.Ingredient], error)
	AdjustStock(ctx context.Context, id uuid.UUID, req *StockAdjustmentRequest, userID string) (*model.Ingredient, error)
	RecordPurchase(ctx context.Context, req *PurchaseRequest, userID string) (*PurchaseResult, error)
	ListPurchases(ctx context.Context, ingredientID *uuid.UUID, q repository.ListQuery) (*repository.Page[model.Purchase], error)
}

type IngredientRequest struct {
	ItemCode      string           `json:"item_code" validate:"required,max=50"`
	Name          string           `json:"name" validate:"required,max=255"`
	Category      string           `json:"category" validate:"max=100"`
	Unit          string           `json:"unit" validate:"required,max=20"`
	MinStockAlert *decimal.Decimal `json:"min_stock_alert" validate:"omitempty,dgte0"`
	Image         string           `json:"image" validate:"max=512"`
}

// StockAdjustmentRequest is a manual correction; Delta is signed.
type StockAdjustmentRequest struct {
	Delta decimal.Decimal `json:"delta"`
	Note  string          `json:"note" validate:"max=500"`
}

type PurchaseRequest struct {
	IngredientID uuid.UUID       `json:"ingredient_id" validate:"uuid_required"`
	Quantity     decimal.Decimal `json:"quantity" validate:"dgt0"`
	Supplier     string          `json:"supplier" validate:"max=255"`
	UnitPrice    decimal.Decimal `json:"unit_price" validate:"dgte0"`
}

type PurchaseResult struct {
	Purchase       *model.Purchase `json:"purchase"`
	CurrentStock   decimal.Decimal `json:"current_stock"`
	AvgCostPerUnit decimal.Decimal `json:"avg_cost_per_unit"`
}

type inventoryService struct {
	store   repository.Store
	events  events.Publisher
	metrics Metrics
	now     func() time.Time
}

func NewInventoryService(store repository.Store, publisher events.Publisher, m Metrics) InventoryService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	if m == nil {
		m = nopMetrics{}
	}
	return &inventoryService{store: store, events: publisher, metrics: m, now: time.Now}
}

func (s *inventoryService) CreateIngredient(ctx context.Context, req *IngredientRequest, userID string) (*model.Ingredient, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	existing, err := s.store.Ingredients().FindByItemCode(ctx, req.ItemCode)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, conflict("Item code already exists")
	}

	ingredient := &model.Ingredient{
		ItemCode:       req.ItemCode,
		Name:           req.Name,
		Category:       req.Category,
		Unit:           req.Unit,
		CurrentStock:   decimal.Zero,
		AvgCostPerUnit: decimal.Zero,
		MinStockAlert:  model.DefaultMinStockAlert,
		Image:          req.Image,
	}
	if req.MinStockAlert != nil {
		ingredient.MinStockAlert = costing.Quantity(*req.MinStockAlert)
	}
	ingredient.Stamp(userID)

	if err := s.store.Ingredients().Create(ctx, ingredient); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("Item code already exists")
		}
		return nil, err
	}
	return ingredient, nil
}

func (s *inventoryService) UpdateIngredient(ctx context.Context, id uuid.UUID, req *IngredientRequest, userID string) (*model.Ingredient, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	ingredient, err := s.store.Ingredients().FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "Ingredient")
	}

	if req.ItemCode != ingredient.ItemCode {
		other, err := s.store.Ingredients().FindByItemCode(ctx, req.ItemCode)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if other != nil && other.ID != ingredient.ID {
			return nil, conflict("Item code already exists")
		}
	}

	ingredient.ItemCode = req.ItemCode
	ingredient.Name = req.Name
	ingredient.Category = req.Category
	ingredient.Unit = req.Unit
	ingredient.Image = req.Image
	if req.MinStockAlert != nil {
		ingredient.MinStockAlert = costing.Quantity(*req.MinStockAlert)
	}
	ingredient.UpdatedBy = userID

	if err := s.store.Ingredients().UpdateDetails(ctx, ingredient); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("Item code already exists")
		}
		return nil, err
	}
	return ingredient, nil
}

func (s *inventoryService) GetIngredient(ctx context.Context, id uuid.UUID) (*model.Ingredient, error) {
	ingredient, err := s.store.Ingredients().FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "Ingredient")
	}
	ingredient.LowStock = ingredient.IsLowStock()
	return ingredient, nil
}

func (s *inventoryService) ListIngredients(ctx context.Context, q repository.ListQuery) (*repository.Page[model.Ingredient], error) {
	q = q.Normalize()
	items, total, err := s.store.Ingredients().List(ctx, q)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].LowStock = items[i].IsLowStock()
	}
	return repository.NewPage(items, total, q), nil
}

func (s *inventoryService) AdjustStock(ctx context.Context, id uuid.UUID, req *StockAdjustmentRequest, userID string) (*model.Ingredient, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	delta := costing.Quantity(req.Delta)
	if delta.IsZero() {
		return nil, invalidInput("Adjustment must not be zero")
	}

	var ingredient *model.Ingredient
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		ing, err := tx.Ingredients().FindByIDForUpdate(ctx, id)
		if err != nil {
			return lookupErr(err, "Ingredient")
		}
		if err := (ingredientLedger{tx: tx}).adjustStock(ctx, ing, delta, model.MoveAdjust, "manual", req.Note, userID); err != nil {
			return err
		}
		ingredient = ing
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientStock) {
			s.metrics.StockRejected("adjustment")
		}
		return nil, err
	}

	s.events.Publish(ctx, events.Event{
		Type:    events.TypeStock,
		Action:  "ingredient_adjusted",
		Data:    ingredient,
		UserID:  userID,
		Message: fmt.Sprintf("Stock of '%s' adjusted by %s %s", ingredient.Name, delta, ingredient.Unit),
	})
	return ingredient, nil
}

// RecordPurchase stores the purchase and folds it into the ingredient's
// weighted-average cost in one transaction.
func (s *inventoryService) RecordPurchase(ctx context.Context, req *PurchaseRequest, userID string) (*PurchaseResult, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	quantity := costing.Quantity(req.Quantity)
	if !quantity.IsPositive() {
		return nil, invalidInput("Quantity must be greater than zero")
	}
	unitPrice := costing.UnitCost(req.UnitPrice)

	var result PurchaseResult
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		ing, err := tx.Ingredients().FindByIDForUpdate(ctx, req.IngredientID)
		if err != nil {
			return lookupErr(err, "Ingredient")
		}

		purchase := &model.Purchase{
			IngredientID:   ing.ID,
			IngredientName: ing.Name,
			Quantity:       quantity,
			Supplier:       req.Supplier,
			UnitPrice:      unitPrice,
			TotalPrice:     costing.Money(quantity.Mul(unitPrice)),
			PurchasedAt:    s.now().UTC(),
		}
		purchase.Stamp(userID)
		if err := tx.Purchases().Create(ctx, purchase); err != nil {
			return err
		}

		if err := (ingredientLedger{tx: tx}).applyPurchase(ctx, ing, quantity, unitPrice, purchase.ID.String(), userID); err != nil {
			return err
		}

		result = PurchaseResult{
			Purchase:       purchase,
			CurrentStock:   ing.CurrentStock,
			AvgCostPerUnit: ing.AvgCostPerUnit,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.PurchaseRecorded()
	s.events.Publish(ctx, events.Event{
		Type:   events.TypeStock,
		Action: "purchase_recorded",
		Data: map[string]interface{}{
			"ingredient_id":     req.IngredientID,
			"current_stock":     result.CurrentStock,
			"avg_cost_per_unit": result.AvgCostPerUnit,
		},
		UserID:  userID,
		Message: fmt.Sprintf("Purchased %s of '%s'", result.Purchase.Quantity, result.Purchase.IngredientName),
	})
	return &result, nil
}

func (s *inventoryService) ListPurchases(ctx context.Context, ingredientID *uuid.UUID, q repository.ListQuery) (*repository.Page[model.Purchase], error) {
	q = q.Normalize()
	items, total, err := s.store.Purchases().List(ctx, ingredientID, q)
	if err != nil {
		return nil, err
	}
	return repository.NewPage(items, total, q), nil
}
