package repository

import (
	"context"

	"go-creamery-pos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IngredientRepository interface {
	Create(ctx context.Context, ingredient *model.Ingredient) error
	UpdateDetails(ctx context.Context, ingredient *model.Ingredient) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Ingredient, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Ingredient, error)
	FindByItemCode(ctx context.Context, code string) (*model.Ingredient, error)
	List(ctx context.Context, q ListQuery) ([]model.Ingredient, int64, error)
	AdjustStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal, updatedBy string) error
	UpdateCosting(ctx context.Context, id uuid.UUID, stock, avgCost decimal.Decimal, updatedBy string) error
	CountLowStock(ctx context.Context) (int64, error)
}

type ingredientRepo struct {
	db *gorm.DB
}

func NewIngredientRepo(db *gorm.DB) IngredientRepository {
	return &ingredientRepo{db}
}

func (r *ingredientRepo) Create(ctx context.Context, ingredient *model.Ingredient) error {
	return translateError(r.db.WithContext(ctx).Create(ingredient).Error)
}

// UpdateDetails writes metadata only. Stock and cost belong to the ledger.
func (r *ingredientRepo) UpdateDetails(ctx context.Context, ingredient *model.Ingredient) error {
	err := r.db.WithContext(ctx).Model(ingredient).
		Select("item_code", "name", "category", "unit", "min_stock_alert", "image", "updated_by", "updated_at").
		Updates(ingredient).Error
	return translateError(err)
}

func (r *ingredientRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	if err := r.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &ingredient, nil
}

func (r *ingredientRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ingredient, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &ingredient, nil
}

func (r *ingredientRepo) FindByItemCode(ctx context.Context, code string) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	if err := r.db.WithContext(ctx).Where("item_code = ?", code).First(&ingredient).Error; err != nil {
		return nil, translateError(err)
	}
	return &ingredient, nil
}

func (r *ingredientRepo) List(ctx context.Context, q ListQuery) ([]model.Ingredient, int64, error) {
	var (
		ingredients []model.Ingredient
		total       int64
	)
	query := r.db.WithContext(ctx).Model(&model.Ingredient{})
	if q.Search != "" {
		query = query.Where("name ILIKE ? OR item_code ILIKE ?", q.Pattern(), q.Pattern())
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").Offset(q.Offset()).Limit(q.Limit).Find(&ingredients).Error
	return ingredients, total, err
}

func (r *ingredientRepo) AdjustStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal, updatedBy string) error {
	return applyStockDelta(r.db.WithContext(ctx), &model.Ingredient{}, id, delta, updatedBy)
}

// UpdateCosting persists a recomputed stock and average cost. Callers hold the row lock.
func (r *ingredientRepo) UpdateCosting(ctx context.Context, id uuid.UUID, stock, avgCost decimal.Decimal, updatedBy string) error {
	res := r.db.WithContext(ctx).Model(&model.Ingredient{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"current_stock":     stock,
			"avg_cost_per_unit": avgCost,
			"updated_by":        updatedBy,
		})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ingredientRepo) CountLowStock(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Ingredient{}).
		Where("current_stock <= min_stock_alert").
		Count(&count).Error
	return count, err
}
