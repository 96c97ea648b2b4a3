package repository

import (
	"context"

	"go-creamery-pos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Product, error)
	// EnsureForRecipe inserts p unless a product for p.RecipeID already exists,
	// then returns the stored row locked for update.
	EnsureForRecipe(ctx context.Context, p *model.Product) (*model.Product, error)
	FindAll(ctx context.Context) ([]model.Product, error)
	FindSellable(ctx context.Context) ([]model.Product, error)
	UpdateDetails(ctx context.Context, product *model.Product) error
	UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal, updatedBy string) error
	AdjustStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal, updatedBy string) error
	UpdateCosting(ctx context.Context, id uuid.UUID, stock, costPerUnit decimal.Decimal, updatedBy string) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &product, nil
}

func (r *productRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &product, nil
}

func (r *productRepo) EnsureForRecipe(ctx context.Context, p *model.Product) (*model.Product, error) {
	db := r.db.WithContext(ctx)
	if err := insertProductForRecipe(db, p).Error; err != nil {
		return nil, translateError(err)
	}

	var product model.Product
	if err := lockProductForRecipe(db, p.RecipeID, &product).Error; err != nil {
		return nil, translateError(err)
	}
	return &product, nil
}

// insertProductForRecipe is a no-op when the recipe already has a product.
func insertProductForRecipe(db *gorm.DB, p *model.Product) *gorm.DB {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "recipe_id"}},
		DoNothing: true,
	}).Create(p)
}

func lockProductForRecipe(db *gorm.DB, recipeID uuid.UUID, dest *model.Product) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("recipe_id = ?", recipeID).
		First(dest)
}

func (r *productRepo) FindAll(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Order("product_name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindSellable(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("current_stock > 0 AND selling_price > 0").
		Order("product_name ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) UpdateDetails(ctx context.Context, product *model.Product) error {
	res := r.db.WithContext(ctx).Model(product).
		Select("product_name", "unit", "min_stock_alert", "image", "updated_by", "updated_at").
		Updates(product)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepo) UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal, updatedBy string) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).
		Updates(map[string]interface{}{"selling_price": price, "updated_by": updatedBy})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepo) AdjustStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal, updatedBy string) error {
	return applyStockDelta(r.db.WithContext(ctx), &model.Product{}, id, delta, updatedBy)
}

func (r *productRepo) UpdateCosting(ctx context.Context, id uuid.UUID, stock, costPerUnit decimal.Decimal, updatedBy string) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"current_stock":            stock,
			"production_cost_per_unit": costPerUnit,
			"updated_by":               updatedBy,
		})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
