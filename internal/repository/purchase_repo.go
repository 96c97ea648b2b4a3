package repository

import (
	"context"

	"go-creamery-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseRepository interface {
	Create(ctx context.Context, purchase *model.Purchase) error
	List(ctx context.Context, ingredientID *uuid.UUID, q ListQuery) ([]model.Purchase, int64, error)
}

type purchaseRepo struct {
	db *gorm.DB
}

func NewPurchaseRepo(db *gorm.DB) PurchaseRepository {
	return &purchaseRepo{db}
}

func (r *purchaseRepo) Create(ctx context.Context, purchase *model.Purchase) error {
	return translateError(r.db.WithContext(ctx).Create(purchase).Error)
}

func (r *purchaseRepo) List(ctx context.Context, ingredientID *uuid.UUID, q ListQuery) ([]model.Purchase, int64, error) {
	var (
		purchases []model.Purchase
		total     int64
	)
	query := r.db.WithContext(ctx).Model(&model.Purchase{})
	if ingredientID != nil {
		query = query.Where("ingredient_id = ?", *ingredientID)
	}
	if q.Search != "" {
		query = query.Where("ingredient_name ILIKE ? OR supplier ILIKE ?", q.Pattern(), q.Pattern())
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("purchased_at DESC").Offset(q.Offset()).Limit(q.Limit).Find(&purchases).Error
	return purchases, total, err
}
