package repository

import (
	"context"

	"go-creamery-pos/internal/model"

	"gorm.io/gorm"
)

type ProductionRepository interface {
	Create(ctx context.Context, batch *model.ProductionBatch) error
	List(ctx context.Context, q ListQuery) ([]model.ProductionBatch, int64, error)
}

type productionRepo struct {
	db *gorm.DB
}

func NewProductionRepo(db *gorm.DB) ProductionRepository {
	return &productionRepo{db}
}

func (r *productionRepo) Create(ctx context.Context, batch *model.ProductionBatch) error {
	return translateError(r.db.WithContext(ctx).Create(batch).Error)
}

func (r *productionRepo) List(ctx context.Context, q ListQuery) ([]model.ProductionBatch, int64, error) {
	var (
		batches []model.ProductionBatch
		total   int64
	)
	query := r.db.WithContext(ctx).Model(&model.ProductionBatch{})
	if q.Search != "" {
		query = query.Where("recipe_name ILIKE ?", q.Pattern())
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Lines").
		Order("created_at DESC").Offset(q.Offset()).Limit(q.Limit).
		Find(&batches).Error
	return batches, total, err
}
