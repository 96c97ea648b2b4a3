package repository

import (
	"context"

	"go-creamery-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecipeRepository interface {
	Create(ctx context.Context, recipe *model.Recipe) error
	Update(ctx context.Context, recipe *model.Recipe) error
	Delete(ctx context.Context, id uuid.UUID, deletedBy string) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error)
	// FindByName matches the name exactly. excludeID skips the recipe being edited.
	FindByName(ctx context.Context, name string, excludeID *uuid.UUID) (*model.Recipe, error)
	List(ctx context.Context, q ListQuery) ([]model.Recipe, int64, error)
}

type recipeRepo struct {
	db *gorm.DB
}

func NewRecipeRepo(db *gorm.DB) RecipeRepository {
	return &recipeRepo{db}
}

func orderedLines(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *recipeRepo) Create(ctx context.Context, recipe *model.Recipe) error {
	return translateError(r.db.WithContext(ctx).Create(recipe).Error)
}

// Update replaces the recipe row and its full set of lines.
func (r *recipeRepo) Update(ctx context.Context, recipe *model.Recipe) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("recipe_id = ?", recipe.ID).Delete(&model.RecipeLine{}).Error; err != nil {
		return err
	}
	if err := db.Omit("Lines").Save(recipe).Error; err != nil {
		return translateError(err)
	}
	if len(recipe.Lines) == 0 {
		return nil
	}
	for i := range recipe.Lines {
		recipe.Lines[i].ID = 0
		recipe.Lines[i].RecipeID = recipe.ID
	}
	return translateError(db.Create(&recipe.Lines).Error)
}

func (r *recipeRepo) Delete(ctx context.Context, id uuid.UUID, deletedBy string) error {
	db := r.db.WithContext(ctx)
	if err := db.Model(&model.Recipe{}).Where("id = ?", id).Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	res := db.Delete(&model.Recipe{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *recipeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := r.db.WithContext(ctx).Preload("Lines", orderedLines).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &recipe, nil
}

func (r *recipeRepo) FindByName(ctx context.Context, name string, excludeID *uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	query := r.db.WithContext(ctx).Where("recipe_name = ?", name)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.First(&recipe).Error; err != nil {
		return nil, translateError(err)
	}
	return &recipe, nil
}

func (r *recipeRepo) List(ctx context.Context, q ListQuery) ([]model.Recipe, int64, error) {
	var (
		recipes []model.Recipe
		total   int64
	)
	query := r.db.WithContext(ctx).Model(&model.Recipe{})
	if q.Search != "" {
		query = query.Where("recipe_name ILIKE ?", q.Pattern())
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Lines", orderedLines).
		Order("created_at DESC").Offset(q.Offset()).Limit(q.Limit).
		Find(&recipes).Error
	return recipes, total, err
}
