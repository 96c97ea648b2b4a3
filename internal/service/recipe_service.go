package service

import (
	"context"
	"errors"

	"go-creamery-pos/internal/costing"
	"go-creamery-pos/internal/model"
	"go-creamery-pos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RecipeService interface {
	CreateRecipe(ctx context.Context, req *RecipeRequest, userID string) (*model.Recipe, error)
	UpdateRecipe(ctx context.Context, id uuid.UUID, req *RecipeRequest, userID string) (*model.Recipe, error)
	DeleteRecipe(ctx context.Context, id uuid.UUID, userID string) error
	GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error)
	ListRecipes(ctx context.Context, q repository.ListQuery) (*repository.Page[model.Recipe], error)
}

type RecipeRequest struct {
	RecipeName   string              `json:"recipe_name" validate:"required,max=255"`
	OutputYield  decimal.Decimal     `json:"output_yield" validate:"dgt0"`
	YieldUnit    string              `json:"yield_unit" validate:"required,max=20"`
	Instructions string              `json:"instructions"`
	Ingredients  []RecipeLineRequest `json:"ingredients" validate:"required,min=1,dive"`
}

type RecipeLineRequest struct {
	IngredientID uuid.UUID       `json:"ingredient_id" validate:"uuid_required"`
	Quantity     decimal.Decimal `json:"quantity" validate:"dgt0"`
}

type recipeService struct {
	store repository.Store
}

func NewRecipeService(store repository.Store) RecipeService {
	return &recipeService{store: store}
}

func (s *recipeService) CreateRecipe(ctx context.Context, req *RecipeRequest, userID string) (*model.Recipe, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueName(ctx, req.RecipeName, nil); err != nil {
		return nil, err
	}

	lines, err := s.buildLines(ctx, req.Ingredients)
	if err != nil {
		return nil, err
	}

	recipe := &model.Recipe{
		RecipeName:   req.RecipeName,
		OutputYield:  costing.Quantity(req.OutputYield),
		YieldUnit:    req.YieldUnit,
		Instructions: req.Instructions,
		Lines:        lines,
	}
	recipe.Stamp(userID)

	if err := s.store.Recipes().Create(ctx, recipe); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("Recipe name already exists")
		}
		return nil, err
	}
	return recipe, nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, req *RecipeRequest, userID string) (*model.Recipe, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	var recipe *model.Recipe
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		existing, err := tx.Recipes().FindByID(ctx, id)
		if err != nil {
			return lookupErr(err, "Recipe")
		}
		if err := (&recipeService{store: tx}).ensureUniqueName(ctx, req.RecipeName, &id); err != nil {
			return err
		}
		lines, err := (&recipeService{store: tx}).buildLines(ctx, req.Ingredients)
		if err != nil {
			return err
		}

		existing.RecipeName = req.RecipeName
		existing.OutputYield = costing.Quantity(req.OutputYield)
		existing.YieldUnit = req.YieldUnit
		existing.Instructions = req.Instructions
		existing.Lines = lines
		existing.UpdatedBy = userID

		if err := tx.Recipes().Update(ctx, existing); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return conflict("Recipe name already exists")
			}
			return err
		}
		recipe = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

// DeleteRecipe soft-deletes the recipe. Its product and past batches and sales are kept.
func (s *recipeService) DeleteRecipe(ctx context.Context, id uuid.UUID, userID string) error {
	if err := s.store.Recipes().Delete(ctx, id, userID); err != nil {
		return lookupErr(err, "Recipe")
	}
	return nil
}

func (s *recipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	recipe, err := s.store.Recipes().FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "Recipe")
	}
	return recipe, nil
}

func (s *recipeService) ListRecipes(ctx context.Context, q repository.ListQuery) (*repository.Page[model.Recipe], error) {
	q = q.Normalize()
	items, total, err := s.store.Recipes().List(ctx, q)
	if err != nil {
		return nil, err
	}
	return repository.NewPage(items, total, q), nil
}

func (s *recipeService) ensureUniqueName(ctx context.Context, name string, excludeID *uuid.UUID) error {
	_, err := s.store.Recipes().FindByName(ctx, name, excludeID)
	switch {
	case err == nil:
		return conflict("Recipe name already exists")
	case errors.Is(err, repository.ErrNotFound):
		return nil
	}
	return err
}

// buildLines snapshots each ingredient's name and unit onto the recipe line.
func (s *recipeService) buildLines(ctx context.Context, reqs []RecipeLineRequest) ([]model.RecipeLine, error) {
	lines := make([]model.RecipeLine, 0, len(reqs))
	for i, req := range reqs {
		ing, err := s.store.Ingredients().FindByID(ctx, req.IngredientID)
		if err != nil {
			return nil, lookupErr(err, "Ingredient "+req.IngredientID.String())
		}
		lines = append(lines, model.RecipeLine{
			Position:       i + 1,
			IngredientID:   ing.ID,
			IngredientName: ing.Name,
			Quantity:       costing.Quantity(req.Quantity),
			Unit:           ing.Unit,
		})
	}
	return lines, nil
}
