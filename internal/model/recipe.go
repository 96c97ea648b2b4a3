package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Recipe is the formula for one standard batch of a finished good.
type Recipe struct {
	BaseModel
	RecipeName   string          `gorm:"type:varchar(255);uniqueIndex:idx_recipe_name,where:deleted_at IS NULL;not null" json:"recipe_name"`
	OutputYield  decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"output_yield"`
	YieldUnit    string          `gorm:"type:varchar(20);not null" json:"yield_unit"`
	Instructions string          `gorm:"type:text" json:"instructions"`
	Lines        []RecipeLine    `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
}

// RecipeLine is one ingredient requirement per standard batch. Name and unit
// are captured when the recipe is written.
type RecipeLine struct {
	ID             uint            `gorm:"primaryKey" json:"-"`
	RecipeID       uuid.UUID       `gorm:"type:uuid;index;not null" json:"-"`
	Position       int             `gorm:"not null" json:"position"`
	IngredientID   uuid.UUID       `gorm:"type:uuid;not null" json:"ingredient_id"`
	IngredientName string          `gorm:"type:varchar(255);not null" json:"ingredient_name"`
	Quantity       decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"quantity"`
	Unit           string          `gorm:"type:varchar(20)" json:"unit"`
}
