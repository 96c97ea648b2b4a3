package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductionBatch records one successful production run and its cost snapshot.
type ProductionBatch struct {
	BaseModel
	RecipeID   uuid.UUID             `gorm:"type:uuid;index;not null" json:"recipe_id"`
	ProductID  uuid.UUID             `gorm:"type:uuid;index;not null" json:"product_id"`
	RecipeName string                `gorm:"type:varchar(255);not null" json:"recipe_name"`
	Quantity   decimal.Decimal       `gorm:"type:numeric(18,4);not null" json:"quantity"`
	BatchRatio decimal.Decimal       `gorm:"type:numeric(18,4);not null" json:"batch_ratio"`
	TotalCost  decimal.Decimal       `gorm:"type:numeric(18,4);not null" json:"total_cost"`
	UnitCost   decimal.Decimal       `gorm:"type:numeric(18,4);not null" json:"unit_cost"`
	Lines      []ProductionBatchLine `gorm:"foreignKey:BatchID;constraint:OnDelete:CASCADE" json:"lines"`
}

type ProductionBatchLine struct {
	ID             uint            `gorm:"primaryKey" json:"-"`
	BatchID        uuid.UUID       `gorm:"type:uuid;index;not null" json:"-"`
	IngredientID   uuid.UUID       `gorm:"type:uuid;not null" json:"ingredient_id"`
	IngredientName string          `gorm:"type:varchar(255);not null" json:"ingredient_name"`
	Quantity       decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"quantity"`
	UnitCost       decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"unit_cost"`
	LineCost       decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"line_cost"`
}
