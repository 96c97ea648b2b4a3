package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase is an immutable procurement record.
type Purchase struct {
	BaseModel
	IngredientID   uuid.UUID       `gorm:"type:uuid;index;not null" json:"ingredient_id"`
	IngredientName string          `gorm:"type:varchar(255);not null" json:"ingredient_name"`
	Quantity       decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"quantity"`
	Supplier       string          `gorm:"type:varchar(255)" json:"supplier"`
	UnitPrice      decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"unit_price"`
	TotalPrice     decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"total_price"`
	PurchasedAt    time.Time       `gorm:"not null;index" json:"purchased_at"`
}
