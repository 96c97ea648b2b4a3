package model

import "github.com/shopspring/decimal"

// DefaultMinStockAlert is applied when an ingredient or product is created without a threshold.
var DefaultMinStockAlert = decimal.NewFromInt(5)

// Ingredient is a raw material carried at weighted-average cost.
type Ingredient struct {
	BaseModel
	ItemCode       string          `gorm:"type:varchar(50);uniqueIndex:idx_ingredient_item_code,where:deleted_at IS NULL;not null" json:"item_code"`
	Name           string          `gorm:"type:varchar(255);not null" json:"name"`
	Category       string          `gorm:"type:varchar(100)" json:"category"`
	Unit           string          `gorm:"type:varchar(20);not null" json:"unit"`
	CurrentStock   decimal.Decimal `gorm:"type:numeric(18,4);not null;default:0" json:"current_stock"`
	AvgCostPerUnit decimal.Decimal `gorm:"type:numeric(18,4);not null;default:0" json:"avg_cost_per_unit"`
	MinStockAlert  decimal.Decimal `gorm:"type:numeric(18,4);not null;default:5" json:"min_stock_alert"`
	Image          string          `gorm:"type:varchar(512)" json:"image,omitempty"`
	LowStock       bool            `gorm:"-" json:"low_stock"`
}

// IsLowStock reports whether stock has fallen to the alert threshold.
func (i *Ingredient) IsLowStock() bool {
	return i.CurrentStock.LessThanOrEqual(i.MinStockAlert)
}
