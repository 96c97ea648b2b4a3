package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the finished good produced from exactly one recipe.
type Product struct {
	BaseModel
	RecipeID              uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"recipe_id"`
	ProductName           string          `gorm:"type:varchar(255);not null" json:"product_name"`
	Unit                  string          `gorm:"type:varchar(20)" json:"unit"`
	CurrentStock          decimal.Decimal `gorm:"type:numeric(18,4);not null;default:0" json:"current_stock"`
	ProductionCostPerUnit decimal.Decimal `gorm:"type:numeric(18,4);not null;default:0" json:"production_cost_per_unit"`
	SellingPrice          decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"selling_price"`
	MinStockAlert         decimal.Decimal `gorm:"type:numeric(18,4);not null;default:5" json:"min_stock_alert"`
	Image                 string          `gorm:"type:varchar(512)" json:"image,omitempty"`
}

// IsSellable reports whether the product may appear on the menu or be ordered.
func (p *Product) IsSellable() bool {
	return p.SellingPrice.IsPositive() && p.CurrentStock.IsPositive()
}

// MenuItem is the public projection of a product. It never carries cost.
type MenuItem struct {
	ID           uuid.UUID       `json:"id"`
	ProductName  string          `json:"product_name"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	Image        string          `json:"image,omitempty"`
}

func (p *Product) ToMenuItem() MenuItem {
	return MenuItem{
		ID:           p.ID,
		ProductName:  p.ProductName,
		SellingPrice: p.SellingPrice,
		Unit:         p.Unit,
		CurrentStock: p.CurrentStock,
		Image:        p.Image,
	}
}
