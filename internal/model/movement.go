package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ItemType string

const (
	ItemIngredient ItemType = "ingredient"
	ItemProduct    ItemType = "product"
)

type MovementKind string

const (
	MovePurchase      MovementKind = "PURCHASE"
	MoveProductionIn  MovementKind = "PRODUCTION_IN"
	MoveProductionOut MovementKind = "PRODUCTION_OUT"
	MoveSale          MovementKind = "SALE"
	MoveAdjust        MovementKind = "ADJUST"
)

// StockMovement is an append-only log entry for every ledger mutation.
// Quantity is signed: positive adds stock, negative removes it.
type StockMovement struct {
	BaseModel
	ItemType  ItemType        `gorm:"type:varchar(20);index:idx_movement_item;not null" json:"item_type"`
	ItemID    uuid.UUID       `gorm:"type:uuid;index:idx_movement_item;not null" json:"item_id"`
	ItemName  string          `gorm:"type:varchar(255)" json:"item_name"`
	Kind      MovementKind    `gorm:"type:varchar(20);index;not null" json:"kind"`
	Quantity  decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"quantity"`
	UnitCost  decimal.Decimal `gorm:"type:numeric(18,4);not null;default:0" json:"unit_cost"`
	Reference string          `gorm:"type:varchar(64)" json:"reference,omitempty"`
	Note      string          `gorm:"type:text" json:"note,omitempty"`
}
