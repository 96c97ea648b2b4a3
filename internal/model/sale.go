package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultPaymentMethod = "Cash"

// Sale sources
const (
	SaleSourcePOS   = "POS"
	SaleSourceTable = "TABLE"
)

// Sale is an immutable invoice.
type Sale struct {
	BaseModel
	InvoiceNo     string          `gorm:"type:varchar(32);uniqueIndex;not null" json:"invoice_no"`
	Items         []SaleItem      `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"total_amount"`
	TotalProfit   decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"total_profit"`
	PaymentMethod string          `gorm:"type:varchar(30);not null;default:'Cash'" json:"payment_method"`
	Source        string          `gorm:"type:varchar(10);not null;default:'POS'" json:"source"`
	TableOrderID  *uuid.UUID      `gorm:"type:uuid;index" json:"table_order_id,omitempty"`
}

type SaleItem struct {
	ID             uint            `gorm:"primaryKey" json:"-"`
	SaleID         uuid.UUID       `gorm:"type:uuid;index;not null" json:"-"`
	ProductID      uuid.UUID       `gorm:"type:uuid;index;not null" json:"product_id"`
	ProductName    string          `gorm:"type:varchar(255);not null" json:"product_name"`
	Quantity       decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"quantity"`
	UnitPrice      decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"unit_price"`
	LineTotal      decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"line_total"`
	ProductionCost decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"production_cost"`
	Profit         decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"profit"`
}
