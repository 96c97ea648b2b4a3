package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiningTable is a physical table reachable through its QR code.
type DiningTable struct {
	BaseModel
	TableNo   int    `gorm:"uniqueIndex:idx_table_no,where:deleted_at IS NULL;not null" json:"table_no"`
	Passcode  string `gorm:"type:varchar(32);not null" json:"passcode"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`
	QRCodeURL string `gorm:"-" json:"qr_code_url,omitempty"`
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderConfirmed OrderStatus = "Confirmed"
	OrderCompleted OrderStatus = "Completed"
	OrderCancelled OrderStatus = "Cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderCompleted, OrderCancelled},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// CanTransitionTo reports whether staff may move an order from s to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TableOrder is a customer cart staged from a table session.
type TableOrder struct {
	BaseModel
	TableID      uuid.UUID        `gorm:"type:uuid;index;not null" json:"table_id"`
	TableNo      int              `gorm:"not null" json:"table_no"`
	Items        []TableOrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount  decimal.Decimal  `gorm:"type:numeric(18,2);not null" json:"total_amount"`
	Status       OrderStatus      `gorm:"type:varchar(20);index;not null;default:'Pending'" json:"status"`
	CustomerNote string           `gorm:"type:text" json:"customer_note,omitempty"`
	InvoiceNo    string           `gorm:"type:varchar(32)" json:"invoice_no,omitempty"`
	SaleID       *uuid.UUID       `gorm:"type:uuid" json:"sale_id,omitempty"`
}

// TableOrderItem captures the selling price at placement time.
type TableOrderItem struct {
	ID          uint            `gorm:"primaryKey" json:"-"`
	OrderID     uuid.UUID       `gorm:"type:uuid;index;not null" json:"-"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null" json:"product_id"`
	ProductName string          `gorm:"type:varchar(255);not null" json:"product_name"`
	Quantity    decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"unit_price"`
	TotalPrice  decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"total_price"`
}
