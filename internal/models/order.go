package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses. There is no enforced transition graph; UpdateStatus only
// checks membership in this set.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// OrderItem is a row of the order_product association table: one product line
// within an order, carrying the ordered quantity.
type OrderItem struct {
	OrderID   string `json:"-" gorm:"primaryKey;type:uuid"`
	ProductID string `json:"product_id" gorm:"primaryKey;type:uuid" validate:"required,uuid"`
	Quantity  int    `json:"quantity" gorm:"default:1" validate:"required,gt=0"`
}

// TableName keeps the original association table name.
func (OrderItem) TableName() string { return "order_product" }

// Order represents a customer order. Items are explicit join rows rather than
// a GORM many2many relation so each access pattern stays a separate query.
type Order struct {
	ID                string          `json:"id" gorm:"primaryKey;type:uuid" validate:"omitempty,uuid"`
	UserID            string          `json:"user_id" gorm:"type:uuid;not null;index" validate:"required,uuid"`
	DeliveryAddressID string          `json:"delivery_address_id" gorm:"type:uuid;not null" validate:"required,uuid"`
	TotalAmount       decimal.Decimal `json:"total_amount" gorm:"type:numeric;not null"`
	Status            string          `json:"status" gorm:"not null;default:pending"`
	Items             []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt         time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}
