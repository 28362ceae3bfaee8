package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the store. Price is stored as NUMERIC to
// avoid float rounding errors.
type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;type:uuid" validate:"omitempty,uuid"`
	Name        string          `json:"name" gorm:"not null" validate:"required,min=1,max=100"`
	Description string          `json:"description,omitempty" validate:"omitempty,max=500"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric;not null"`
	CreatedAt   time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}
