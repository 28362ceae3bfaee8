package models

import "time"

// Address is a delivery address owned by a user. A user may have several
// addresses; IsPrimary is a plain flag, nothing enforces a single primary.
type Address struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid" validate:"omitempty,uuid"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;index" validate:"omitempty,uuid"`
	Street    string    `json:"street" gorm:"not null" validate:"required"`
	City      string    `json:"city" gorm:"not null" validate:"required"`
	State     string    `json:"state"`
	ZipCode   string    `json:"zip_code"`
	Country   string    `json:"country" gorm:"not null" validate:"required"`
	IsPrimary bool      `json:"is_primary"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
