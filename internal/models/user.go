package models

import "time"

// User represents an account in the store.
type User struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid" validate:"omitempty,uuid"`
	Username    string    `json:"username" gorm:"uniqueIndex;type:varchar(100);not null" validate:"required,min=1,max=100"`
	Email       string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null" validate:"required,email"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
