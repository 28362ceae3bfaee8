package repositories

import (
	"userstore/internal/models"

	"gorm.io/gorm"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	WithTx(tx *gorm.DB) OrderRepository
	// GetByID returns the order with its order_product rows loaded.
	GetByID(id string) (*models.Order, error)
	ListForUser(userID string) ([]models.Order, error)
	// Create inserts the order together with its items.
	Create(order *models.Order) error
	UpdateStatus(id string, status string) error
}
