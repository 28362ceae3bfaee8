package repositories

import (
	"userstore/internal/models"

	"gorm.io/gorm"
)

// AddressRepository defines the interface for address data access.
type AddressRepository interface {
	WithTx(tx *gorm.DB) AddressRepository
	GetByID(id string) (*models.Address, error)
	// ListForUser returns the addresses owned by the given user.
	ListForUser(userID string) ([]models.Address, error)
	Create(address *models.Address) error
	Delete(id string) error
}
