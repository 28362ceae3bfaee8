package repositories

import (
	"errors"
	"fmt"

	"userstore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMAddressRepository is a GORM implementation of AddressRepository.
type GORMAddressRepository struct {
	db *gorm.DB
}

// NewGORMAddressRepository creates a new instance of GORMAddressRepository.
func NewGORMAddressRepository(db *gorm.DB) *GORMAddressRepository {
	return &GORMAddressRepository{
		db: db,
	}
}

// WithTx returns a repository bound to the given transaction handle.
func (r *GORMAddressRepository) WithTx(tx *gorm.DB) AddressRepository {
	return &GORMAddressRepository{db: tx}
}

// GetByID retrieves a single address by its ID.
func (r *GORMAddressRepository) GetByID(id string) (*models.Address, error) {
	var address models.Address
	if err := r.db.First(&address, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("address with ID %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get address by ID %s: %w", id, err)
	}
	return &address, nil
}

// ListForUser returns all addresses owned by the given user.
func (r *GORMAddressRepository) ListForUser(userID string) ([]models.Address, error) {
	var addresses []models.Address
	if err := r.db.Find(&addresses, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to list addresses for user %s: %w", userID, err)
	}
	return addresses, nil
}

// Create creates a new address in the database.
func (r *GORMAddressRepository) Create(address *models.Address) error {
	if address.ID == "" {
		address.ID = uuid.New().String()
	}
	if err := r.db.Create(address).Error; err != nil {
		return fmt.Errorf("failed to create address: %w", err)
	}
	return nil
}

// Delete deletes an address by its ID.
func (r *GORMAddressRepository) Delete(id string) error {
	res := r.db.Delete(&models.Address{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete address %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("address with ID %s: %w", id, models.ErrNotFound)
	}
	return nil
}
