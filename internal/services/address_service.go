package services

import (
	"userstore/internal/models"
	"userstore/internal/repositories"

	"gorm.io/gorm"
)

// AddressService handles business logic for user addresses.
type AddressService struct {
	db          *gorm.DB
	addressRepo repositories.AddressRepository
	userRepo    repositories.UserRepository
}

// NewAddressService creates a new AddressService.
func NewAddressService(db *gorm.DB, addressRepo repositories.AddressRepository, userRepo repositories.UserRepository) *AddressService {
	return &AddressService{
		db:          db,
		addressRepo: addressRepo,
		userRepo:    userRepo,
	}
}

// ListForUser returns the addresses of the given user. The owner must exist.
func (s *AddressService) ListForUser(userID string) ([]models.Address, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, err
	}
	return s.addressRepo.ListForUser(userID)
}

// Create stores a new address for the given user.
func (s *AddressService) Create(userID string, address *models.Address) (*models.Address, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.userRepo.WithTx(tx).GetByID(userID); err != nil {
			return err
		}
		address.UserID = userID
		return s.addressRepo.WithTx(tx).Create(address)
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

// Delete removes the address if it belongs to the given user.
func (s *AddressService) Delete(userID, addressID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.addressRepo.WithTx(tx)
		address, err := repo.GetByID(addressID)
		if err != nil {
			return err
		}
		if address.UserID != userID {
			return models.ErrNotFound
		}
		return repo.Delete(addressID)
	})
}
