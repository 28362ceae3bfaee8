package services

import (
	"errors"
	"fmt"

	"userstore/internal/models"
	"userstore/internal/repositories"

	"gorm.io/gorm"
)

// UserService handles business logic for users: uniqueness of username and
// email, and the transaction boundary around every mutation. Each mutating
// method runs inside a single db.Transaction, committed on success and rolled
// back on any error.
type UserService struct {
	db       *gorm.DB
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(db *gorm.DB, userRepo repositories.UserRepository) *UserService {
	return &UserService{
		db:       db,
		userRepo: userRepo,
	}
}

// GetByID retrieves a single user by ID.
func (s *UserService) GetByID(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// GetByFilter returns one page of users matching the filter.
func (s *UserService) GetByFilter(filter repositories.UserFilter, count, page int) ([]models.User, error) {
	return s.userRepo.GetByFilter(filter, count, page)
}

// Count returns the total number of users matching the filter.
func (s *UserService) Count(filter repositories.UserFilter) (int64, error) {
	return s.userRepo.Count(filter)
}

// checkEmailFree returns ErrConflict when another user (id != excludeID)
// already owns the email. A NotFound from the lookup means the email is free.
func checkEmailFree(repo repositories.UserRepository, email, excludeID string) error {
	existing, err := repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != excludeID {
		return fmt.Errorf("user with email %s %w", email, models.ErrConflict)
	}
	return nil
}

func checkUsernameFree(repo repositories.UserRepository, username, excludeID string) error {
	existing, err := repo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != excludeID {
		return fmt.Errorf("user with username %s %w", username, models.ErrConflict)
	}
	return nil
}

// Create inserts a new user after checking that neither the email nor the
// username is taken. The pre-checks and the insert share one transaction;
// the unique indexes on users remain the backstop for writers racing on the
// same value, in which case the insert itself fails.
func (s *UserService) Create(user *models.User) (*models.User, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.userRepo.WithTx(tx)
		if err := checkEmailFree(repo, user.Email, ""); err != nil {
			return err
		}
		if err := checkUsernameFree(repo, user.Username, ""); err != nil {
			return err
		}
		return repo.Create(user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Update applies a partial update to the user with the given ID. When the
// patch carries an email or username, uniqueness is re-checked excluding the
// user being updated.
func (s *UserService) Update(id string, patch repositories.UserPatch) (*models.User, error) {
	var updated *models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.userRepo.WithTx(tx)
		if patch.Email != nil {
			if err := checkEmailFree(repo, *patch.Email, id); err != nil {
				return err
			}
		}
		if patch.Username != nil {
			if err := checkUsernameFree(repo, *patch.Username, id); err != nil {
				return err
			}
		}
		var err error
		updated, err = repo.Update(id, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the user with the given ID.
func (s *UserService) Delete(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.userRepo.WithTx(tx).Delete(id)
	})
}
