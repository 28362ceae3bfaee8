package repositories

import (
	"errors"
	"fmt"
	"strings"

	"userstore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// WithTx returns a repository bound to the given transaction handle.
func (r *GORMUserRepository) WithTx(tx *gorm.DB) UserRepository {
	return &GORMUserRepository{db: tx}
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with ID %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return &user, nil
}

// GetByUsername retrieves a user by their exact username.
func (r *GORMUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with username %s: %w", username, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by username %s: %w", username, err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by their exact email.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with email %s: %w", email, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// applyFilter adds the filter predicates to a query. LOWER/LIKE instead of
// ILIKE so the same predicate works on both PostgreSQL and SQLite.
func applyFilter(q *gorm.DB, filter UserFilter) *gorm.DB {
	if filter.Username != nil && *filter.Username != "" {
		q = q.Where("LOWER(username) LIKE ?", "%"+strings.ToLower(*filter.Username)+"%")
	}
	if filter.Email != nil && *filter.Email != "" {
		q = q.Where("LOWER(email) LIKE ?", "%"+strings.ToLower(*filter.Email)+"%")
	}
	return q
}

// GetByFilter returns one page of users matching the filter.
func (r *GORMUserRepository) GetByFilter(filter UserFilter, count, page int) ([]models.User, error) {
	var users []models.User
	q := applyFilter(r.db.Model(&models.User{}), filter)
	offset := (page - 1) * count
	if err := q.Offset(offset).Limit(count).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Count returns the total number of users matching the filter.
func (r *GORMUserRepository) Count(filter UserFilter) (int64, error) {
	var total int64
	q := applyFilter(r.db.Model(&models.User{}), filter)
	if err := q.Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return total, nil
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Update applies the non-nil fields of patch to the user with the given ID
// and returns the updated row. An empty patch returns the current row as is.
func (r *GORMUserRepository) Update(id string, patch UserPatch) (*models.User, error) {
	user, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.Username != nil {
		updates["username"] = *patch.Username
	}
	if patch.Email != nil {
		updates["email"] = *patch.Email
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := r.db.Model(&models.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", id, err)
	}
	// Re-read so the caller sees the stored row, server timestamp included.
	return r.GetByID(id)
}

// Delete deletes a user by their ID from the database.
func (r *GORMUserRepository) Delete(id string) error {
	res := r.db.Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %s: %w", id, models.ErrNotFound)
	}
	return nil
}
