package repositories

import (
	"userstore/internal/models"

	"gorm.io/gorm"
)

// UserFilter holds the optional predicates of a user listing. A nil field
// means "no constraint"; set fields are case-insensitive substring matches
// combined with AND.
type UserFilter struct {
	Username *string
	Email    *string
}

// UserPatch is a partial update of a user. Only non-nil fields are applied.
type UserPatch struct {
	Username    *string
	Email       *string
	Description *string
}

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// WithTx returns a copy of the repository scoped to the given transaction.
	WithTx(tx *gorm.DB) UserRepository
	GetByID(id string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	// GetByFilter returns one page of users matching the filter, with
	// offset = (page-1)*count and limit = count. Bounds on count and page are
	// the caller's responsibility.
	GetByFilter(filter UserFilter, count, page int) ([]models.User, error)
	// Count returns the total number of users matching the filter, ignoring
	// pagination.
	Count(filter UserFilter) (int64, error)
	Create(user *models.User) error
	Update(id string, patch UserPatch) (*models.User, error)
	Delete(id string) error
}
