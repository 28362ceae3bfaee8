package services_test

import (
	"fmt"
	"testing"

	"userstore/internal/models"
	"userstore/internal/repositories"
	"userstore/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// MockUserRepository is a mock implementation of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) WithTx(tx *gorm.DB) repositories.UserRepository {
	return m
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByFilter(filter repositories.UserFilter, count, page int) ([]models.User, error) {
	args := m.Called(filter, count, page)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Count(filter repositories.UserFilter) (int64, error) {
	args := m.Called(filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(id string, patch repositories.UserPatch) (*models.User, error) {
	args := m.Called(id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// newTestDB opens an isolated in-memory database so db.Transaction has a real
// handle to run against.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	return db
}

func notFoundErr(what string) error {
	return fmt.Errorf("%s: %w", what, models.ErrNotFound)
}

func strPtr(s string) *string { return &s }

func TestUserService_Create(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(newTestDB(t), mockRepo)

	user := &models.User{
		Username: "john_doe",
		Email:    "john@x.com",
	}

	// Successful creation: both uniqueness checks miss.
	mockRepo.On("GetByEmail", user.Email).Return(nil, notFoundErr("user with email john@x.com")).Once()
	mockRepo.On("GetByUsername", user.Username).Return(nil, notFoundErr("user with username john_doe")).Once()
	mockRepo.On("Create", user).Return(nil).Once()

	created, err := service.Create(user)
	assert.NoError(t, err)
	assert.Equal(t, user, created)
	mockRepo.AssertExpectations(t)

	// Email already taken.
	mockRepo.On("GetByEmail", user.Email).Return(&models.User{ID: "other", Email: user.Email}, nil).Once()
	_, err = service.Create(user)
	assert.ErrorIs(t, err, models.ErrConflict)
	assert.Contains(t, err.Error(), "john@x.com")
	mockRepo.AssertExpectations(t)

	// Username already taken.
	mockRepo.On("GetByEmail", user.Email).Return(nil, notFoundErr("user with email john@x.com")).Once()
	mockRepo.On("GetByUsername", user.Username).Return(&models.User{ID: "other", Username: user.Username}, nil).Once()
	_, err = service.Create(user)
	assert.ErrorIs(t, err, models.ErrConflict)
	assert.Contains(t, err.Error(), "john_doe")
	mockRepo.AssertExpectations(t)
}

func TestUserService_Update(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(newTestDB(t), mockRepo)

	current := &models.User{ID: "user-1", Username: "john_doe", Email: "john@x.com"}

	// Description-only patch skips the uniqueness checks.
	patch := repositories.UserPatch{Description: strPtr("hello")}
	mockRepo.On("Update", "user-1", patch).Return(current, nil).Once()
	updated, err := service.Update("user-1", patch)
	assert.NoError(t, err)
	assert.Equal(t, current, updated)
	mockRepo.AssertExpectations(t)

	// Re-using your own email is not a conflict.
	patch = repositories.UserPatch{Email: strPtr("john@x.com")}
	mockRepo.On("GetByEmail", "john@x.com").Return(current, nil).Once()
	mockRepo.On("Update", "user-1", patch).Return(current, nil).Once()
	_, err = service.Update("user-1", patch)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Another user's email is a conflict.
	patch = repositories.UserPatch{Email: strPtr("taken@x.com")}
	mockRepo.On("GetByEmail", "taken@x.com").Return(&models.User{ID: "user-2", Email: "taken@x.com"}, nil).Once()
	_, err = service.Update("user-1", patch)
	assert.ErrorIs(t, err, models.ErrConflict)
	mockRepo.AssertExpectations(t)

	// Another user's username is a conflict.
	patch = repositories.UserPatch{Username: strPtr("taken")}
	mockRepo.On("GetByUsername", "taken").Return(&models.User{ID: "user-2", Username: "taken"}, nil).Once()
	_, err = service.Update("user-1", patch)
	assert.ErrorIs(t, err, models.ErrConflict)
	mockRepo.AssertExpectations(t)

	// Unknown id surfaces NotFound.
	patch = repositories.UserPatch{Description: strPtr("x")}
	mockRepo.On("Update", "missing", patch).Return(nil, notFoundErr("user with ID missing")).Once()
	_, err = service.Update("missing", patch)
	assert.ErrorIs(t, err, models.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Delete(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(newTestDB(t), mockRepo)

	mockRepo.On("Delete", "user-1").Return(nil).Once()
	assert.NoError(t, service.Delete("user-1"))
	mockRepo.AssertExpectations(t)

	mockRepo.On("Delete", "missing").Return(notFoundErr("user with ID missing")).Once()
	err := service.Delete("missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Reads(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(newTestDB(t), mockRepo)

	user := &models.User{ID: "user-1", Username: "john_doe"}
	mockRepo.On("GetByID", "user-1").Return(user, nil).Once()
	got, err := service.GetByID("user-1")
	assert.NoError(t, err)
	assert.Equal(t, user, got)

	filter := repositories.UserFilter{Username: strPtr("john")}
	mockRepo.On("GetByFilter", filter, 10, 1).Return([]models.User{*user}, nil).Once()
	users, err := service.GetByFilter(filter, 10, 1)
	assert.NoError(t, err)
	assert.Len(t, users, 1)

	mockRepo.On("Count", filter).Return(int64(1), nil).Once()
	total, err := service.Count(filter)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	mockRepo.AssertExpectations(t)
}
