package repositories_test

import (
	"fmt"
	"testing"

	"userstore/internal/models"
	"userstore/internal/repositories"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedUsers(t *testing.T, repo repositories.UserRepository, users ...models.User) []models.User {
	t.Helper()
	for i := range users {
		if err := repo.Create(&users[i]); err != nil {
			t.Fatalf("failed to seed user %s: %v", users[i].Username, err)
		}
	}
	return users
}

func strPtr(s string) *string { return &s }

func TestGORMUserRepository_GetByID(t *testing.T) {
	repo := repositories.NewGORMUserRepository(openTestDB(t))
	seeded := seedUsers(t, repo, models.User{Username: "john_doe", Email: "john@x.com"})

	got, err := repo.GetByID(seeded[0].ID)
	assert.NoError(t, err)
	assert.Equal(t, "john_doe", got.Username)
	assert.Equal(t, "john@x.com", got.Email)
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.UpdatedAt.IsZero())

	_, err = repo.GetByID("00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestGORMUserRepository_FilterIsCaseInsensitiveSubstring(t *testing.T) {
	repo := repositories.NewGORMUserRepository(openTestDB(t))
	seedUsers(t, repo,
		models.User{Username: "john_doe", Email: "john@x.com"},
		models.User{Username: "Johnny", Email: "johnny@y.com"},
		models.User{Username: "alice", Email: "alice@x.com"},
	)

	users, err := repo.GetByFilter(repositories.UserFilter{Username: strPtr("JOHN")}, 10, 1)
	assert.NoError(t, err)
	assert.Len(t, users, 2)
	for _, u := range users {
		assert.Contains(t, []string{"john_doe", "Johnny"}, u.Username)
	}

	// Filters combine with AND.
	users, err = repo.GetByFilter(repositories.UserFilter{Username: strPtr("john"), Email: strPtr("@y.com")}, 10, 1)
	assert.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, "Johnny", users[0].Username)

	// No filter returns everyone.
	users, err = repo.GetByFilter(repositories.UserFilter{}, 10, 1)
	assert.NoError(t, err)
	assert.Len(t, users, 3)
}

func TestGORMUserRepository_Pagination(t *testing.T) {
	repo := repositories.NewGORMUserRepository(openTestDB(t))
	for i := 0; i < 5; i++ {
		seedUsers(t, repo, models.User{
			Username: fmt.Sprintf("user%d", i),
			Email:    fmt.Sprintf("user%d@x.com", i),
		})
	}

	seen := map[string]bool{}
	for page := 1; page <= 3; page++ {
		users, err := repo.GetByFilter(repositories.UserFilter{}, 2, page)
		assert.NoError(t, err)
		if page < 3 {
			assert.Len(t, users, 2)
		} else {
			assert.Len(t, users, 1)
		}
		for _, u := range users {
			assert.False(t, seen[u.ID], "user %s returned on more than one page", u.Username)
			seen[u.ID] = true
		}
	}
	assert.Len(t, seen, 5)

	// Past the last page.
	users, err := repo.GetByFilter(repositories.UserFilter{}, 2, 4)
	assert.NoError(t, err)
	assert.Empty(t, users)
}

func TestGORMUserRepository_CountMatchesFilter(t *testing.T) {
	repo := repositories.NewGORMUserRepository(openTestDB(t))
	seedUsers(t, repo,
		models.User{Username: "john_doe", Email: "john@x.com"},
		models.User{Username: "Johnny", Email: "johnny@y.com"},
		models.User{Username: "alice", Email: "alice@x.com"},
	)

	filter := repositories.UserFilter{Username: strPtr("john")}
	total, err := repo.Count(filter)
	assert.NoError(t, err)

	users, err := repo.GetByFilter(filter, 100, 1)
	assert.NoError(t, err)
	assert.Equal(t, total, int64(len(users)))
}

func TestGORMUserRepository_UpdateAppliesOnlyPatchFields(t *testing.T) {
	repo := repositories.NewGORMUserRepository(openTestDB(t))
	seeded := seedUsers(t, repo, models.User{Username: "john_doe", Email: "john@x.com"})
	id := seeded[0].ID

	updated, err := repo.Update(id, repositories.UserPatch{Description: strPtr("likes go")})
	assert.NoError(t, err)
	assert.Equal(t, "likes go", updated.Description)
	assert.Equal(t, "john_doe", updated.Username)
	assert.Equal(t, "john@x.com", updated.Email)

	// Empty patch is a no-op returning the current row.
	same, err := repo.Update(id, repositories.UserPatch{})
	assert.NoError(t, err)
	assert.Equal(t, "likes go", same.Description)

	_, err = repo.Update("00000000-0000-0000-0000-000000000000", repositories.UserPatch{Description: strPtr("x")})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestGORMUserRepository_Delete(t *testing.T) {
	repo := repositories.NewGORMUserRepository(openTestDB(t))
	seeded := seedUsers(t, repo, models.User{Username: "john_doe", Email: "john@x.com"})
	id := seeded[0].ID

	assert.NoError(t, repo.Delete(id))

	_, err := repo.GetByID(id)
	assert.ErrorIs(t, err, models.ErrNotFound)

	err = repo.Delete(id)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
