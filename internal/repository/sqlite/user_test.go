package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avasquez/dental-api/internal/model"
	apperrors "github.com/avasquez/dental-api/pkg/errors"
)

func newUser(username, email string) *model.User {
	return &model.User{
		Username:     username,
		PasswordHash: "$2a$12$fakehashfortests",
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		Role:         model.UserRoleStaff,
	}
}

func TestUserCreateAndGetByUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(NewBaseRepository(db))
	ctx := context.Background()

	u := newUser("drsmith", "smith@example.com")
	u.Role = model.UserRoleDentist
	require.NoError(t, repo.Create(ctx, u))
	assert.NotZero(t, u.ID)

	got, err := repo.GetByUsername(ctx, "drsmith")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, model.UserRoleDentist, got.Role)
	assert.Nil(t, got.LastLogin)
}

func TestUserDuplicateUsernameConflicts(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(NewBaseRepository(db))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("frontdesk", "a@example.com")))

	err := repo.Create(ctx, newUser("frontdesk", "b@example.com"))
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestUserDuplicateEmailConflicts(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(NewBaseRepository(db))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("user1", "same@example.com")))

	err := repo.Create(ctx, newUser("user2", "same@example.com"))
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestUserUpdateLastLogin(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(NewBaseRepository(db))
	ctx := context.Background()

	u := newUser("loginuser", "login@example.com")
	require.NoError(t, repo.Create(ctx, u))
	require.NoError(t, repo.UpdateLastLogin(ctx, u.ID))

	got, err := repo.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.LastLogin)
}

func TestUserInvalidRoleRejectedByCheck(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(NewBaseRepository(db))

	u := newUser("badrole", "badrole@example.com")
	u.Role = "janitor"
	err := repo.Create(context.Background(), u)
	require.Error(t, err)
}
