package service

import (
	"context"
	"testing"

	"ratehub/internal/api/dto"
	"ratehub/internal/api/models"
	"ratehub/internal/api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))

	t.Run("Success", func(t *testing.T) {
		resp, err := svc.Create(ctx, dto.CreateUserDTO{
			Username: "alice",
			Email:    "alice@example.com",
			Role:     models.RoleModerator,
		})
		require.NoError(t, err)
		assert.Equal(t, "alice", resp.Username)
		assert.Equal(t, models.RoleModerator, resp.Role)
	})

	t.Run("DefaultRoleIsUser", func(t *testing.T) {
		resp, err := svc.Create(ctx, dto.CreateUserDTO{
			Username: "bob",
			Email:    "bob@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, models.RoleUser, resp.Role)
	})

	t.Run("ReservedUsername", func(t *testing.T) {
		_, err := svc.Create(ctx, dto.CreateUserDTO{Username: "me", Email: "me@example.com"})
		assert.ErrorIs(t, err, ErrUsernameReserved)
	})

	t.Run("Duplicate", func(t *testing.T) {
		_, err := svc.Create(ctx, dto.CreateUserDTO{Username: "alice", Email: "new@example.com"})
		assert.ErrorIs(t, err, ErrUserExists)
	})
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	seedUser(t, db, "carol", models.RoleUser)

	t.Run("AdminCanChangeRole", func(t *testing.T) {
		resp, err := svc.Update(ctx, "carol", dto.UpdateUserDTO{
			Role: strPtr(models.RoleModerator),
		})
		require.NoError(t, err)
		assert.Equal(t, models.RoleModerator, resp.Role)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		_, err := svc.Update(ctx, "nobody", dto.UpdateUserDTO{Bio: strPtr("hi")})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserService_UpdateMe(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	svc := NewUserService(userRepo)
	user := seedUser(t, db, "dave", models.RoleUser)

	// email and role in the payload are discarded, not rejected
	resp, err := svc.UpdateMe(ctx, user, dto.UpdateMeDTO{
		Bio:   strPtr("about me"),
		Email: strPtr("hijacked@example.com"),
		Role:  strPtr(models.RoleAdmin),
	})
	require.NoError(t, err)
	assert.Equal(t, "about me", resp.Bio)
	assert.Equal(t, "dave@example.com", resp.Email)
	assert.Equal(t, models.RoleUser, resp.Role)

	stored, err := userRepo.FindByUsername(ctx, "dave")
	require.NoError(t, err)
	assert.Equal(t, "dave@example.com", stored.Email)
	assert.Equal(t, models.RoleUser, stored.Role)

	t.Run("ReservedUsername", func(t *testing.T) {
		_, err := svc.UpdateMe(ctx, user, dto.UpdateMeDTO{Username: strPtr("me")})
		assert.ErrorIs(t, err, ErrUsernameReserved)
	})
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	seedUser(t, db, "erin", models.RoleUser)

	require.NoError(t, svc.Delete(ctx, "erin"))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("username = ?", "erin").Count(&count).Error)
	assert.Zero(t, count)

	assert.ErrorIs(t, svc.Delete(ctx, "erin"), ErrUserNotFound)
}

func TestUserService_List(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	seedUser(t, db, "anna", models.RoleUser)
	seedUser(t, db, "annabel", models.RoleUser)
	seedUser(t, db, "zoe", models.RoleUser)

	resp, err := svc.List(ctx, "anna", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "anna", resp.Data[0].Username)
}
