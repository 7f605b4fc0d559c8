package service

import (
	"context"
	"testing"

	"ratehub/internal/api/models"
	"ratehub/internal/api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) (AuthService, *captureMailer, repository.UserRepository) {
	t.Helper()
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	mailer := &captureMailer{}
	return NewAuthService(userRepo, mailer, testConfig()), mailer, userRepo
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, mailer, userRepo := newAuthService(t)

		user, err := svc.Signup(ctx, "alice", "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, models.RoleUser, user.Role)

		// the code travels by mail, only its hash is stored
		assert.Equal(t, "alice@example.com", mailer.to)
		assert.NotEmpty(t, mailer.code)
		stored, err := userRepo.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.NotEqual(t, mailer.code, stored.ConfirmationCode)
		assert.NoError(t, bcrypt.CompareHashAndPassword(
			[]byte(stored.ConfirmationCode), []byte(mailer.code)))
	})

	t.Run("ReservedUsername", func(t *testing.T) {
		svc, _, _ := newAuthService(t)
		_, err := svc.Signup(ctx, "me", "me@example.com")
		assert.ErrorIs(t, err, ErrUsernameReserved)
	})

	t.Run("UsernameEqualsEmail", func(t *testing.T) {
		svc, _, _ := newAuthService(t)
		_, err := svc.Signup(ctx, "bob@example.com", "bob@example.com")
		assert.ErrorIs(t, err, ErrUsernameEqualsEmail)
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		svc, _, _ := newAuthService(t)
		_, err := svc.Signup(ctx, "carol", "carol@example.com")
		require.NoError(t, err)

		_, err = svc.Signup(ctx, "carol", "other@example.com")
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		svc, _, _ := newAuthService(t)
		_, err := svc.Signup(ctx, "dave", "dave@example.com")
		require.NoError(t, err)

		_, err = svc.Signup(ctx, "dave2", "dave@example.com")
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("MailFailureFailsSignup", func(t *testing.T) {
		db := newTestDB(t)
		userRepo := repository.NewUserRepository(db)
		mailer := &captureMailer{err: assert.AnError}
		svc := NewAuthService(userRepo, mailer, testConfig())

		_, err := svc.Signup(ctx, "erin", "erin@example.com")
		assert.Error(t, err)
	})
}

func TestAuthService_IssueToken(t *testing.T) {
	ctx := context.Background()
	svc, mailer, _ := newAuthService(t)

	_, err := svc.Signup(ctx, "alice", "alice@example.com")
	require.NoError(t, err)
	code := mailer.code

	t.Run("UnknownUser", func(t *testing.T) {
		_, err := svc.IssueToken(ctx, "nobody", code)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("WrongCode", func(t *testing.T) {
		_, err := svc.IssueToken(ctx, "alice", "not-the-code")
		assert.ErrorIs(t, err, ErrInvalidCode)
	})

	t.Run("Success", func(t *testing.T) {
		token, err := svc.IssueToken(ctx, "alice", code)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Username)
		assert.Equal(t, models.RoleUser, claims.Role)
		assert.NotEmpty(t, claims.UserID)
	})

	t.Run("CodeStaysValidForRepeatExchange", func(t *testing.T) {
		_, err := svc.IssueToken(ctx, "alice", code)
		require.NoError(t, err)
		_, err = svc.IssueToken(ctx, "alice", code)
		assert.NoError(t, err)
	})
}

func TestAuthService_ValidateToken(t *testing.T) {
	svc, _, _ := newAuthService(t)

	t.Run("Garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		ctx := context.Background()
		other, otherMailer, _ := newAuthService(t)
		_, err := other.Signup(ctx, "mallory", "mallory@example.com")
		require.NoError(t, err)
		foreign, err := other.IssueToken(ctx, "mallory", otherMailer.code)
		require.NoError(t, err)

		cfg := testConfig()
		cfg.JWTSecret = "a-completely-different-32-char-key!"
		db := newTestDB(t)
		svcOtherKey := NewAuthService(repository.NewUserRepository(db), &captureMailer{}, cfg)

		_, err = svcOtherKey.ValidateToken(foreign)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
