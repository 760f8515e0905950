package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"carloc-backend/internal/domain"
	"carloc-backend/internal/security"
	"carloc-backend/internal/service"
)

const testJWTSecret = "test-secret-used-only-in-unit-tests-0123456789"

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepo)
	tokens := security.NewTokenManager(testJWTSecret, time.Hour)
	svc := service.NewAuthService(users, tokens)

	hash, err := security.HashPassword("correct horse battery")
	assert.NoError(t, err)

	stored := func() *domain.User {
		return &domain.User{
			ID:           1,
			Name:         "Moussa Ba",
			Email:        "moussa@carloc.example",
			PasswordHash: hash,
			Role:         domain.RoleManager,
			Active:       true,
		}
	}

	t.Run("issues a token carrying the role's permissions", func(t *testing.T) {
		users.ExpectedCalls = nil
		users.Calls = nil
		users.On("GetByEmail", mock.Anything, "moussa@carloc.example").Return(stored(), nil)

		user, token, err := svc.Login(ctx, "moussa@carloc.example", "correct horse battery")

		assert.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		assert.NotEmpty(t, token)

		claims, err := tokens.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), claims.UserID)
		assert.True(t, claims.HasPermission("contracts:write"))
		assert.True(t, claims.HasPermission("reservations:write"))
		assert.False(t, claims.HasPermission("users:write"))
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		users.ExpectedCalls = nil
		users.Calls = nil
		users.On("GetByEmail", mock.Anything, "moussa@carloc.example").Return(stored(), nil)

		_, token, err := svc.Login(ctx, "moussa@carloc.example", "wrong")

		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
		assert.Empty(t, token)
	})

	t.Run("an unknown email looks like a wrong password", func(t *testing.T) {
		users.ExpectedCalls = nil
		users.Calls = nil
		users.On("GetByEmail", mock.Anything, "nobody@carloc.example").Return(nil, domain.NotFoundError("user", 0))

		_, _, err := svc.Login(ctx, "nobody@carloc.example", "whatever")

		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("rejects a deactivated account", func(t *testing.T) {
		users.ExpectedCalls = nil
		users.Calls = nil
		u := stored()
		u.Active = false
		users.On("GetByEmail", mock.Anything, "moussa@carloc.example").Return(u, nil)

		_, _, err := svc.Login(ctx, "moussa@carloc.example", "correct horse battery")

		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepo)
	svc := service.NewUserService(users)

	t.Run("hashes the password and activates the account", func(t *testing.T) {
		users.ExpectedCalls = nil
		users.Calls = nil
		users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 2
		}).Return(nil)

		user, err := svc.Create(ctx, "Fatou Ndiaye", "fatou@carloc.example", "s3cret-enough", domain.RoleAgent)

		assert.NoError(t, err)
		assert.Equal(t, int64(2), user.ID)
		assert.True(t, user.Active)
		assert.NotEqual(t, "s3cret-enough", user.PasswordHash)
		assert.True(t, security.CheckPassword(user.PasswordHash, "s3cret-enough"))
	})

	t.Run("rejects a short password", func(t *testing.T) {
		users.ExpectedCalls = nil
		users.Calls = nil

		user, err := svc.Create(ctx, "Fatou Ndiaye", "fatou@carloc.example", "short", domain.RoleAgent)

		assert.Nil(t, user)
		assert.ErrorIs(t, err, domain.ErrValidation)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects an unknown role", func(t *testing.T) {
		users.ExpectedCalls = nil
		users.Calls = nil

		_, err := svc.Create(ctx, "Fatou Ndiaye", "fatou@carloc.example", "s3cret-enough", domain.Role("owner"))

		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
