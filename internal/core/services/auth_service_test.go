package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"betamoney/internal/adapters/persistence/models"
	"betamoney/internal/adapters/persistence/repositories"
	"betamoney/internal/config"
	"betamoney/internal/core/domain"
	"betamoney/internal/core/services"
	"betamoney/internal/pkg/password"
)

// flakyStore wraps a real store and lets individual calls be overridden
// to fail, the way an unreachable or corrupted backend would.
type flakyStore struct {
	repositories.Store
	getSessionUser func(ctx context.Context) (*models.User, error)
}

func (s *flakyStore) GetSessionUser(ctx context.Context) (*models.User, error) {
	if s.getSessionUser != nil {
		return s.getSessionUser(ctx)
	}
	return s.Store.GetSessionUser(ctx)
}

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret: "test-secret",
			TTL:    time.Hour,
		},
		Treasurer: config.TreasurerConfig{
			Email:    "treasurer@betathetapi.com",
			Password: "BetaMoney2024!",
		},
	}
}

func newAuthService(t *testing.T) (*services.AuthService, repositories.Store) {
	t.Helper()
	store := repositories.NewMemoryStore()
	return services.NewAuthService(store, testConfig()), store
}

func TestSignInAsGuest(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)

	user, err := svc.SignInAsGuest(ctx, "brother@betathetapi.com", "Brother")
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, string(domain.RoleGuest), user.Role)
	assert.Equal(t, "Brother", user.Name)
	assert.False(t, user.CreatedAt.IsZero())

	current := svc.GetCurrentUser(ctx)
	require.NotNil(t, current)
	assert.Equal(t, user.ID, current.ID)

	t.Run("same email yields a fresh unrelated identity", func(t *testing.T) {
		again, err := svc.SignInAsGuest(ctx, "brother@betathetapi.com", "Brother")
		require.NoError(t, err)
		assert.NotEqual(t, user.ID, again.ID)
	})
}

func TestSignInAsTreasurer(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials resolve the stable owner identity", func(t *testing.T) {
		svc, _ := newAuthService(t)

		user, err := svc.SignInAsTreasurer(ctx, "treasurer@betathetapi.com", "BetaMoney2024!")
		require.NoError(t, err)
		assert.Equal(t, domain.TreasurerID, user.ID)
		assert.Equal(t, string(domain.RoleOwner), user.Role)

		// Re-login keeps the same identity and creation time
		again, err := svc.SignInAsTreasurer(ctx, "treasurer@betathetapi.com", "BetaMoney2024!")
		require.NoError(t, err)
		assert.Equal(t, user.ID, again.ID)
		assert.True(t, user.CreatedAt.Equal(again.CreatedAt))
	})

	t.Run("wrong password fails and leaves prior session intact", func(t *testing.T) {
		svc, _ := newAuthService(t)

		guest, err := svc.SignInAsGuest(ctx, "brother@betathetapi.com", "Brother")
		require.NoError(t, err)

		_, err = svc.SignInAsTreasurer(ctx, "treasurer@betathetapi.com", "wrong-password")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

		current := svc.GetCurrentUser(ctx)
		require.NotNil(t, current)
		assert.Equal(t, guest.ID, current.ID)
		assert.Equal(t, string(domain.RoleGuest), current.Role)
	})

	t.Run("wrong email fails", func(t *testing.T) {
		svc, _ := newAuthService(t)
		_, err := svc.SignInAsTreasurer(ctx, "someone@else.com", "BetaMoney2024!")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.Nil(t, svc.GetCurrentUser(ctx))
	})

	t.Run("bcrypt hash takes precedence over plaintext", func(t *testing.T) {
		cfg := testConfig()
		hash, err := password.Hash("s3cret-override")
		require.NoError(t, err)
		cfg.Treasurer.PasswordBcrypt = hash

		svc := services.NewAuthService(repositories.NewMemoryStore(), cfg)

		_, err = svc.SignInAsTreasurer(ctx, cfg.Treasurer.Email, "BetaMoney2024!")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

		user, err := svc.SignInAsTreasurer(ctx, cfg.Treasurer.Email, "s3cret-override")
		require.NoError(t, err)
		assert.Equal(t, domain.TreasurerID, user.ID)
	})
}

func TestGetCurrentUser(t *testing.T) {
	ctx := context.Background()

	t.Run("no session yields nil", func(t *testing.T) {
		svc, _ := newAuthService(t)
		assert.Nil(t, svc.GetCurrentUser(ctx))
	})

	t.Run("store failure is treated as no session", func(t *testing.T) {
		store := &flakyStore{
			Store: repositories.NewMemoryStore(),
			getSessionUser: func(ctx context.Context) (*models.User, error) {
				return nil, errors.New("connection reset by peer")
			},
		}
		svc := services.NewAuthService(store, testConfig())

		assert.Nil(t, svc.GetCurrentUser(ctx))
	})

	t.Run("corrupt session payload is treated as no session", func(t *testing.T) {
		store := &flakyStore{
			Store: repositories.NewMemoryStore(),
			getSessionUser: func(ctx context.Context) (*models.User, error) {
				return models.DecodeSessionUser(`{"id":`)
			},
		}
		svc := services.NewAuthService(store, testConfig())

		assert.Nil(t, svc.GetCurrentUser(ctx))
	})

	t.Run("a later healthy read recovers", func(t *testing.T) {
		inner := repositories.NewMemoryStore()
		fail := true
		store := &flakyStore{
			Store: inner,
			getSessionUser: func(ctx context.Context) (*models.User, error) {
				if fail {
					return nil, errors.New("connection reset by peer")
				}
				return inner.GetSessionUser(ctx)
			},
		}
		svc := services.NewAuthService(store, testConfig())

		user, err := svc.SignInAsGuest(ctx, "brother@betathetapi.com", "Brother")
		require.NoError(t, err)

		assert.Nil(t, svc.GetCurrentUser(ctx))

		fail = false
		current := svc.GetCurrentUser(ctx)
		require.NotNil(t, current)
		assert.Equal(t, user.ID, current.ID)
	})
}

func TestSignOut(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)

	_, err := svc.SignInAsGuest(ctx, "brother@betathetapi.com", "Brother")
	require.NoError(t, err)
	require.NotNil(t, svc.GetCurrentUser(ctx))

	require.NoError(t, svc.SignOut(ctx))
	assert.Nil(t, svc.GetCurrentUser(ctx))
}

func TestIssueToken(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)

	user, err := svc.SignInAsGuest(ctx, "brother@betathetapi.com", "Brother")
	require.NoError(t, err)

	token, err := svc.IssueToken(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}
