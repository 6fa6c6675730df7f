package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"betamoney/internal/adapters/persistence/models"
	"betamoney/internal/adapters/persistence/repositories"
)

// failingStore wraps a real store and fails selected operations, the
// way an unreachable backend would.
type failingStore struct {
	repositories.Store
	saveUserErr    error
	sessionReadErr error
}

func (s *failingStore) SaveUser(ctx context.Context, u *models.User) error {
	if s.saveUserErr != nil {
		return s.saveUserErr
	}
	return s.Store.SaveUser(ctx, u)
}

func (s *failingStore) GetSessionUser(ctx context.Context) (*models.User, error) {
	if s.sessionReadErr != nil {
		return nil, s.sessionReadErr
	}
	return s.Store.GetSessionUser(ctx)
}

func TestGuestSignIn(t *testing.T) {
	t.Run("signs in and sets session cookie", func(t *testing.T) {
		app, _ := newTestApp(t)

		resp, env := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/guest", "", fiber.Map{
			"name":  "John Smith",
			"email": "john@example.com",
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.True(t, env.Success)

		var data struct {
			AccessToken string      `json:"access_token"`
			User        models.User `json:"user"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.NotEmpty(t, data.AccessToken)
		assert.Equal(t, "John Smith", data.User.Name)
		assert.Equal(t, "john@example.com", data.User.Email)
		assert.Equal(t, "guest", data.User.Role)

		var cookie string
		for _, c := range resp.Cookies() {
			if c.Name == "access_token" {
				cookie = c.Value
			}
		}
		assert.Equal(t, data.AccessToken, cookie)
	})

	t.Run("reports every violation at once", func(t *testing.T) {
		app, _ := newTestApp(t)

		resp, env := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/guest", "", fiber.Map{
			"name":  "   ",
			"email": "not-an-email",
		})
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.False(t, env.Success)
		assert.ElementsMatch(t, []string{
			"Name is required",
			"A valid email is required",
		}, env.Errors)
	})

	t.Run("persistence failure surfaces as 500", func(t *testing.T) {
		store := &failingStore{
			Store:       repositories.NewMemoryStore(),
			saveUserErr: errors.New("connection reset by peer"),
		}
		app := newTestAppWith(t, store)

		resp, env := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/guest", "", fiber.Map{
			"name":  "John Smith",
			"email": "john@example.com",
		})
		require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "Failed to sign in as guest", env.Error)
	})
}

func TestTreasurerSignIn(t *testing.T) {
	t.Run("accepts the fixed credential pair", func(t *testing.T) {
		app, _ := newTestApp(t)

		resp, env := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/treasurer", "", fiber.Map{
			"email":    "treasurer@betathetapi.com",
			"password": "BetaMoney2024!",
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var data struct {
			User models.User `json:"user"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, "treasurer", data.User.ID)
		assert.Equal(t, "owner", data.User.Role)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		app, _ := newTestApp(t)

		resp, env := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/treasurer", "", fiber.Map{
			"email":    "treasurer@betathetapi.com",
			"password": "wrong-password",
		})
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid treasurer credentials", env.Error)
	})

	t.Run("rejects a missing password", func(t *testing.T) {
		app, _ := newTestApp(t)

		resp, env := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/treasurer", "", fiber.Map{
			"email": "treasurer@betathetapi.com",
		})
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Password is required", env.Error)
	})
}

func TestMe(t *testing.T) {
	t.Run("returns the session user", func(t *testing.T) {
		app, _ := newTestApp(t)
		token := signInGuest(t, app, "Jane Doe", "jane@example.com")

		resp, env := doJSON(t, app, fiber.MethodGet, "/api/v1/auth/me", token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var data struct {
			User models.User `json:"user"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, "Jane Doe", data.User.Name)
	})

	t.Run("reports no session after logout even with a live token", func(t *testing.T) {
		app, _ := newTestApp(t)
		token := signInGuest(t, app, "Jane Doe", "jane@example.com")

		resp, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/logout", token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		resp, env := doJSON(t, app, fiber.MethodGet, "/api/v1/auth/me", token, nil)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "No active session", env.Error)
	})

	t.Run("session read failure reads as no session, not an error", func(t *testing.T) {
		store := &failingStore{
			Store:          repositories.NewMemoryStore(),
			sessionReadErr: errors.New("connection reset by peer"),
		}
		app := newTestAppWith(t, store)
		token := signInGuest(t, app, "Jane Doe", "jane@example.com")

		resp, env := doJSON(t, app, fiber.MethodGet, "/api/v1/auth/me", token, nil)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "No active session", env.Error)
	})
}

func TestAuthRequired(t *testing.T) {
	app, _ := newTestApp(t)

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodGet, "/api/v1/requests", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		resp, env := doJSON(t, app, fiber.MethodGet, "/api/v1/requests", "not-a-token", nil)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid access token", env.Error)
	})
}
