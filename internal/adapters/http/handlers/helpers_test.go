package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"betamoney/internal/adapters/http/middleware"
	"betamoney/internal/adapters/http/routes"
	"betamoney/internal/adapters/persistence/repositories"
	"betamoney/internal/config"
	"betamoney/internal/core/services"
)

// envelope mirrors the response package's wire shape for decoding
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Errors  []string        `json:"errors"`
}

// newTestApp wires a full HTTP surface against the in-memory store.
// The watch service is constructed but not started; the stream
// endpoint is exercised at the service level instead.
func newTestApp(t *testing.T) (*fiber.App, repositories.Store) {
	t.Helper()

	store := repositories.NewMemoryStore()
	return newTestAppWith(t, store), store
}

// newTestAppWith wires the HTTP surface around the given store so tests
// can substitute a failing backend.
func newTestAppWith(t *testing.T, store repositories.Store) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret: "test-secret",
			TTL:    time.Hour,
		},
		Treasurer: config.TreasurerConfig{
			Email:    "treasurer@betathetapi.com",
			Password: "BetaMoney2024!",
		},
		CategoryRequired: true,
		PollInterval:     50 * time.Millisecond,
	}
	config.AppConfig = cfg

	receipts := services.NewReceiptService(nil, "", "", false)
	watch := services.NewWatchService(store, cfg.PollInterval)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.CustomErrorHandler,
		BodyLimit:    8 * 1024 * 1024,
	})
	routes.Setup(app, cfg, store, receipts, watch)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, *envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	resp.Body.Close()
	return resp, &env
}

func signInGuest(t *testing.T, app *fiber.App, name, email string) string {
	t.Helper()

	resp, env := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/guest", "", fiber.Map{
		"name":  name,
		"email": email,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return tokenFrom(t, env)
}

func signInTreasurer(t *testing.T, app *fiber.App) string {
	t.Helper()

	resp, env := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/treasurer", "", fiber.Map{
		"email":    "treasurer@betathetapi.com",
		"password": "BetaMoney2024!",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return tokenFrom(t, env)
}

func tokenFrom(t *testing.T, env *envelope) string {
	t.Helper()

	var data struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.AccessToken)
	return data.AccessToken
}

// multipartBody builds a submission form; pass nil receipt to omit the file
func multipartBody(t *testing.T, amount, description, category string, receipt []byte, contentType string) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	require.NoError(t, w.WriteField("amount", amount))
	require.NoError(t, w.WriteField("description", description))
	require.NoError(t, w.WriteField("category", category))

	if receipt != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="receipt"; filename="receipt.jpg"`)
		header.Set("Content-Type", contentType)
		part, err := w.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(receipt)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func submitRequest(t *testing.T, app *fiber.App, token, amount, description, category string) (*http.Response, *envelope) {
	t.Helper()

	body, contentType := multipartBody(t, amount, description, category, []byte("jpeg-bytes"), "image/jpeg")
	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/requests", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	resp.Body.Close()
	return resp, &env
}
