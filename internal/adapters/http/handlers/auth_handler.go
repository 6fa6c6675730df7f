package handlers

import (
	"errors"
	"strings"

	"betamoney/internal/config"
	"betamoney/internal/core/domain"
	"betamoney/internal/core/services"
	"betamoney/internal/pkg/response"
	"betamoney/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles sign-in and session endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// GuestSignInRequest represents guest sign-in input
type GuestSignInRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// TreasurerSignInRequest represents treasurer sign-in input
type TreasurerSignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ============================================================
// POST /api/v1/auth/guest — member self sign-in
// ============================================================
func (h *AuthHandler) GuestSignIn(c *fiber.Ctx) error {
	var req GuestSignInRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	var violations []string
	if !validate.Required(req.Name) {
		violations = append(violations, "Name is required")
	}
	if !validate.Email(req.Email) {
		violations = append(violations, "A valid email is required")
	}
	if len(violations) > 0 {
		return response.ValidationFailed(c, violations)
	}

	user, err := h.authService.SignInAsGuest(c.Context(), strings.TrimSpace(req.Email), strings.TrimSpace(req.Name))
	if err != nil {
		return response.InternalServerError(c, "Failed to sign in as guest")
	}

	token, err := h.authService.IssueToken(user)
	if err != nil {
		return response.InternalServerError(c, "Failed to issue session token")
	}
	h.setAuthCookie(c, token)

	return response.Success(c, "Signed in as guest", fiber.Map{
		"access_token": token,
		"user":         user,
	})
}

// ============================================================
// POST /api/v1/auth/treasurer — fixed-credential owner sign-in
// ============================================================
func (h *AuthHandler) TreasurerSignIn(c *fiber.Ctx) error {
	var req TreasurerSignInRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}
	if req.Password == "" {
		return response.BadRequest(c, "Password is required")
	}

	user, err := h.authService.SignInAsTreasurer(c.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return response.Unauthorized(c, "Invalid treasurer credentials")
		}
		return response.InternalServerError(c, "Failed to sign in as treasurer")
	}

	token, err := h.authService.IssueToken(user)
	if err != nil {
		return response.InternalServerError(c, "Failed to issue session token")
	}
	h.setAuthCookie(c, token)

	return response.Success(c, "Signed in as treasurer", fiber.Map{
		"access_token": token,
		"user":         user,
	})
}

// ============================================================
// GET /api/v1/auth/me — current session user
// ============================================================
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := h.authService.GetCurrentUser(c.Context())
	if user == nil {
		return response.Unauthorized(c, "No active session")
	}

	return response.Success(c, "Session retrieved", fiber.Map{
		"user": user,
	})
}

// ============================================================
// POST /api/v1/auth/logout — clear session
// ============================================================
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.SignOut(c.Context()); err != nil {
		return response.InternalServerError(c, "Failed to sign out")
	}
	h.clearAuthCookie(c)

	return response.Success(c, "Signed out successfully", nil)
}

// setAuthCookie sets the session token cookie
func (h *AuthHandler) setAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.JWT.TTL.Seconds()),
		Secure:   !h.cfg.IsDev(),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// clearAuthCookie removes the session token cookie
func (h *AuthHandler) clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: "Lax",
	})
}
