package services

import (
	"context"
	"fmt"
	"time"

	"betamoney/internal/adapters/persistence/models"
	"betamoney/internal/adapters/persistence/repositories"
	"betamoney/internal/config"
	"betamoney/internal/core/domain"
	"betamoney/internal/pkg/jwt"
	"betamoney/internal/pkg/password"

	"github.com/google/uuid"
)

// AuthService resolves sessions against the two-role scheme: ad hoc
// guest identities, and the single fixed-credential treasurer.
type AuthService struct {
	store repositories.Store
	cfg   *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(store repositories.Store, cfg *config.Config) *AuthService {
	return &AuthService{store: store, cfg: cfg}
}

// SignInAsGuest creates a fresh guest identity and records it as the
// current session. Repeated sign-ins with the same email deliberately
// create unrelated identities with new ids; there is no dedup.
func (s *AuthService) SignInAsGuest(ctx context.Context, email, name string) (*models.User, error) {
	user := &models.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		Role:      string(domain.RoleGuest),
		CreatedAt: time.Now(),
	}

	if err := s.store.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save guest user: %w", err)
	}
	if err := s.store.SaveSession(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return user, nil
}

// SignInAsTreasurer checks the fixed credential pair and resolves the
// stable OWNER identity. On mismatch the session is left untouched.
func (s *AuthService) SignInAsTreasurer(ctx context.Context, email, pass string) (*models.User, error) {
	if email != s.cfg.Treasurer.Email || !s.verifyTreasurerPassword(pass) {
		return nil, domain.ErrInvalidCredentials
	}

	// Resolve or re-create the fixed OWNER identity; its creation time
	// survives re-logins.
	user, err := s.store.GetUserByID(ctx, domain.TreasurerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load treasurer: %w", err)
	}
	if user == nil {
		user = &models.User{
			ID:        domain.TreasurerID,
			Email:     s.cfg.Treasurer.Email,
			Name:      "Treasurer",
			Role:      string(domain.RoleOwner),
			CreatedAt: time.Now(),
		}
	}

	if err := s.store.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save treasurer: %w", err)
	}
	if err := s.store.SaveSession(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return user, nil
}

// verifyTreasurerPassword prefers the configured bcrypt hash; the
// plaintext constant comparison is kept for compatibility with the
// original deployment and is a documented weakness, not an endorsement.
func (s *AuthService) verifyTreasurerPassword(pass string) bool {
	if s.cfg.Treasurer.PasswordBcrypt != "" {
		return password.Verify(pass, s.cfg.Treasurer.PasswordBcrypt)
	}
	return password.PlainEqual(pass, s.cfg.Treasurer.Password)
}

// GetCurrentUser reads the persisted session. Absent or corrupt
// session data is treated as "no session" and never surfaced as an
// error; callers that need the failure see it logged by the store.
func (s *AuthService) GetCurrentUser(ctx context.Context) *models.User {
	user, err := s.store.GetSessionUser(ctx)
	if err != nil {
		return nil
	}
	return user
}

// SignOut clears the persisted session
func (s *AuthService) SignOut(ctx context.Context) error {
	return s.store.ClearSession(ctx)
}

// IssueToken issues a signed session token for HTTP authentication
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	return jwt.GenerateToken(user.ID, user.Name, user.Role, s.cfg.JWT.Secret, s.cfg.JWT.TTL)
}
