package repositories

import (
	"context"

	"betamoney/internal/adapters/persistence/models"
)

// Store defines the persistence contract shared by every backend
// (in-memory, relational, document). All list reads return requests
// ordered by created_at descending, with timestamps reconstituted as
// time.Time regardless of how the backend round-trips them.
//
// Single-record reads return (nil, nil) when the record is absent;
// errors are reserved for backend failures and corrupt data.
//
// No backend enforces transactional isolation: concurrent writers
// racing on the same request id are last-write-wins, which is
// acceptable with a single privileged mutator.
type Store interface {
	// Users
	SaveUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Session (single record holding the serialized current user)
	SaveSession(ctx context.Context, user *models.User) error
	GetSessionUser(ctx context.Context) (*models.User, error)
	ClearSession(ctx context.Context) error

	// Requests
	SaveRequest(ctx context.Context, request *models.Request) error // upsert by id
	GetRequestByID(ctx context.Context, id string) (*models.Request, error)
	GetAllRequests(ctx context.Context) ([]models.Request, error)
	GetRequestsForUser(ctx context.Context, userID string) ([]models.Request, error)
	UpdateRequestStatus(ctx context.Context, id, status string) error

	// Health
	Ping(ctx context.Context) error
}
