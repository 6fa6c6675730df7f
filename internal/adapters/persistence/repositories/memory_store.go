package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"betamoney/internal/adapters/persistence/models"
)

// memoryStore implements Store with in-process maps. It is the
// embedded key-value backend: nothing survives a restart, which
// matches the local-storage deployment of the original system.
type memoryStore struct {
	mu       sync.RWMutex
	users    map[string]models.User
	requests map[string]models.Request
	session  string
	hasSess  bool
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() Store {
	return &memoryStore{
		users:    make(map[string]models.User),
		requests: make(map[string]models.Request),
	}
}

func (s *memoryStore) SaveUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = *user
	return nil
}

func (s *memoryStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *memoryStore) SaveSession(ctx context.Context, user *models.User) error {
	data, err := models.EncodeSessionUser(user)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = data
	s.hasSess = true
	return nil
}

func (s *memoryStore) GetSessionUser(ctx context.Context) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasSess {
		return nil, nil
	}
	return models.DecodeSessionUser(s.session)
}

func (s *memoryStore) ClearSession(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = ""
	s.hasSess = false
	return nil
}

func (s *memoryStore) SaveRequest(ctx context.Context, request *models.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[request.ID] = *request
	return nil
}

func (s *memoryStore) GetRequestByID(ctx context.Context, id string) (*models.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.requests[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *memoryStore) GetAllRequests(ctx context.Context) ([]models.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(models.Request) bool { return true }), nil
}

func (s *memoryStore) GetRequestsForUser(ctx context.Context, userID string) ([]models.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(r models.Request) bool { return r.UserID == userID }), nil
}

func (s *memoryStore) UpdateRequestStatus(ctx context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return nil
	}
	r.Status = status
	r.UpdatedAt = time.Now()
	s.requests[id] = r
	return nil
}

func (s *memoryStore) Ping(ctx context.Context) error {
	return nil
}

// collect returns matching requests ordered by created_at descending.
// Caller must hold at least a read lock.
func (s *memoryStore) collect(match func(models.Request) bool) []models.Request {
	result := make([]models.Request, 0)
	for _, r := range s.requests {
		if match(r) {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}
