package repositories

import (
	"context"
	"errors"
	"time"

	"betamoney/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// mysqlStore implements Store on the relational backend via GORM.
// Timestamps round-trip as time.Time because the DSN sets parseTime=True.
type mysqlStore struct {
	db *gorm.DB
}

// NewMySQLStore creates a new relational store
func NewMySQLStore(db *gorm.DB) Store {
	return &mysqlStore{db: db}
}

func (s *mysqlStore) SaveUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(user).Error
}

func (s *mysqlStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *mysqlStore) SaveSession(ctx context.Context, user *models.User) error {
	data, err := models.EncodeSessionUser(user)
	if err != nil {
		return err
	}
	session := models.Session{
		ID:        models.CurrentSessionID,
		Data:      data,
		UpdatedAt: time.Now(),
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&session).Error
}

func (s *mysqlStore) GetSessionUser(ctx context.Context) (*models.User, error) {
	var session models.Session
	err := s.db.WithContext(ctx).Where("id = ?", models.CurrentSessionID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return models.DecodeSessionUser(session.Data)
}

func (s *mysqlStore) ClearSession(ctx context.Context) error {
	return s.db.WithContext(ctx).Delete(&models.Session{}, models.CurrentSessionID).Error
}

func (s *mysqlStore) SaveRequest(ctx context.Context, request *models.Request) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(request).Error
}

func (s *mysqlStore) GetRequestByID(ctx context.Context, id string) (*models.Request, error) {
	var request models.Request
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (s *mysqlStore) GetAllRequests(ctx context.Context) ([]models.Request, error) {
	var requests []models.Request
	err := s.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&requests).Error
	return requests, err
}

func (s *mysqlStore) GetRequestsForUser(ctx context.Context, userID string) ([]models.Request, error) {
	var requests []models.Request
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&requests).Error
	return requests, err
}

func (s *mysqlStore) UpdateRequestStatus(ctx context.Context, id, status string) error {
	return s.db.WithContext(ctx).
		Model(&models.Request{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

func (s *mysqlStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
