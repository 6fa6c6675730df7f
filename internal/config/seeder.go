package config

import (
	"context"
	"log"
	"time"

	"betamoney/internal/adapters/persistence/models"
	"betamoney/internal/adapters/persistence/repositories"
	"betamoney/internal/core/domain"

	"github.com/google/uuid"
)

// Seeder handles store seeding
type Seeder struct {
	store repositories.Store
	cfg   *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(store repositories.Store, cfg *Config) *Seeder {
	return &Seeder{store: store, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run(ctx context.Context) error {
	log.Println("🌱 Running store seeders...")

	if err := s.seedTreasurer(ctx); err != nil {
		log.Printf("⚠️ Treasurer seeder skipped: %v", err)
	}

	if s.cfg.IsDev() {
		if err := s.seedDemoRequests(ctx); err != nil {
			log.Printf("⚠️ Demo seeder skipped: %v", err)
		}
	}

	log.Println("✅ Store seeding completed")
	return nil
}

// seedTreasurer ensures the single OWNER identity exists
func (s *Seeder) seedTreasurer(ctx context.Context) error {
	existing, err := s.store.GetUserByID(ctx, domain.TreasurerID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	treasurer := &models.User{
		ID:        domain.TreasurerID,
		Email:     s.cfg.Treasurer.Email,
		Name:      "Treasurer",
		Role:      string(domain.RoleOwner),
		CreatedAt: time.Now(),
	}
	return s.store.SaveUser(ctx, treasurer)
}

// seedDemoRequests seeds sample data for development when the store
// is empty, matching the original demo dataset
func (s *Seeder) seedDemoRequests(ctx context.Context) error {
	all, err := s.store.GetAllRequests(ctx)
	if err != nil {
		return err
	}
	if len(all) > 0 {
		return nil
	}

	demoGuest := &models.User{
		ID:        uuid.NewString(),
		Email:     "demo@betathetapi.com",
		Name:      "Demo Brother",
		Role:      string(domain.RoleGuest),
		CreatedAt: time.Now().Add(-48 * time.Hour),
	}
	if err := s.store.SaveUser(ctx, demoGuest); err != nil {
		return err
	}

	dayAgo := time.Now().Add(-24 * time.Hour)
	twoDaysAgo := time.Now().Add(-48 * time.Hour)

	demos := []models.Request{
		{
			ID:          uuid.NewString(),
			UserID:      demoGuest.ID,
			Amount:      25.50,
			Description: "Chapter meeting refreshments",
			Category:    "Social",
			Status:      string(domain.StatusPending),
			CreatedAt:   dayAgo,
			UpdatedAt:   dayAgo,
		},
		{
			ID:          uuid.NewString(),
			UserID:      demoGuest.ID,
			Amount:      89.99,
			Description: "Rush event supplies",
			Category:    "Rush",
			Status:      string(domain.StatusApproved),
			CreatedAt:   twoDaysAgo,
			UpdatedAt:   dayAgo,
		},
	}

	for i := range demos {
		if err := s.store.SaveRequest(ctx, &demos[i]); err != nil {
			return err
		}
	}

	log.Printf("🌱 Seeded %d demo requests", len(demos))
	return nil
}
