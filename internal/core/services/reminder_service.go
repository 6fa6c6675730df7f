package services

import (
	"context"
	"log"
	"time"

	"betamoney/internal/adapters/persistence/repositories"
	"betamoney/internal/core/domain"
	"betamoney/internal/pkg/format"

	"github.com/robfig/cron/v3"
)

// ReminderService runs the daily pending-requests summary for the
// treasurer (08:30 by default).
type ReminderService struct {
	store    repositories.Store
	schedule string
	cron     *cron.Cron
}

// NewReminderService creates a new reminder service
func NewReminderService(store repositories.Store, schedule string) *ReminderService {
	return &ReminderService{
		store:    store,
		schedule: schedule,
		cron:     cron.New(),
	}
}

// Start schedules the reminder job
func (s *ReminderService) Start() {
	if _, err := s.cron.AddFunc(s.schedule, s.remind); err != nil {
		log.Printf("❌ Failed to schedule reminder job: %v", err)
		return
	}
	s.cron.Start()
	log.Printf("✅ Reminder service started (schedule: %s)", s.schedule)
}

// Stop stops the scheduler
func (s *ReminderService) Stop() {
	s.cron.Stop()
	log.Println("🛑 Reminder service stopped")
}

// remind logs how much pending money is waiting on the treasurer
func (s *ReminderService) remind() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	all, err := s.store.GetAllRequests(ctx)
	if err != nil {
		log.Printf("⚠️ Reminder poll failed: %v", err)
		return
	}

	var count int
	var total float64
	var oldest string
	for _, r := range all {
		if r.Status == string(domain.StatusPending) {
			count++
			total += r.Amount
			// Newest-first ordering, so the last pending seen is the oldest
			oldest = r.Description
		}
	}

	if count == 0 {
		log.Println("🔔 Reminder: no pending reimbursement requests")
		return
	}
	log.Printf("🔔 Reminder: %d pending reimbursement request(s) totaling %s awaiting review (oldest: %s)",
		count, format.Currency(total), format.Truncate(oldest, 48))
}
