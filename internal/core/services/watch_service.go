package services

import (
	"context"
	"log"
	"sync"
	"time"

	"betamoney/internal/adapters/persistence/models"
	"betamoney/internal/adapters/persistence/repositories"
)

// WatchService is the explicit periodic refresh task behind the
// "real-time" request list: a single ticker polls the store and fans
// snapshots out to subscribers. Push-style backends are modeled the
// same way a subscription would be, as a channel plus an unsubscribe
// handle.
type WatchService struct {
	store    repositories.Store
	interval time.Duration

	mu     sync.Mutex
	subs   map[int]*watcher
	nextID int
	stop   chan struct{}
	done   chan struct{}
}

type watcher struct {
	user *models.User
	ch   chan []models.Request
}

// NewWatchService creates a new watch service polling at the given
// interval
func NewWatchService(store repositories.Store, interval time.Duration) *WatchService {
	return &WatchService{
		store:    store,
		interval: interval,
		subs:     make(map[int]*watcher),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the polling loop
func (s *WatchService) Start() {
	go s.run()
	log.Printf("✅ Watch service started (interval: %s)", s.interval)
}

// Stop cancels the polling timer and closes all subscriber channels
func (s *WatchService) Stop() {
	close(s.stop)
	<-s.done

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, w := range s.subs {
		close(w.ch)
		delete(s.subs, id)
	}
	log.Println("🛑 Watch service stopped")
}

// Subscribe registers a watcher scoped to the user's visibility and
// returns its snapshot channel plus an unsubscribe func. The first
// snapshot arrives on the next poll tick.
func (s *WatchService) Subscribe(user *models.User) (<-chan []models.Request, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	w := &watcher{
		user: user,
		ch:   make(chan []models.Request, 1),
	}
	s.subs[id] = w

	unsubscribe := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			close(sub.ch)
			delete(s.subs, id)
		}
	}
	return w.ch, unsubscribe
}

func (s *WatchService) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.broadcast()
		}
	}
}

// broadcast polls the store once and delivers role-scoped snapshots.
// A slow consumer has its stale pending snapshot replaced rather than
// blocking the loop; a watcher torn down mid-poll simply never sees
// the result.
func (s *WatchService) broadcast() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	all, err := s.store.GetAllRequests(ctx)
	if err != nil {
		log.Printf("⚠️ Watch poll failed: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.subs {
		snapshot := scopeFor(all, w.user)
		select {
		case w.ch <- snapshot:
		default:
			select {
			case <-w.ch:
			default:
			}
			w.ch <- snapshot
		}
	}
}

// scopeFor applies the listFor visibility rule to a polled snapshot
func scopeFor(all []models.Request, user *models.User) []models.Request {
	if user.IsOwner() {
		out := make([]models.Request, len(all))
		copy(out, all)
		return out
	}
	own := make([]models.Request, 0)
	for _, r := range all {
		if r.UserID == user.ID {
			own = append(own, r)
		}
	}
	return own
}
