package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"betamoney/internal/adapters/persistence/models"
	"betamoney/internal/adapters/persistence/repositories"
	"betamoney/internal/core/services"
)

func TestWatchService(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()

	u1 := guestUser()
	u2 := guestUser()
	now := time.Now()
	for _, r := range []models.Request{
		{ID: "w1", UserID: u1.ID, Amount: 10, Description: "a", Status: "pending", CreatedAt: now, UpdatedAt: now},
		{ID: "w2", UserID: u2.ID, Amount: 20, Description: "b", Status: "pending", CreatedAt: now, UpdatedAt: now},
	} {
		r := r
		require.NoError(t, store.SaveRequest(ctx, &r))
	}

	watch := services.NewWatchService(store, 10*time.Millisecond)
	watch.Start()
	defer watch.Stop()

	t.Run("guest snapshots are scoped to own requests", func(t *testing.T) {
		ch, unsubscribe := watch.Subscribe(u1)
		defer unsubscribe()

		select {
		case snapshot := <-ch:
			require.Len(t, snapshot, 1)
			assert.Equal(t, "w1", snapshot[0].ID)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for snapshot")
		}
	})

	t.Run("owner snapshots carry everything", func(t *testing.T) {
		ch, unsubscribe := watch.Subscribe(ownerUser())
		defer unsubscribe()

		select {
		case snapshot := <-ch:
			assert.Len(t, snapshot, 2)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for snapshot")
		}
	})

	t.Run("unsubscribe closes the channel", func(t *testing.T) {
		ch, unsubscribe := watch.Subscribe(u1)
		unsubscribe()

		// A snapshot may already be buffered; drain until the close
		deadline := time.After(time.Second)
		for open := true; open; {
			select {
			case _, open = <-ch:
			case <-deadline:
				t.Fatal("channel not closed after unsubscribe")
			}
		}

		// Unsubscribing twice is harmless
		unsubscribe()
	})
}

func TestWatchServiceStop(t *testing.T) {
	store := repositories.NewMemoryStore()
	watch := services.NewWatchService(store, 10*time.Millisecond)
	watch.Start()

	ch, _ := watch.Subscribe(ownerUser())
	watch.Stop()

	// Stop drains subscribers; the channel ends
	for range ch {
	}
}
