package subscription

import (
	"testing"
	"time"

	"github.com/m-saad-siddique/graphql-backend/graph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhotoSubscriptionManager_Subscribe(t *testing.T) {
	t.Run("Should create a subscription channel", func(t *testing.T) {
		manager := NewPhotoSubscriptionManager()

		ch, cancel := manager.Subscribe()
		assert.NotNil(t, ch)
		assert.NotNil(t, cancel)

		manager.mu.Lock()
		assert.Len(t, manager.subs, 1)
		manager.mu.Unlock()

		cancel()

		manager.mu.Lock()
		assert.Len(t, manager.subs, 0)
		manager.mu.Unlock()
	})

	t.Run("Multiple subscriptions", func(t *testing.T) {
		manager := NewPhotoSubscriptionManager()

		_, cancel1 := manager.Subscribe()
		_, cancel2 := manager.Subscribe()
		_, cancel3 := manager.Subscribe()

		manager.mu.Lock()
		assert.Len(t, manager.subs, 3)
		manager.mu.Unlock()

		cancel2()

		manager.mu.Lock()
		assert.Len(t, manager.subs, 2)
		manager.mu.Unlock()

		cancel1()
		cancel3()

		manager.mu.Lock()
		assert.Len(t, manager.subs, 0)
		manager.mu.Unlock()
	})

	t.Run("Cancel is safe to call twice", func(t *testing.T) {
		manager := NewPhotoSubscriptionManager()

		_, cancel := manager.Subscribe()
		cancel()
		assert.NotPanics(t, func() { cancel() })
	})
}

func TestPhotoSubscriptionManager_Publish(t *testing.T) {
	t.Run("Should send photo to every subscriber", func(t *testing.T) {
		manager := NewPhotoSubscriptionManager()

		ch1, cancel1 := manager.Subscribe()
		defer cancel1()
		ch2, cancel2 := manager.Subscribe()
		defer cancel2()

		photo := &model.Photo{ID: "1", Title: "Sunset", UserID: "7"}

		manager.Publish(photo)

		for _, ch := range []<-chan *model.Photo{ch1, ch2} {
			select {
			case received := <-ch:
				require.NotNil(t, received)
				assert.Equal(t, "Sunset", received.Title)
			case <-time.After(time.Second):
				t.Fatal("expected a published photo, got none")
			}
		}
	})

	t.Run("Publish with no subscribers does not block", func(t *testing.T) {
		manager := NewPhotoSubscriptionManager()

		done := make(chan struct{})
		go func() {
			manager.Publish(&model.Photo{ID: "1"})
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("publish blocked with no subscribers")
		}
	})

	t.Run("Cancelled subscriber no longer receives photos", func(t *testing.T) {
		manager := NewPhotoSubscriptionManager()

		ch, cancel := manager.Subscribe()
		cancel()

		manager.Publish(&model.Photo{ID: "1"})

		_, open := <-ch
		assert.False(t, open)
	})
}
