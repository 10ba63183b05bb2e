package subscription

import (
	"sync"
	"time"

	"github.com/m-saad-siddique/graphql-backend/graph/model"
)

// PhotoSubscriptionManager fans newly uploaded photos out to every
// subscriber of the photoUploaded subscription.
type PhotoSubscriptionManager struct {
	mu   sync.Mutex
	subs []chan *model.Photo
}

func NewPhotoSubscriptionManager() *PhotoSubscriptionManager {
	return &PhotoSubscriptionManager{}
}

func (m *PhotoSubscriptionManager) Subscribe() (<-chan *model.Photo, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan *model.Photo, 1) // buffer of 1 so Publish does not block

	m.subs = append(m.subs, ch)

	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, sub := range m.subs {
			if sub == ch {
				m.subs = append(m.subs[:i], m.subs[i+1:]...)
				close(ch)
				break
			}
		}
	}

	return ch, cancel
}

func (m *PhotoSubscriptionManager) Publish(photo *model.Photo) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, sub := range m.subs {
		select {
		case sub <- photo:
		case <-time.After(500 * time.Millisecond):
			// subscriber is not draining its channel, skip it
		}
	}
}
