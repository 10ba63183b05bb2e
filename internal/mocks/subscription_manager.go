package mocks

import (
	"sync"
	"time"

	"github.com/m-saad-siddique/graphql-backend/graph/model"
)

// MockSubscriptionManager implements subscription.Manager and records every
// published photo so tests can assert on notifications.
type MockSubscriptionManager struct {
	mu            sync.Mutex
	subs          []chan *model.Photo
	notifications []*model.Photo
}

func NewMockSubscriptionManager() *MockSubscriptionManager {
	return &MockSubscriptionManager{}
}

func (m *MockSubscriptionManager) Subscribe() (<-chan *model.Photo, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan *model.Photo, 1)
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

func (m *MockSubscriptionManager) Publish(photo *model.Photo) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, sub := range m.subs {
		select {
		case sub <- photo:
		case <-time.After(500 * time.Millisecond):
		}
	}

	m.notifications = append(m.notifications, photo)
}

// Notifications returns every photo published so far (test helper).
func (m *MockSubscriptionManager) Notifications() []*model.Photo {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*model.Photo, len(m.notifications))
	copy(result, m.notifications)
	return result
}
