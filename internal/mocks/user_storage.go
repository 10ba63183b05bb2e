package mocks

import (
	"strconv"
	"sync"

	"github.com/m-saad-siddique/graphql-backend/graph/model"
	"github.com/m-saad-siddique/graphql-backend/internal/apperr"
)

// MockUserStorage implements user.UserStorage for testing.
type MockUserStorage struct {
	mu        sync.Mutex
	users     map[string]*model.User // email -> user
	passwords map[string]string      // email -> plaintext password (tests only)
	nextID    int
}

func NewMockUserStorage() *MockUserStorage {
	return &MockUserStorage{
		users:     make(map[string]*model.User),
		passwords: make(map[string]string),
		nextID:    1,
	}
}

func (m *MockUserStorage) RegisterUser(email, password string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var messages []string
	if email == "" {
		messages = append(messages, "email can't be blank")
	}
	if password == "" {
		messages = append(messages, "password can't be blank")
	}
	if len(messages) > 0 {
		return nil, apperr.Validation(messages...)
	}

	if _, exists := m.users[email]; exists {
		return nil, apperr.Validation("email has already been taken")
	}

	id := m.nextID
	m.nextID++

	user := &model.User{
		ID:    strconv.Itoa(id),
		Email: email,
	}

	m.users[email] = user
	m.passwords[email] = password

	return user, nil
}

func (m *MockUserStorage) LoginUser(email, password string) (string, *model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, exists := m.users[email]
	if !exists {
		return "", nil, apperr.ErrUnauthenticated
	}

	storedPassword, exists := m.passwords[email]
	if !exists || storedPassword != password {
		return "", nil, apperr.ErrUnauthenticated
	}

	// a JWT-shaped token is not needed in tests, a marker string is enough
	token := "jwt-token-for-user-" + user.ID

	return token, user, nil
}

func (m *MockUserStorage) GetUserById(id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}

	return nil, apperr.ErrNotFound
}
