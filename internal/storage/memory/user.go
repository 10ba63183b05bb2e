package memory

import (
	"fmt"
	"strconv"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/m-saad-siddique/graphql-backend/graph/model"
	"github.com/m-saad-siddique/graphql-backend/internal/apperr"
	"github.com/m-saad-siddique/graphql-backend/internal/auth"
)

type UserMemoryStorage struct {
	mu        sync.Mutex
	users     map[string]*model.User // email -> user
	passwords map[string]string      // email -> bcrypt hash
	nextId    int
}

func NewUserMemoryStorage() *UserMemoryStorage {
	return &UserMemoryStorage{
		users:     make(map[string]*model.User),
		passwords: make(map[string]string),
		nextId:    1,
	}
}

func (s *UserMemoryStorage) RegisterUser(email, password string) (*model.User, error) {
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

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[email]; exists {
		return nil, apperr.Validation("email has already been taken")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id := strconv.Itoa(s.nextId)
	s.nextId++

	user := &model.User{
		ID:    id,
		Email: email,
	}

	s.users[email] = user
	s.passwords[email] = string(hashedPassword)

	return user, nil
}

func (s *UserMemoryStorage) LoginUser(email, password string) (string, *model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// unknown email and wrong password share one failure shape
	user, exists := s.users[email]
	if !exists {
		return "", nil, apperr.ErrUnauthenticated
	}

	hashedPassword, ok := s.passwords[email]
	if !ok {
		return "", nil, apperr.ErrUnauthenticated
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)); err != nil {
		return "", nil, apperr.ErrUnauthenticated
	}

	userIDInt, err := strconv.Atoi(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("invalid user id %s: %w", user.ID, err)
	}

	token, err := auth.GenerateToken(uint(userIDInt))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return token, user, nil
}

func (s *UserMemoryStorage) GetUserById(id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.ID == id {
			return user, nil
		}
	}

	return nil, fmt.Errorf("user %s: %w", id, apperr.ErrNotFound)
}
