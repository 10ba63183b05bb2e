package postgres

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/m-saad-siddique/graphql-backend/graph/model"
	"github.com/m-saad-siddique/graphql-backend/internal/apperr"
	"github.com/m-saad-siddique/graphql-backend/internal/auth"
	"github.com/m-saad-siddique/graphql-backend/models"
)

type UserPostgresStorage struct{}

func NewUserPostgresStorage() *UserPostgresStorage {
	return &UserPostgresStorage{}
}

func (s *UserPostgresStorage) RegisterUser(email, password string) (*model.User, error) {
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

	// advisory check; the unique column is the authority
	var existing models.User
	if err := DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, apperr.Validation("email has already been taken")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hashedPassword),
	}

	if err := DB.Create(user).Error; err != nil {
		return nil, apperr.Validation("email has already been taken")
	}

	return &model.User{
		ID:    fmt.Sprint(user.ID),
		Email: user.Email,
	}, nil
}

func (s *UserPostgresStorage) LoginUser(email, password string) (string, *model.User, error) {
	// both an unknown email and a wrong password must produce the exact same
	// failure shape
	var user models.User
	if err := DB.Where("email = ?", email).First(&user).Error; err != nil {
		return "", nil, apperr.ErrUnauthenticated
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperr.ErrUnauthenticated
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return token, &model.User{
		ID:    fmt.Sprint(user.ID),
		Email: user.Email,
	}, nil
}

func (s *UserPostgresStorage) GetUserById(id string) (*model.User, error) {
	var user models.User
	if err := DB.First(&user, id).Error; err != nil {
		return nil, fmt.Errorf("user %s: %w", id, apperr.ErrNotFound)
	}

	return &model.User{
		ID:    fmt.Sprint(user.ID),
		Email: user.Email,
	}, nil
}
