package user

import (
	"github.com/m-saad-siddique/graphql-backend/graph/model"
)

type UserStorage interface {
	RegisterUser(email, password string) (*model.User, error)
	LoginUser(email, password string) (string, *model.User, error) // JWT + user
	GetUserById(id string) (*model.User, error)
}
