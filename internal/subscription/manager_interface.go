package subscription

import "github.com/m-saad-siddique/graphql-backend/graph/model"

type Manager interface {
	Subscribe() (<-chan *model.Photo, func())
	Publish(photo *model.Photo)
}
