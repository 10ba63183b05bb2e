package model

// Node is any entity reachable through an opaque global identifier.
type Node interface {
	IsNode()
	GetID() string
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (User) IsNode() {}

func (u User) GetID() string { return u.ID }

type Photo struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	UserID   string  `json:"userId"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

func (Photo) IsNode() {}

func (p Photo) GetID() string { return p.ID }

type Like struct {
	ID      string `json:"id"`
	UserID  string `json:"userId"`
	PhotoID string `json:"photoId"`
}

func (Like) IsNode() {}

func (l Like) GetID() string { return l.ID }

// PhotoList is a feed page. TotalCount is the size of the filtered set
// before limit/offset were applied.
type PhotoList struct {
	TotalCount int      `json:"totalCount"`
	Photos     []*Photo `json:"photos"`
}

type AuthPayload struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type ToggleLikePayload struct {
	Liked bool `json:"liked"`
}
