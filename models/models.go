package models

import (
	"time"

	"github.com/jinzhu/gorm"
)

type User struct {
	gorm.Model
	Email    string `gorm:"unique"`
	Password string
	Photos   []Photo `gorm:"foreignkey:UserID"`
	Likes    []Like  `gorm:"foreignkey:UserID"`
}

type Photo struct {
	gorm.Model
	Title     string
	UserID    uint
	ImagePath string
	Likes     []Like `gorm:"foreignkey:PhotoID"`
}

// Like deliberately does not embed gorm.Model: a DeletedAt tombstone would
// keep the (user_id, photo_id) unique index occupied after an unlike and
// block liking the same photo again. Deletes must be hard deletes.
type Like struct {
	ID        uint `gorm:"primary_key"`
	CreatedAt time.Time
	UserID    uint `gorm:"not null;unique_index:idx_user_photo"`
	PhotoID   uint `gorm:"not null;unique_index:idx_user_photo"`
}
