package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered Eventra user.
type User struct {
	UUID      uuid.UUID `json:"uuid"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserPublic is User without sensitive fields for API responses.
type UserPublic struct {
	UUID      uuid.UUID `json:"uuid"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	CreatedAt time.Time `json:"created_at"`
}

// ToPublic converts User to UserPublic.
func (u *User) ToPublic() UserPublic {
	return UserPublic{
		UUID:      u.UUID,
		Email:     u.Email,
		Name:      u.Name,
		Surname:   u.Surname,
		CreatedAt: u.CreatedAt,
	}
}
