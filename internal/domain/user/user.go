package user

import (
	"errors"
	"time"
)

// Closed role set. Moderators may mutate any blog or post regardless of
// ownership; writers only their own.
const (
	RoleWriter    = "writer"
	RoleModerator = "moderator"
)

func ValidRole(role string) bool {
	return role == RoleWriter || role == RoleModerator
}

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

var (
	ErrNotFound      = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")

	// Deliberately the same message whether the username is unknown or the
	// password is wrong.
	ErrInvalidCredentials = errors.New("username or password are invalid")
)

type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=60"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=writer moderator"`
}

// a partial update payload, nil fields keep their stored values.
type UpdateUserRequest struct {
	Username *string `json:"username" binding:"omitempty,min=3,max=60"`
	Password *string `json:"password" binding:"omitempty,min=8"`
	Role     *string `json:"role" binding:"omitempty,oneof=writer moderator"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
