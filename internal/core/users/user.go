package users

import (
	"time"
)

// User is a registered account. The username doubles as the profile-feed
// key in URLs and as the comparison target for authorship checks.
type User struct {
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	ID           int64     `json:"id" db:"id"`
}

// SignupRequest represents the input for registering a new account
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest represents the input for authenticating an account
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
