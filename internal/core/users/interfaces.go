package users

import "context"

// Repository defines the interface for user data persistence
type Repository interface {
	// Create inserts a new user and returns it with the assigned id
	Create(ctx context.Context, user *User) (*User, error)

	// GetByID retrieves a user by its id
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByUsername retrieves a user by its unique username
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// Service defines the interface for user business logic
type Service interface {
	// Signup validates credentials and creates a new account
	Signup(ctx context.Context, req SignupRequest) (*User, error)

	// Authenticate verifies a username/password pair and returns the account
	Authenticate(ctx context.Context, req LoginRequest) (*User, error)

	// GetByID retrieves a user by id (session cookie -> identity resolution)
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByUsername retrieves a user by username (profile feed resolution)
	GetByUsername(ctx context.Context, username string) (*User, error)
}
