package users

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Usernames must start and end with an alphanumeric and may contain
// hyphens and underscores in between.
var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9_-]*[a-zA-Z0-9])?$`)

const (
	minUsernameLen = 3
	maxUsernameLen = 30
	minPasswordLen = 6
	maxPasswordLen = 72 // bcrypt input limit
)

type userService struct {
	repo Repository
}

// NewUserService creates a new user service
func NewUserService(repo Repository) Service {
	return &userService{repo: repo}
}

// Signup validates credentials, hashes the password and creates the account
func (s *userService) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	req.Username = strings.TrimSpace(strings.ToLower(req.Username))

	if err := validateUsername(req.Username); err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		Username:     req.Username,
		PasswordHash: string(hash),
	}

	// Repository surfaces ErrUsernameTaken on duplicate usernames
	return s.repo.Create(ctx, user)
}

// Authenticate verifies a username/password pair.
// Lookup misses and hash mismatches both return ErrInvalidCredentials so
// the login form cannot be used to probe for registered usernames.
func (s *userService) Authenticate(ctx context.Context, req LoginRequest) (*User, error) {
	username := strings.TrimSpace(strings.ToLower(req.Username))
	if username == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user %q: %w", username, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetByID retrieves a user by id
func (s *userService) GetByID(ctx context.Context, id int64) (*User, error) {
	if id <= 0 {
		return nil, ErrUserNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// GetByUsername retrieves a user by username
func (s *userService) GetByUsername(ctx context.Context, username string) (*User, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	if username == "" {
		return nil, ErrUserNotFound
	}
	return s.repo.GetByUsername(ctx, username)
}

func validateUsername(username string) error {
	if len(username) < minUsernameLen || len(username) > maxUsernameLen {
		return NewValidationError("username",
			fmt.Sprintf("username must be %d-%d characters", minUsernameLen, maxUsernameLen))
	}
	if !usernameRegex.MatchString(username) {
		return NewValidationError("username",
			"username may contain only letters, digits, hyphens and underscores")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLen || len(password) > maxPasswordLen {
		return NewValidationError("password",
			fmt.Sprintf("password must be %d-%d characters", minPasswordLen, maxPasswordLen))
	}
	return nil
}
