package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Role is the coarse authorization tier assigned to a user.
// Admins bypass per-task ownership checks.
type Role string

// Possible user roles.
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Common validation errors for User
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyUsername       = errors.New("username cannot be empty")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
	ErrInvalidRole         = errors.New("invalid role")
)

// User represents a registered user of the task manager.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Password       string    `json:"-"` // Plaintext password, held only between request parsing and hashing
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewUser creates a new User with the given username and password.
// It generates a new UUID for the user ID, assigns the default role,
// and sets the creation timestamp.
// Returns an error if validation fails.
//
// NOTE: This function only sets up the user structure with the plaintext
// password. The caller is responsible for hashing the password before
// storing the user.
func NewUser(username, password string) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Username:  username,
		Password:  password, // Plaintext password - must be hashed before storage
		Role:      RoleUser,
		CreatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Username == "" {
		return ErrEmptyUsername
	}

	if !isValidRole(u.Role) {
		return ErrInvalidRole
	}

	if u.Password != "" {
		// bcrypt silently truncates input beyond 72 bytes
		if len(u.Password) > 72 {
			return ErrPasswordTooLong
		}
	} else {
		// Users loaded from the database carry only the hash
		if u.HashedPassword == "" {
			return ErrEmptyPassword
		}
	}

	return nil
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// isValidRole checks if the given role is a known Role.
func isValidRole(role Role) bool {
	switch role {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}
