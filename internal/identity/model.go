package identity

import (
	"errors"
	"time"
)

// User is an operator account: admin, center manager or truck driver. The
// role lives in Type and is carried in the JWT.
type User struct {
	ID          int64     `json:"id"`
	Type        int       `json:"type"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Address     string    `json:"address"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	Password    string    `json:"-"`
}

var (
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken enforces one account per email.
	ErrEmailTaken = errors.New("a user with this email already exists")

	ErrUserTypeNotFound = errors.New("invalid user type id provided")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password; login never says which.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
