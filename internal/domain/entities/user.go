package entities

import (
	"errors"
	"time"
)

// User domain errors.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidEmail       = errors.New("invalid email format")
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

// User is a registered account. Users are never hard-deleted.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	AccountTier  AccountTier
	Plan         *string
	PushTokens   []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
