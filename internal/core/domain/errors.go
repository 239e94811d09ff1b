package domain

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")

	ErrUserNotFound  = errors.New("user not found")
	ErrUserExists    = errors.New("user with this email already exists")
	ErrClassNotFound = errors.New("class not found")

	// ErrStoreNotConfigured means no persistent store is wired. Operators can
	// fix it by setting DATABASE_URL, unlike a generic internal failure.
	ErrStoreNotConfigured = errors.New("database is not configured")
)
