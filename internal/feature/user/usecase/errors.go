// Package usecase はuserフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"fmt"

	"finance_tracker/internal/shared/apperr"
)

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = fmt.Errorf("user %w", apperr.ErrNotFound)

	// ErrEmailAlreadyExists is returned when attempting to register an email that is already taken.
	ErrEmailAlreadyExists = fmt.Errorf("email already exists: %w", apperr.ErrConflict)

	// ErrInvalidCredentials is returned when login fails for any reason related to the credentials.
	ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", apperr.ErrUnauthorized)

	// ErrUserBanned is returned when a banned user tries to log in.
	ErrUserBanned = fmt.Errorf("user is banned: %w", apperr.ErrForbidden)
)
