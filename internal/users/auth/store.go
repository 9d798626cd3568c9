// Copyright (c) 2026 Shelfmark. All rights reserved.

package auth

import (
	"context"
	"time"
)

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {
	// FindByID returns the account with the given id.
	FindByID(context context.Context, id string) (*User, error)

	// FindByEmail returns the account with the given email.
	FindByEmail(context context.Context, email string) (*User, error)

	// FindByUsername returns the account with the given username.
	FindByUsername(context context.Context, username string) (*User, error)

	// Create persists a brand-new user account.
	Create(context context.Context, user *User) error

	// UpdatePassword replaces only the user's password hash.
	UpdatePassword(context context.Context, userID, newHash string) error
}

// SessionRepository defines the volatile store for refresh-token sessions.
// Sessions are keyed by the SHA-256 hash of the refresh token and expire
// with the token itself.
type SessionRepository interface {
	// Create stores a session mapping the token hash to its user id.
	Create(context context.Context, tokenHash, userID string, ttl time.Duration) error

	// UserIDByHash returns the user id for an active session, or
	// apperr.Unauthorized if the session is absent or expired.
	UserIDByHash(context context.Context, tokenHash string) (string, error)

	// Delete removes a session, invalidating its refresh token.
	Delete(context context.Context, tokenHash string) error
}
