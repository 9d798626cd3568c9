// Copyright (c) 2026 Shelfmark. All rights reserved.

package auth

import "time"

// User represents one registered account. The password hash never leaves
// the server.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"display_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Global field names for validation
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldLogin           = "login"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
)

// RefreshTokenLength is the entropy (in bytes) of a refresh token.
const RefreshTokenLength = 32
