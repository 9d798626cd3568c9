// Copyright (c) 2026 Shelfmark. All rights reserved.

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark/internal/platform/apperr"
	"github.com/shelfmark/shelfmark/internal/platform/dberr"
	"github.com/shelfmark/shelfmark/internal/platform/sec"
	"github.com/shelfmark/shelfmark/internal/users/auth"
)

type fakeUserRepository struct {
	byEmail    map[string]*auth.User
	byUsername map[string]*auth.User
	byID       map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		byEmail:    map[string]*auth.User{},
		byUsername: map[string]*auth.User{},
		byID:       map[string]*auth.User{},
	}
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := f.byID[id]; ok {
		return user, nil
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	if user, ok := f.byEmail[email]; ok {
		return user, nil
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	if user, ok := f.byUsername[username]; ok {
		return user, nil
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	f.byEmail[user.Email] = user
	f.byUsername[user.Username] = user
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	user, ok := f.byID[userID]
	if !ok {
		return dberr.ErrNotFound
	}
	user.PasswordHash = newHash
	return nil
}

type fakeSessionRepository struct {
	sessions map[string]string
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: map[string]string{}}
}

func (f *fakeSessionRepository) Create(_ context.Context, tokenHash, userID string, _ time.Duration) error {
	f.sessions[tokenHash] = userID
	return nil
}

func (f *fakeSessionRepository) UserIDByHash(_ context.Context, tokenHash string) (string, error) {
	if userID, ok := f.sessions[tokenHash]; ok {
		return userID, nil
	}
	return "", apperr.Unauthorized("Session is invalid or expired")
}

func (f *fakeSessionRepository) Delete(_ context.Context, tokenHash string) error {
	delete(f.sessions, tokenHash)
	return nil
}

type staticTokenProvider struct{}

func (staticTokenProvider) GenerateAccessToken(userID, username string, _ time.Duration) (string, error) {
	return "jwt-for-" + username, nil
}

func newService(users *fakeUserRepository, sessions *fakeSessionRepository) *auth.Service {
	return auth.NewService(users, sessions, staticTokenProvider{})
}

func registerUser(t *testing.T, service *auth.Service) *auth.User {
	t.Helper()
	user, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "reader",
		Email:    "reader@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	return user
}

func TestRegister_RejectsDuplicateIdentity(t *testing.T) {
	users := newFakeUserRepository()
	service := newService(users, newFakeSessionRepository())
	registerUser(t, service)

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "other",
		Email:    "reader@example.com",
		Password: "password123",
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	_, err = service.Register(context.Background(), auth.RegisterInput{
		Username: "reader",
		Email:    "other@example.com",
		Password: "password123",
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

func TestRegister_NeverStoresPlaintext(t *testing.T) {
	users := newFakeUserRepository()
	service := newService(users, newFakeSessionRepository())

	user := registerUser(t, service)
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("correct horse battery", user.PasswordHash))
}

func TestLogin(t *testing.T) {
	users := newFakeUserRepository()
	sessions := newFakeSessionRepository()
	service := newService(users, sessions)
	registerUser(t, service)

	t.Run("by_email", func(t *testing.T) {
		session, err := service.Login(context.Background(), auth.LoginInput{
			Login:    "reader@example.com",
			Password: "correct horse battery",
		})
		require.NoError(t, err)
		assert.Equal(t, "jwt-for-reader", session.AccessToken)
		assert.NotEmpty(t, session.RefreshToken)
	})

	t.Run("by_username", func(t *testing.T) {
		_, err := service.Login(context.Background(), auth.LoginInput{
			Login:    "reader",
			Password: "correct horse battery",
		})
		require.NoError(t, err)
	})

	t.Run("wrong_password", func(t *testing.T) {
		_, err := service.Login(context.Background(), auth.LoginInput{
			Login:    "reader",
			Password: "wrong",
		})
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	})

	t.Run("unknown_login_same_error", func(t *testing.T) {
		_, err := service.Login(context.Background(), auth.LoginInput{
			Login:    "nobody",
			Password: "whatever",
		})
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	})
}

/*
TestRefreshSession_RotatesToken verifies refresh token rotation: the
presented token must be consumed, so replaying it after a successful
refresh fails.
*/
func TestRefreshSession_RotatesToken(t *testing.T) {
	users := newFakeUserRepository()
	sessions := newFakeSessionRepository()
	service := newService(users, sessions)
	registerUser(t, service)

	login, err := service.Login(context.Background(), auth.LoginInput{
		Login:    "reader",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	refreshed, err := service.RefreshSession(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	_, err = service.RefreshSession(context.Background(), login.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

func TestLogout_InvalidatesSession(t *testing.T) {
	users := newFakeUserRepository()
	sessions := newFakeSessionRepository()
	service := newService(users, sessions)
	registerUser(t, service)

	login, err := service.Login(context.Background(), auth.LoginInput{
		Login:    "reader",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), login.RefreshToken))

	_, err = service.RefreshSession(context.Background(), login.RefreshToken)
	require.Error(t, err)

	// Logging out twice is still a success.
	require.NoError(t, service.Logout(context.Background(), login.RefreshToken))
}

func TestChangePassword(t *testing.T) {
	users := newFakeUserRepository()
	service := newService(users, newFakeSessionRepository())
	user := registerUser(t, service)

	err := service.ChangePassword(context.Background(), user.ID, "wrong", "new password 123")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	require.NoError(t, service.ChangePassword(context.Background(), user.ID, "correct horse battery", "new password 123"))
	assert.True(t, sec.CheckPasswordHash("new password 123", users.byID[user.ID].PasswordHash))
}
