package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/snackshop/snackshop-api/internal/model"
	"github.com/snackshop/snackshop-api/internal/session"
)

type mockUserRepo struct {
	byName map[string]*model.User
	byID   map[uuid.UUID]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{byName: make(map[string]*model.User), byID: make(map[uuid.UUID]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	m.byName[user.Username] = user
	m.byID[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	return m.byID[id], nil
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	return m.byName[username], nil
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	var users []model.User
	for _, u := range m.byID {
		users = append(users, *u)
	}
	return users, nil
}

func (m *mockUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	u, ok := m.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	delete(m.byID, id)
	delete(m.byName, u.Username)
	return nil
}

type mockSessionStore struct {
	sessions map[string]session.Identity
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: make(map[string]session.Identity)}
}

func (m *mockSessionStore) Create(_ context.Context, ident session.Identity) (string, error) {
	token := uuid.NewString()
	m.sessions[token] = ident
	return token, nil
}

func (m *mockSessionStore) Delete(_ context.Context, token string) error {
	delete(m.sessions, token)
	return nil
}

func TestAuthService_Register(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(repo, newMockSessionStore())

	user, err := svc.Register(context.Background(), "alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.False(t, user.IsAdmin)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	repo := newMockUserRepo()
	repo.byName["alice"] = &model.User{Username: "alice"}
	svc := NewAuthService(repo, newMockSessionStore())

	_, err := svc.Register(context.Background(), "alice", "secret123")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthService_Login(t *testing.T) {
	repo := newMockUserRepo()
	sessions := newMockSessionStore()
	svc := NewAuthService(repo, sessions)

	_, err := svc.Register(context.Background(), "alice", "secret123")
	require.NoError(t, err)

	token, ident, err := svc.Login(context.Background(), "alice", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alice", ident.Username)
	assert.False(t, ident.IsAdmin)
	assert.Equal(t, *ident, sessions.sessions[token])
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(repo, newMockSessionStore())

	_, err := svc.Register(context.Background(), "alice", "secret123")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "alice", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc := NewAuthService(newMockUserRepo(), newMockSessionStore())
	_, _, err := svc.Login(context.Background(), "nobody", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Logout(t *testing.T) {
	repo := newMockUserRepo()
	sessions := newMockSessionStore()
	svc := NewAuthService(repo, sessions)

	_, err := svc.Register(context.Background(), "alice", "secret123")
	require.NoError(t, err)
	token, _, err := svc.Login(context.Background(), "alice", "secret123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), token))
	assert.Empty(t, sessions.sessions)
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(repo, newMockSessionStore())

	require.NoError(t, svc.EnsureAdmin(context.Background(), "admin", "SnackBoss2025"))
	admin := repo.byName["admin"]
	require.NotNil(t, admin)
	assert.True(t, admin.IsAdmin)

	// Idempotent on restart.
	require.NoError(t, svc.EnsureAdmin(context.Background(), "admin", "SnackBoss2025"))
	assert.Len(t, repo.byID, 1)
}
