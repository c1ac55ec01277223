package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/snackshop/snackshop-api/internal/model"
	"github.com/snackshop/snackshop-api/internal/repository"
	"github.com/snackshop/snackshop-api/internal/session"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// SessionStore is the slice of the session store the auth flow needs.
type SessionStore interface {
	Create(ctx context.Context, ident session.Identity) (string, error)
	Delete(ctx context.Context, token string) error
}

type AuthService struct {
	userRepo repository.UserRepository
	sessions SessionStore
}

func NewAuthService(userRepo repository.UserRepository, sessions SessionStore) *AuthService {
	return &AuthService{userRepo: userRepo, sessions: sessions}
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*model.User, error) {
	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{Username: username, PasswordHash: string(hashed)}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and opens a server-side session. The returned
// token is opaque; the identity it resolves to lives only in the store.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *session.Identity, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	ident := session.Identity{UserID: user.ID, Username: user.Username, IsAdmin: user.IsAdmin}
	token, err := s.sessions.Create(ctx, ident)
	if err != nil {
		return "", nil, fmt.Errorf("create session: %w", err)
	}
	return token, &ident, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// EnsureAdmin seeds the bootstrap admin account if it does not exist yet.
// Safe to call on every startup.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("check admin: %w", err)
	}
	if existing != nil {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := &model.User{Username: username, PasswordHash: string(hashed), IsAdmin: true}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	return nil
}
