package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Identity is the authenticated user context resolved from a session token.
// Authorization decisions read these fields, never anything client-supplied.
type Identity struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	IsAdmin  bool      `json:"is_admin"`
}

const keyPrefix = "session:"

// Store keeps sessions server-side in Redis, keyed by an opaque random
// token. The cookie carries only the token.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Create persists the identity and returns the token to set as the cookie.
func (s *Store) Create(ctx context.Context, ident Identity) (string, error) {
	data, err := json.Marshal(ident)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}
	token := uuid.NewString()
	if err := s.client.Set(ctx, keyPrefix+token, data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Get resolves a token to its identity. Unknown or expired tokens return
// (nil, nil).
func (s *Store) Get(ctx context.Context, token string) (*Identity, error) {
	data, err := s.client.Get(ctx, keyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	ident := &Identity{}
	if err := json.Unmarshal(data, ident); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return ident, nil
}

func (s *Store) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
