package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-cvbuilder-backend/pkg/token"

	"github.com/redis/go-redis/v9"
)

// Session is the server-side record behind a token pair. Sign-out
// deletes it, which invalidates both tokens before they expire.
type Session struct {
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func sessionKey(id string) string {
	return "session:" + id
}

func (s *SessionStore) Put(ctx context.Context, sessionID string, session Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(sessionID), payload, token.RefreshTokenDuration).Err()
}

// Get returns (nil, nil) for missing or expired sessions.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	payload, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("session payload corrupt: %w", err)
	}
	return &session, nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKey(sessionID)).Err()
}
