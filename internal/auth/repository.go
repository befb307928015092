package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"go-cvbuilder-backend/internal/cache"
	"go-cvbuilder-backend/internal/domain"
	"go-cvbuilder-backend/pkg/token"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// Repository implements domain.AuthRepository on top of the user store,
// bcrypt password hashes, JWT token pairs, and redis-backed sessions.
type Repository struct {
	users    domain.UserRepository
	tokens   *token.Manager
	sessions *cache.SessionStore

	mu        sync.Mutex
	listeners map[int]func(domain.AuthEvent)
	nextID    int
}

func NewRepository(users domain.UserRepository, tokens *token.Manager, sessions *cache.SessionStore) *Repository {
	return &Repository{
		users:     users,
		tokens:    tokens,
		sessions:  sessions,
		listeners: make(map[int]func(domain.AuthEvent)),
	}
}

func (r *Repository) SignIn(ctx context.Context, creds domain.Credentials) (*domain.AuthSession, error) {
	hash, err := r.users.GetPasswordHash(ctx, creds.Email)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(creds.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	user, err := r.users.GetByEmail(ctx, creds.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user does not exist")
	}

	session, err := r.openSession(ctx, user)
	if err != nil {
		return nil, err
	}

	r.notify(domain.AuthEvent{Type: "SIGNED_IN", User: user})
	return session, nil
}

func (r *Repository) SignUp(ctx context.Context, data domain.SignUpData) (*domain.AuthSession, error) {
	existing, err := r.users.GetByEmail(ctx, data.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("User already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:        uuid.NewString(),
		Email:     data.Email,
		FullName:  data.FullName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.users.Create(ctx, user, string(hash)); err != nil {
		return nil, err
	}

	session, err := r.openSession(ctx, user)
	if err != nil {
		return nil, err
	}

	r.notify(domain.AuthEvent{Type: "SIGNED_IN", User: user})
	return session, nil
}

func (r *Repository) openSession(ctx context.Context, user *domain.User) (*domain.AuthSession, error) {
	pair, err := r.tokens.NewPair(user.ID)
	if err != nil {
		return nil, err
	}
	err = r.sessions.Put(ctx, pair.SessionID, cache.Session{
		UserID:    user.ID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	return &domain.AuthSession{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
	}, nil
}

// SignOut deletes the server-side session carried by the request
// context, invalidating the token pair.
func (r *Repository) SignOut(ctx context.Context) error {
	sessionID, _ := ctx.Value(domain.KeySessionID).(string)
	if sessionID == "" {
		return nil // nobody signed in, nothing to do
	}
	if err := r.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	r.notify(domain.AuthEvent{Type: "SIGNED_OUT"})
	return nil
}

// GetCurrentUser resolves the principal from the request context.
// Returns (nil, nil) when no valid session is attached.
func (r *Repository) GetCurrentUser(ctx context.Context) (*domain.User, error) {
	sessionID, _ := ctx.Value(domain.KeySessionID).(string)
	if sessionID == "" {
		return nil, nil
	}
	session, err := r.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	return r.users.GetByID(ctx, session.UserID)
}

// OnAuthStateChange registers a listener for sign-in/out transitions.
func (r *Repository) OnAuthStateChange(fn func(domain.AuthEvent)) domain.Unsubscribe {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.listeners, id)
		r.mu.Unlock()
	}
}

func (r *Repository) notify(event domain.AuthEvent) {
	r.mu.Lock()
	fns := make([]func(domain.AuthEvent), 0, len(r.listeners))
	for _, fn := range r.listeners {
		fns = append(fns, fn)
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn(event)
	}
}
