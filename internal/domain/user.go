package domain

import (
	"context"
	"time"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	Premium   bool      `json:"premium"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignUpData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

// AuthSession is an authenticated principal plus its token pair.
type AuthSession struct {
	User         *User     `json:"user"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AuthEvent describes an auth state transition delivered to
// OnAuthStateChange subscribers.
type AuthEvent struct {
	Type string // "SIGNED_IN" or "SIGNED_OUT"
	User *User  // nil on sign-out
}

// Unsubscribe removes an auth state listener.
type Unsubscribe func()

// AuthRepository is the identity boundary. GetCurrentUser returns
// (nil, nil) when nobody is signed in.
type AuthRepository interface {
	SignIn(ctx context.Context, creds Credentials) (*AuthSession, error)
	SignUp(ctx context.Context, data SignUpData) (*AuthSession, error)
	SignOut(ctx context.Context) error
	GetCurrentUser(ctx context.Context) (*User, error)
	OnAuthStateChange(fn func(AuthEvent)) Unsubscribe
}

type AuthUsecase interface {
	SignIn(ctx context.Context, creds Credentials) (*AuthSession, error)
	SignUp(ctx context.Context, data SignUpData) (*AuthSession, error)
	SignOut(ctx context.Context) error
	GetCurrentUser(ctx context.Context) (*User, error)
}

// UserRepository is the storage boundary for user records, consumed by
// the concrete auth repository.
type UserRepository interface {
	Create(ctx context.Context, user *User, passwordHash string) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetPasswordHash(ctx context.Context, email string) (string, error)
	Update(ctx context.Context, user *User) error
}
