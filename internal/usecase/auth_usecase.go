package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"go-cvbuilder-backend/internal/domain"
	"go-cvbuilder-backend/pkg/apperror"
)

const (
	minPasswordLength = 6  // characters
	maxPasswordBytes  = 72 // bcrypt hashes at most 72 bytes of input
	maxFullNameLength = 100
)

type authUsecase struct {
	authRepo domain.AuthRepository
}

func NewAuthUsecase(authRepo domain.AuthRepository) domain.AuthUsecase {
	return &authUsecase{authRepo: authRepo}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *authUsecase) SignIn(ctx context.Context, creds domain.Credentials) (*domain.AuthSession, error) {
	email := normalizeEmail(creds.Email)
	if email == "" {
		return nil, apperror.Validation("Email is required")
	}
	if !domain.ValidEmail(email) {
		return nil, apperror.Validation("Invalid email format")
	}
	if creds.Password == "" {
		return nil, apperror.Validation("Password is required")
	}
	if utf8.RuneCountInString(creds.Password) < minPasswordLength {
		return nil, apperror.Validation("Password must be at least 6 characters")
	}

	session, err := u.authRepo.SignIn(ctx, domain.Credentials{Email: email, Password: creds.Password})
	if err != nil {
		// Uniform failure message regardless of cause, so the endpoint
		// cannot be used to enumerate accounts.
		return nil, apperror.Validation("Invalid email or password")
	}
	return session, nil
}

func (u *authUsecase) SignUp(ctx context.Context, data domain.SignUpData) (*domain.AuthSession, error) {
	email := normalizeEmail(data.Email)
	if email == "" {
		return nil, apperror.Validation("Email is required")
	}
	if !domain.ValidEmail(email) {
		return nil, apperror.Validation("Invalid email format")
	}
	if data.Password == "" {
		return nil, apperror.Validation("Password is required")
	}
	if utf8.RuneCountInString(data.Password) < minPasswordLength {
		return nil, apperror.Validation("Password must be at least 6 characters")
	}
	// The upper bound stays in bytes: bcrypt silently ignores input
	// past 72 bytes, so anything longer must be rejected outright.
	if len(data.Password) > maxPasswordBytes {
		return nil, apperror.Validation("Password is too long")
	}

	fullName := strings.TrimSpace(data.FullName)
	if utf8.RuneCountInString(fullName) > maxFullNameLength {
		return nil, apperror.Validation("Full name must be at most 100 characters")
	}

	session, err := u.authRepo.SignUp(ctx, domain.SignUpData{
		Email:    email,
		Password: data.Password,
		FullName: fullName,
	})
	if err != nil {
		// Duplicate accounts surface from the provider as a message
		// containing "already registered"; everything else propagates.
		if strings.Contains(strings.ToLower(err.Error()), "already registered") {
			return nil, apperror.Conflict("An account with this email already exists")
		}
		return nil, err
	}
	return session, nil
}

func (u *authUsecase) SignOut(ctx context.Context) error {
	return u.authRepo.SignOut(ctx)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context) (*domain.User, error) {
	user, err := u.authRepo.GetCurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.Unauthenticated("Not signed in")
	}
	return user, nil
}
