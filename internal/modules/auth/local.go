package auth

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/warungkapten/kasir-backend/internal/modules/user"
)

// localIdentity verifies credentials against bcrypt hashes held in the
// profile store. Used in dev and PostgreSQL mode, where no external
// identity provider is configured.
type localIdentity struct {
	users user.Repository
}

// NewLocalIdentity creates an Identity backed by the profile repository.
func NewLocalIdentity(users user.Repository) Identity {
	return &localIdentity{users: users}
}

func (l *localIdentity) SignIn(ctx context.Context, email, password string) (string, error) {
	p, err := l.users.GetByEmail(ctx, email)
	if err != nil {
		return "", &AuthError{Code: "EMAIL_NOT_FOUND", Message: messageForCode("EMAIL_NOT_FOUND")}
	}
	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		return "", &AuthError{Code: "INVALID_PASSWORD", Message: messageForCode("INVALID_PASSWORD")}
	}
	return p.UID, nil
}

// CreateAccount only allocates a uid; the caller persists the profile with
// its bcrypt hash, which is what SignIn later verifies.
func (l *localIdentity) CreateAccount(ctx context.Context, email, password string) (string, error) {
	if p, err := l.users.GetByEmail(ctx, email); err == nil && p != nil {
		return "", &AuthError{Code: "EMAIL_EXISTS", Message: messageForCode("EMAIL_EXISTS")}
	}
	return uuid.New().String(), nil
}
