package auth

import (
	"context"
	"fmt"
)

// Identity is the narrow contract against the external identity provider.
// SignIn verifies a credential and returns the provider uid; CreateAccount
// registers a new credential. Neither call is retried automatically.
type Identity interface {
	SignIn(ctx context.Context, email, password string) (string, error)
	CreateAccount(ctx context.Context, email, password string) (string, error)
}

// AuthError is a sign-in or account-creation failure with a human-readable
// cause. It is always reported to the user, never silently retried.
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// messageForCode translates provider error codes into the messages shown on
// the login screen.
func messageForCode(code string) string {
	switch code {
	case "EMAIL_NOT_FOUND":
		return "username is not registered"
	case "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS":
		return "incorrect password"
	case "INVALID_EMAIL":
		return "invalid email format"
	case "EMAIL_EXISTS":
		return "username is already taken"
	case "USER_DISABLED":
		return "account is disabled"
	default:
		return "sign-in failed, check your credentials and connection"
	}
}
