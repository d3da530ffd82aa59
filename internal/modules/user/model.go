package user

import (
	"fmt"
	"strings"
)

// Role gates which screens a signed-in user may reach. Enforcement lives in
// the auth middleware, not in the pricing or cart logic.
type Role string

const (
	RoleOwner   Role = "OWNER"
	RoleCashier Role = "CASHIER"
)

// ParseRole validates a role string.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleOwner, RoleCashier:
		return r, nil
	default:
		return "", fmt.Errorf("invalid role: %s (allowed: OWNER, CASHIER)", s)
	}
}

// Profile is a staff account document, keyed by the identity provider's
// uid. PasswordHash is only populated in local-credential mode; the
// Firestore backend never stores it (the identity provider owns passwords).
type Profile struct {
	UID          string `json:"uid" firestore:"uid"`
	Email        string `json:"email" firestore:"email"`
	Username     string `json:"username" firestore:"username"`
	Name         string `json:"name" firestore:"name"`
	Role         Role   `json:"role" firestore:"role"`
	PasswordHash string `json:"-" firestore:"-"`
}

// CreateUserRequest is the payload for registering a staff account.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// internalDomain is the synthetic domain appended to usernames so the
// identity provider, which only knows emails, can hold username accounts.
const internalDomain = "warungkapten.id"

// InternalEmail maps an application username to the provider-side identity
// string: trim, lowercase, append the fixed synthetic domain. A pure string
// transform, not a security boundary.
func InternalEmail(username string) string {
	return strings.ToLower(strings.TrimSpace(username)) + "@" + internalDomain
}
