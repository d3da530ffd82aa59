package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/warungkapten/kasir-backend/internal/modules/user"
)

// LoginResult carries the minted session token and the signed-in profile.
type LoginResult struct {
	Token   string        `json:"token"`
	Profile *user.Profile `json:"profile"`
}

// BootstrapRequest creates the very first OWNER account on a fresh install.
type BootstrapRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Service defines the sign-in business logic.
type Service interface {
	// Login accepts a username or a full email address. Usernames are mapped
	// to the internal synthetic domain before hitting the identity provider.
	Login(ctx context.Context, login, password string) (*LoginResult, error)

	// Bootstrap registers the initial OWNER. It refuses to run once any
	// profile exists, so the endpoint is harmless after first setup.
	Bootstrap(ctx context.Context, req BootstrapRequest) (*user.Profile, error)
}

type service struct {
	identity Identity
	users    user.Repository
	secret   []byte
}

// NewService creates a new auth service.
func NewService(identity Identity, users user.Repository, secret []byte) Service {
	return &service{identity: identity, users: users, secret: secret}
}

func (s *service) Login(ctx context.Context, login, password string) (*LoginResult, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, fmt.Errorf("login and password are required")
	}
	email := login
	if !strings.Contains(login, "@") {
		email = user.InternalEmail(login)
	}

	uid, err := s.identity.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	profile, err := s.users.GetByUID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("signed in but no profile found: %w", err)
	}
	token, err := MintToken(s.secret, profile)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Profile: profile}, nil
}

func (s *service) Bootstrap(ctx context.Context, req BootstrapRequest) (*user.Profile, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("a valid email is required")
	}
	if len(req.Password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}

	existing, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("setup already completed")
	}

	uid, err := s.identity.CreateAccount(ctx, email, req.Password)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	p := &user.Profile{
		UID:          uid,
		Email:        email,
		Username:     strings.SplitN(email, "@", 2)[0],
		Name:         strings.TrimSpace(req.Name),
		Role:         user.RoleOwner,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
