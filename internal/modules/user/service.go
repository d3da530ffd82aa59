package user

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// AccountCreator registers a credential with the identity provider and
// returns the provider-assigned uid. Satisfied by the auth module's
// identity implementations.
type AccountCreator interface {
	CreateAccount(ctx context.Context, email, password string) (string, error)
}

// Service defines staff account management business logic.
type Service interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*Profile, error)
	GetUser(ctx context.Context, uid string) (*Profile, error)
	ListUsers(ctx context.Context) ([]*Profile, error)
	// DeleteUser removes the profile document only; the identity provider
	// record is an administrative concern outside this service.
	DeleteUser(ctx context.Context, uid string) error
}

type service struct {
	repo     Repository
	accounts AccountCreator
}

// NewService creates a new user service.
func NewService(repo Repository, accounts AccountCreator) Service {
	return &service{repo: repo, accounts: accounts}
}

func (s *service) CreateUser(ctx context.Context, req CreateUserRequest) (*Profile, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if len(username) < 3 {
		return nil, fmt.Errorf("username must be at least 3 characters")
	}
	if strings.Contains(username, " ") {
		return nil, fmt.Errorf("username must not contain spaces")
	}
	if len(req.Password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	role, err := ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	email := InternalEmail(username)
	uid, err := s.accounts.CreateAccount(ctx, email, req.Password)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	p := &Profile{
		UID:          uid,
		Email:        email,
		Username:     username,
		Name:         strings.TrimSpace(req.Name),
		Role:         role,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetUser(ctx context.Context, uid string) (*Profile, error) {
	return s.repo.GetByUID(ctx, uid)
}

func (s *service) ListUsers(ctx context.Context) ([]*Profile, error) {
	return s.repo.List(ctx)
}

func (s *service) DeleteUser(ctx context.Context, uid string) error {
	return s.repo.Delete(ctx, uid)
}
