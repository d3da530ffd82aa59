package user

import (
	"context"
	"errors"
	"testing"
)

func TestInternalEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"siti", "siti@warungkapten.id"},
		{"SITI", "siti@warungkapten.id"},
		{"  budi  ", "budi@warungkapten.id"},
	}
	for _, tt := range tests {
		if got := InternalEmail(tt.in); got != tt.want {
			t.Errorf("InternalEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"OWNER", RoleOwner, false},
		{"cashier", RoleCashier, false},
		{" Owner ", RoleOwner, false},
		{"ADMIN", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseRole(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRole(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRole(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

type fakeRepo struct {
	profiles map[string]*Profile
}

func newFakeRepo() *fakeRepo { return &fakeRepo{profiles: make(map[string]*Profile)} }

func (f *fakeRepo) Create(ctx context.Context, p *Profile) error {
	f.profiles[p.UID] = p
	return nil
}

func (f *fakeRepo) GetByUID(ctx context.Context, uid string) (*Profile, error) {
	if p, ok := f.profiles[uid]; ok {
		return p, nil
	}
	return nil, errors.New("user not found")
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (*Profile, error) {
	for _, p := range f.profiles {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, errors.New("user not found")
}

func (f *fakeRepo) List(ctx context.Context) ([]*Profile, error) {
	out := make([]*Profile, 0, len(f.profiles))
	for _, p := range f.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeRepo) Delete(ctx context.Context, uid string) error {
	delete(f.profiles, uid)
	return nil
}

// fakeAccounts hands out sequential uids and records registrations.
type fakeAccounts struct {
	n      int
	emails []string
}

func (f *fakeAccounts) CreateAccount(ctx context.Context, email, password string) (string, error) {
	f.n++
	f.emails = append(f.emails, email)
	return "uid-" + email, nil
}

func TestCreateUser(t *testing.T) {
	repo := newFakeRepo()
	accounts := &fakeAccounts{}
	svc := NewService(repo, accounts)

	p, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Name:     "Siti Rahma",
		Username: " SITI ",
		Password: "rahasia1",
		Role:     "cashier",
	})
	if err != nil {
		t.Fatal(err)
	}
	if p.Username != "siti" {
		t.Errorf("username = %q, want normalised siti", p.Username)
	}
	if p.Email != "siti@warungkapten.id" {
		t.Errorf("email = %q", p.Email)
	}
	if p.Role != RoleCashier {
		t.Errorf("role = %s, want CASHIER", p.Role)
	}
	if p.PasswordHash == "" {
		t.Error("password hash not stored")
	}
	if len(accounts.emails) != 1 || accounts.emails[0] != "siti@warungkapten.id" {
		t.Errorf("identity provider registrations = %v", accounts.emails)
	}
	if _, ok := repo.profiles[p.UID]; !ok {
		t.Error("profile not persisted")
	}
}

func TestCreateUserValidation(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeAccounts{})
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateUserRequest
	}{
		{"short username", CreateUserRequest{Name: "A", Username: "ab", Password: "rahasia1", Role: "CASHIER"}},
		{"username with space", CreateUserRequest{Name: "A", Username: "si ti", Password: "rahasia1", Role: "CASHIER"}},
		{"short password", CreateUserRequest{Name: "A", Username: "siti", Password: "12345", Role: "CASHIER"}},
		{"missing name", CreateUserRequest{Username: "siti", Password: "rahasia1", Role: "CASHIER"}},
		{"bad role", CreateUserRequest{Name: "A", Username: "siti", Password: "rahasia1", Role: "ADMIN"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateUser(ctx, tt.req); err == nil {
				t.Error("invalid request accepted")
			}
		})
	}
}

func TestDeleteUser(t *testing.T) {
	repo := newFakeRepo()
	repo.Create(context.Background(), &Profile{UID: "uid-1", Username: "siti"})
	svc := NewService(repo, &fakeAccounts{})

	if err := svc.DeleteUser(context.Background(), "uid-1"); err != nil {
		t.Fatal(err)
	}
	if _, ok := repo.profiles["uid-1"]; ok {
		t.Error("profile still present after delete")
	}
}
