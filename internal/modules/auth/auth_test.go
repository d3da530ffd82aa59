package auth

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/warungkapten/kasir-backend/internal/modules/user"
)

// fakeUsers is an in-memory user.Repository keyed by uid.
type fakeUsers struct {
	profiles map[string]*user.Profile
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{profiles: make(map[string]*user.Profile)}
}

func (f *fakeUsers) Create(ctx context.Context, p *user.Profile) error {
	f.profiles[p.UID] = p
	return nil
}

func (f *fakeUsers) GetByUID(ctx context.Context, uid string) (*user.Profile, error) {
	if p, ok := f.profiles[uid]; ok {
		return p, nil
	}
	return nil, errors.New("user not found")
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*user.Profile, error) {
	for _, p := range f.profiles {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, errors.New("user not found")
}

func (f *fakeUsers) List(ctx context.Context) ([]*user.Profile, error) {
	out := make([]*user.Profile, 0, len(f.profiles))
	for _, p := range f.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeUsers) Delete(ctx context.Context, uid string) error {
	delete(f.profiles, uid)
	return nil
}

func seedCashier(t *testing.T, users *fakeUsers, username, password string) *user.Profile {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	p := &user.Profile{
		UID:          "uid-" + username,
		Email:        user.InternalEmail(username),
		Username:     username,
		Name:         "Kasir " + username,
		Role:         user.RoleCashier,
		PasswordHash: string(hash),
	}
	users.Create(context.Background(), p)
	return p
}

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	p := &user.Profile{UID: "uid-1", Username: "siti", Name: "Siti", Role: user.RoleOwner}

	token, err := MintToken(secret, p)
	if err != nil {
		t.Fatal(err)
	}
	claims, err := ParseToken(secret, token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Subject != "uid-1" || claims.Role != "OWNER" || claims.Username != "siti" {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := ParseToken([]byte("wrong-secret"), token); err == nil {
		t.Error("token accepted with wrong secret")
	}
	if _, err := ParseToken(secret, "not-a-token"); err == nil {
		t.Error("garbage accepted as token")
	}
}

func TestLocalIdentitySignIn(t *testing.T) {
	users := newFakeUsers()
	seedCashier(t, users, "siti", "rahasia1")
	id := NewLocalIdentity(users)
	ctx := context.Background()

	uid, err := id.SignIn(ctx, "siti@warungkapten.id", "rahasia1")
	if err != nil {
		t.Fatal(err)
	}
	if uid != "uid-siti" {
		t.Errorf("uid = %q, want uid-siti", uid)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantCode string
	}{
		{"wrong password", "siti@warungkapten.id", "salah", "INVALID_PASSWORD"},
		{"unknown email", "ghost@warungkapten.id", "rahasia1", "EMAIL_NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := id.SignIn(ctx, tt.email, tt.password)
			var ae *AuthError
			if !errors.As(err, &ae) {
				t.Fatalf("error = %v, want AuthError", err)
			}
			if ae.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", ae.Code, tt.wantCode)
			}
		})
	}
}

func TestLocalIdentityCreateAccountDuplicate(t *testing.T) {
	users := newFakeUsers()
	seedCashier(t, users, "siti", "rahasia1")
	id := NewLocalIdentity(users)

	_, err := id.CreateAccount(context.Background(), "siti@warungkapten.id", "whatever")
	var ae *AuthError
	if !errors.As(err, &ae) || ae.Code != "EMAIL_EXISTS" {
		t.Errorf("error = %v, want EMAIL_EXISTS", err)
	}
}

func TestLoginMapsUsernameToInternalEmail(t *testing.T) {
	users := newFakeUsers()
	seedCashier(t, users, "siti", "rahasia1")
	svc := NewService(NewLocalIdentity(users), users, []byte("test-secret"))
	ctx := context.Background()

	// Bare username and full email both work.
	for _, login := range []string{"siti", "SITI", "siti@warungkapten.id"} {
		res, err := svc.Login(ctx, login, "rahasia1")
		if err != nil {
			t.Fatalf("Login(%q): %v", login, err)
		}
		if res.Token == "" || res.Profile.Username != "siti" {
			t.Errorf("Login(%q) = %+v", login, res)
		}
	}

	if _, err := svc.Login(ctx, "", "rahasia1"); err == nil {
		t.Error("empty login accepted")
	}
	if _, err := svc.Login(ctx, "siti", "salah"); err == nil {
		t.Error("wrong password accepted")
	}
}

func TestBootstrap(t *testing.T) {
	users := newFakeUsers()
	svc := NewService(NewLocalIdentity(users), users, []byte("test-secret"))
	ctx := context.Background()

	p, err := svc.Bootstrap(ctx, BootstrapRequest{
		Name:     "Kapten",
		Email:    "Kapten@Warungkapten.id",
		Password: "rahasia1",
	})
	if err != nil {
		t.Fatal(err)
	}
	if p.Role != user.RoleOwner {
		t.Errorf("role = %s, want OWNER", p.Role)
	}
	if p.Email != "kapten@warungkapten.id" {
		t.Errorf("email = %q, want lowercased", p.Email)
	}
	if p.PasswordHash == "" {
		t.Error("owner profile missing password hash")
	}

	// The owner can sign in right away.
	if _, err := svc.Login(ctx, "kapten", "rahasia1"); err != nil {
		t.Errorf("owner login after bootstrap: %v", err)
	}

	// A second bootstrap is refused once any profile exists.
	if _, err := svc.Bootstrap(ctx, BootstrapRequest{
		Name:     "Penyusup",
		Email:    "intruder@warungkapten.id",
		Password: "rahasia1",
	}); err == nil {
		t.Fatal("second bootstrap accepted")
	}
}

func TestBootstrapValidation(t *testing.T) {
	users := newFakeUsers()
	svc := NewService(NewLocalIdentity(users), users, []byte("test-secret"))
	ctx := context.Background()

	tests := []struct {
		name string
		req  BootstrapRequest
	}{
		{"missing email", BootstrapRequest{Name: "Kapten", Password: "rahasia1"}},
		{"malformed email", BootstrapRequest{Name: "Kapten", Email: "kapten", Password: "rahasia1"}},
		{"short password", BootstrapRequest{Name: "Kapten", Email: "k@w.id", Password: "12345"}},
		{"missing name", BootstrapRequest{Email: "k@w.id", Password: "rahasia1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Bootstrap(ctx, tt.req); err == nil {
				t.Error("invalid request accepted")
			}
		})
	}
	if len(users.profiles) != 0 {
		t.Errorf("validation failures created %d profiles", len(users.profiles))
	}
}
