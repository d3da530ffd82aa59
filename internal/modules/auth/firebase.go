package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	fbauth "firebase.google.com/go/v4/auth"
)

// signInEndpoint is the Identity Toolkit password sign-in REST endpoint.
// The admin SDK can mint and revoke accounts but cannot verify a password,
// so sign-in goes through the same API the web client uses.
const signInEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

type firebaseIdentity struct {
	client *fbauth.Client
	apiKey string
	http   *http.Client
}

// NewFirebaseIdentity creates an Identity backed by Firebase Authentication.
// apiKey is the project's web API key used for the REST sign-in call.
func NewFirebaseIdentity(client *fbauth.Client, apiKey string) Identity {
	return &firebaseIdentity{client: client, apiKey: apiKey, http: http.DefaultClient}
}

func (f *firebaseIdentity) SignIn(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return "", err
	}
	url := fmt.Sprintf("%s?key=%s", signInEndpoint, f.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.http.Do(req)
	if err != nil {
		return "", &AuthError{Code: "NETWORK", Message: messageForCode("")}
	}
	defer resp.Body.Close()

	var out struct {
		LocalID string `json:"localId"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		code := out.Error.Message
		return "", &AuthError{Code: code, Message: messageForCode(code)}
	}
	return out.LocalID, nil
}

func (f *firebaseIdentity) CreateAccount(ctx context.Context, email, password string) (string, error) {
	params := (&fbauth.UserToCreate{}).Email(email).Password(password)
	rec, err := f.client.CreateUser(ctx, params)
	if err != nil {
		if fbauth.IsEmailAlreadyExists(err) {
			return "", &AuthError{Code: "EMAIL_EXISTS", Message: messageForCode("EMAIL_EXISTS")}
		}
		return "", err
	}
	return rec.UID, nil
}
