package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/warungkapten/kasir-backend/internal/modules/user"
)

type contextKey struct{}

var claimsKey contextKey

// FromContext returns the session claims set by Authenticate.
func FromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}

// Middleware authenticates requests with the session JWT.
type Middleware struct {
	secret []byte
}

func NewMiddleware(secret []byte) *Middleware {
	return &Middleware{secret: secret}
}

// Authenticate rejects requests without a valid Bearer token and stores the
// claims in the request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			return
		}
		claims, err := ParseToken(m.secret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	})
}

// RequireOwner gates a route subtree to OWNER accounts. Reports, menu
// management, staff accounts and transaction deletion sit behind this.
func RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := FromContext(r.Context())
		if !ok {
			respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "not signed in"})
			return
		}
		if claims.Role != string(user.RoleOwner) {
			respondJSON(w, http.StatusForbidden, map[string]string{"error": "owner access required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
