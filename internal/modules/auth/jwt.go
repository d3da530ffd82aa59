package auth

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/warungkapten/kasir-backend/internal/modules/user"
)

// Claims is the session token payload: the provider uid as subject plus
// the profile fields the POS client needs without another lookup.
type Claims struct {
	jwt.StandardClaims
	Role     string `json:"role"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

const sessionTTL = 24 * time.Hour

// MintToken signs a session token for a profile.
func MintToken(secret []byte, p *user.Profile) (string, error) {
	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   p.UID,
			ExpiresAt: time.Now().Add(sessionTTL).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
		Role:     string(p.Role),
		Name:     p.Name,
		Username: p.Username,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken verifies a session token and returns its claims.
func ParseToken(secret []byte, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
