package util

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken signs a session token binding the subject email to the issuer
// with the given lifetime.
func GenerateToken(secret, issuer, email string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   email,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifySubject validates a token and returns its subject email. Any failure
// (bad signature, expired, wrong issuer, malformed) yields "" — callers treat
// an empty subject as an authentication failure, never as a distinct error.
func VerifySubject(secret, issuer, tokenStr string) string {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return ""
	}
	if claims.Issuer != issuer {
		return ""
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Before(time.Now()) {
		return ""
	}
	return claims.Subject
}
