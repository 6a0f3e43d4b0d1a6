package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	issuer       = "portfolio-admin"
	minSecretLen = 32
)

// ErrWeakSecret is returned when a signing secret is shorter than 32 bytes.
var ErrWeakSecret = errors.New("auth: secret must be at least 32 bytes")

// IssueToken signs an HS256 admin token for subject, valid for ttl.
func IssueToken(subject string, secret []byte, ttl time.Duration) (string, error) {
	if len(secret) < minSecretLen {
		return "", ErrWeakSecret
	}
	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// VerifyToken checks signature, algorithm, issuer and expiry and returns the
// token subject.
func VerifyToken(tokenString string, secret []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("auth: %w", err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", errors.New("auth: invalid token")
	}
	return claims.Subject, nil
}
