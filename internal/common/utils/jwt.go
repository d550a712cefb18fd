package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTokenIssuer is the issuer of session tokens
const SessionTokenIssuer = "smartrt"

// SessionClaims represents the claims in a session token
type SessionClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
}

// IssueSessionToken signs a token bound to a session ID with HS256
func IssueSessionToken(sessionID string, key []byte, ttl time.Duration, now time.Time) (string, error) {
	if sessionID == "" {
		return "", errors.New("session ID is required")
	}
	if len(key) == 0 {
		return "", errors.New("signing key is required")
	}

	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    SessionTokenIssuer,
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		SessionID: sessionID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// ParseSessionToken parses a session token and validates it
func ParseSessionToken(tokenString string, key []byte) (*SessionClaims, error) {
	// Parse the token
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(SessionTokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	// Check if the token is valid
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	// Extract the claims
	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return nil, errors.New("invalid claims type")
	}

	if claims.SessionID == "" {
		return nil, errors.New("token has no session ID")
	}

	return claims, nil
}

// ExtractBearerToken extracts the token from the Authorization header
func ExtractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("authorization header is required")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errors.New("authorization header format must be: Bearer {token}")
	}

	return parts[1], nil
}
