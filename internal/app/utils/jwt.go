package utils

import (
	"fleet_registry/internal/app/ds"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL bounds both the JWT and its Redis session.
const TokenTTL = 24 * time.Hour

// GenerateJWT signs an HS256 token for the operator.
func GenerateJWT(key []byte, userID int, role string, now time.Time) (string, error) {
	if len(key) == 0 {
		return "", fmt.Errorf("jwt key is empty")
	}
	claims := &ds.JWTClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("jwt sign error: %w", err)
	}
	return tokenStr, nil
}

// ParseJWT checks the signature and expiry and returns the claims.
func ParseJWT(key []byte, tokenStr string) (*ds.JWTClaims, error) {
	claims := &ds.JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ds.ErrInvalidCredentials, err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token: %w", ds.ErrInvalidCredentials)
	}
	return claims, nil
}
