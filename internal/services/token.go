package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrEmptySecret  = errors.New("token secret is not configured")
)

// TokenClaims are the claims carried by an API write token
type TokenClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

const ScopeItemsWrite = "items:write"

// TokenService issues and verifies HS256 API tokens
type TokenService struct {
	key    []byte
	expiry time.Duration
	now    func() time.Time
}

// NewTokenService derives the signing key from secret
func NewTokenService(secret string, expiry time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &TokenService{
		key:    DeriveSigningKey(secret),
		expiry: expiry,
		now:    time.Now,
	}, nil
}

// Issue signs a write token for subject
func (s *TokenService) Issue(subject string) (string, error) {
	now := s.now()
	claims := TokenClaims{
		Scope: ScopeItemsWrite,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses tokenString and checks its signature, expiry and scope
func (s *TokenService) Verify(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.key, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid || claims.Scope != ScopeItemsWrite {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
