package services

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

// signingSalt for PBKDF2 - server and itemsctl must agree on it
var signingSalt = []byte("itemdesk-tokens-v1")

// DeriveSigningKey derives the 32-byte HMAC key used for API tokens
func DeriveSigningKey(secret string) []byte {
	return pbkdf2.Key([]byte(secret), signingSalt, 100000, 32, sha256.New)
}
