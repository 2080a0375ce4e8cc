// Package hashutil derives the one way values used to identify grants
// without exposing their handles.
package hashutil

import (
	"crypto"
	"crypto/sha256"
	"encoding/base64"

	"github.com/go-jose/go-jose/v4"
	"golang.org/x/crypto/blake2b"
)

// Thumbprint generates a base64 URL-encoded SHA-256 hash (thumbprint) of a
// given string.
func Thumbprint(s string) string {
	hash := sha256.Sum256([]byte(s))
	return base64.RawURLEncoding.EncodeToString(hash[:])
}

// Blake2bThumbprint is like [Thumbprint] but uses BLAKE2b-256.
func Blake2bThumbprint(s string) string {
	hash := blake2b.Sum256([]byte(s))
	return base64.RawURLEncoding.EncodeToString(hash[:])
}

// JWKThumbprint returns the RFC 7638 SHA-256 thumbprint of a key, base64 URL
// encoded. This is the "jkt" value used to bind tokens to DPoP keys.
func JWKThumbprint(jwk jose.JSONWebKey) (string, error) {
	thumbprint, err := jwk.Thumbprint(crypto.SHA256)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(thumbprint), nil
}
