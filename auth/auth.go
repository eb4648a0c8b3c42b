// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/danielhkuo/ballot-ledger/ballot"
)

var (
	ErrInvalidToken  = errors.New("invalid caller token")
	ErrMissingToken  = errors.New("caller token required")
	ErrEmptyIdentity = errors.New("identity is empty")
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateCallerToken creates an HMAC-based token binding an identity to
// the server's salt. It is deterministic, so nothing needs to be stored.
func GenerateCallerToken(identity ballot.Identity, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(identity))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner tokens
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateCallerToken checks if the provided token is valid for the identity
func ValidateCallerToken(identity ballot.Identity, token, salt string) error {
	if identity == "" {
		return ErrEmptyIdentity
	}
	expected := GenerateCallerToken(identity, salt)
	if !hmac.Equal([]byte(token), []byte(expected)) {
		return ErrInvalidToken
	}
	return nil
}

// Authenticate turns the identity and token presented by a client into the
// account list the ledger expects. No identity yields an empty list, which
// the ledger rejects for any operation that needs a caller.
func Authenticate(identity ballot.Identity, token, salt string) ([]ballot.Account, error) {
	if identity == "" {
		return nil, nil
	}
	if token == "" {
		return nil, ErrMissingToken
	}
	if err := ValidateCallerToken(identity, token, salt); err != nil {
		return nil, err
	}
	return []ballot.Account{ballot.Signer(identity)}, nil
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}
