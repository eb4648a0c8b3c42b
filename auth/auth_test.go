// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/danielhkuo/ballot-ledger/ballot"
)

func TestGenerateID(t *testing.T) {
	tests := []struct {
		name    string
		byteLen int
		wantLen int // hex encoded length = byteLen * 2
	}{
		{"8 bytes", 8, 16},
		{"16 bytes", 16, 32},
		{"24 bytes", 24, 48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := GenerateID(tt.byteLen)
			if err != nil {
				t.Fatalf("GenerateID() error = %v", err)
			}
			if len(id) != tt.wantLen {
				t.Errorf("GenerateID() length = %d, want %d", len(id), tt.wantLen)
			}
			for _, c := range id {
				if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
					t.Errorf("GenerateID() contains invalid hex char: %c", c)
				}
			}
		})
	}

	id1, _ := GenerateID(16)
	id2, _ := GenerateID(16)
	if id1 == id2 {
		t.Error("GenerateID() produced duplicate IDs (extremely unlikely)")
	}
}

func TestGenerateCallerToken(t *testing.T) {
	tests := []struct {
		name     string
		identity ballot.Identity
		salt     string
	}{
		{"standard", "alice", "secret-salt"},
		{"empty identity", "", "salt"},
		{"empty salt", "bob", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := GenerateCallerToken(tt.identity, tt.salt)

			if token == "" {
				t.Error("GenerateCallerToken() returned empty string")
			}

			if token != GenerateCallerToken(tt.identity, tt.salt) {
				t.Error("GenerateCallerToken() is not deterministic")
			}

			if tt.identity != "" && tt.salt != "" {
				if token == GenerateCallerToken(tt.identity+"x", tt.salt) {
					t.Error("GenerateCallerToken() produced same token for different identities")
				}
			}

			if strings.Contains(token, "=") {
				t.Error("GenerateCallerToken() contains padding characters")
			}
		})
	}
}

func TestValidateCallerToken(t *testing.T) {
	identity := ballot.Identity("alice")
	salt := "test-salt"
	valid := GenerateCallerToken(identity, salt)

	tests := []struct {
		name     string
		identity ballot.Identity
		token    string
		salt     string
		wantErr  error
	}{
		{"valid token", identity, valid, salt, nil},
		{"wrong token", identity, "wrong-token", salt, ErrInvalidToken},
		{"wrong identity", "mallory", valid, salt, ErrInvalidToken},
		{"wrong salt", identity, valid, "different-salt", ErrInvalidToken},
		{"empty token", identity, "", salt, ErrInvalidToken},
		{"empty identity", "", GenerateCallerToken("", salt), salt, ErrEmptyIdentity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCallerToken(tt.identity, tt.token, tt.salt)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateCallerToken() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	salt := "test-salt"

	t.Run("valid caller", func(t *testing.T) {
		accounts, err := Authenticate("alice", GenerateCallerToken("alice", salt), salt)
		if err != nil {
			t.Fatalf("Authenticate() error = %v", err)
		}
		if len(accounts) != 1 {
			t.Fatalf("expected 1 account, got %d", len(accounts))
		}
		if accounts[0].Key != "alice" || !accounts[0].IsSigner {
			t.Errorf("unexpected account %+v", accounts[0])
		}
	})

	t.Run("no identity", func(t *testing.T) {
		accounts, err := Authenticate("", "", salt)
		if err != nil {
			t.Fatalf("Authenticate() error = %v", err)
		}
		if len(accounts) != 0 {
			t.Errorf("expected no accounts, got %v", accounts)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		_, err := Authenticate("alice", "", salt)
		if !errors.Is(err, ErrMissingToken) {
			t.Errorf("expected ErrMissingToken, got %v", err)
		}
	})

	t.Run("bad token", func(t *testing.T) {
		_, err := Authenticate("alice", GenerateCallerToken("bob", salt), salt)
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestHashIP(t *testing.T) {
	tests := []struct {
		name string
		ip   string
		salt string
	}{
		{"IPv4", "192.168.1.1", "ip-salt"},
		{"IPv6", "2001:0db8:85a3::8a2e:0370:7334", "ip-salt"},
		{"localhost", "127.0.0.1", "ip-salt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash := HashIP(tt.ip, tt.salt)

			if len(hash) != 16 {
				t.Errorf("HashIP() length = %d, want 16", len(hash))
			}
			for _, c := range hash {
				if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
					t.Errorf("HashIP() contains invalid hex char: %c", c)
				}
			}
			if hash != HashIP(tt.ip, tt.salt) {
				t.Error("HashIP() is not deterministic")
			}
		})
	}

	if HashIP("192.168.1.1", "salt") == HashIP("192.168.1.2", "salt") {
		t.Error("HashIP() produced same hash for different IPs")
	}
	if HashIP("192.168.1.1", "salt1") == HashIP("192.168.1.1", "salt2") {
		t.Error("HashIP() produced same hash for different salts")
	}
}

func BenchmarkGenerateCallerToken(b *testing.B) {
	salt := "test-salt"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		GenerateCallerToken("alice", salt)
	}
}
