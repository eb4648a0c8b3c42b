// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/danielhkuo/ballot-ledger/auth"
	"github.com/danielhkuo/ballot-ledger/ballot"
	"github.com/danielhkuo/ballot-ledger/cliparse"
	"github.com/danielhkuo/ballot-ledger/db"
	"github.com/danielhkuo/ballot-ledger/models"
)

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseType:   cliparse.DatabaseSQLite,
		CallerKeySalt:  "test-caller-salt",
		IPHashSalt:     "test-ip-salt",
		LogLevel:       "info",
		LogFormat:      "text",
		MetricsEnabled: true,
	}
}

// SetupTestStore opens a fresh sqlite snapshot store in a temp directory.
func SetupTestStore(t *testing.T) *db.Store {
	t.Helper()
	ctx := context.Background()

	conn, err := db.Open(ctx, cliparse.DatabaseSQLite, filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(ctx, conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return db.NewStore(conn, cliparse.DatabaseSQLite)
}

// As returns signer accounts for the given identities, first one first.
func As(ids ...ballot.Identity) []ballot.Account {
	out := make([]ballot.Account, len(ids))
	for i, id := range ids {
		out[i] = ballot.Signer(id)
	}
	return out
}

// CallerHeaders returns the headers that authenticate identity under cfg.
func CallerHeaders(cfg cliparse.Config, identity ballot.Identity) map[string]string {
	return map[string]string{
		models.HeaderCaller:      string(identity),
		models.HeaderCallerToken: auth.GenerateCallerToken(identity, cfg.CallerKeySalt),
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertErrorCode checks status and the ledger code in an error body.
func AssertErrorCode(t *testing.T, w *httptest.ResponseRecorder, status int, code ballot.Code) {
	t.Helper()
	AssertStatus(t, w, status)
	var resp models.ErrorResponse
	AssertJSON(t, w, &resp)
	if resp.Code != string(code) {
		t.Errorf("Expected code %s, got %q (message %q)", code, resp.Code, resp.Message)
	}
}
