//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/gokatarajesh/exam-prep/internal/auth/jwt"
)

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func baseURL() string {
	return envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")
}

// mintToken signs an access token with the same secret the running API uses.
func mintToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	secret := os.Getenv("INTEGRATION_JWT_SECRET")
	if secret == "" {
		t.Skip("INTEGRATION_JWT_SECRET not set")
	}
	manager := jwt.NewManager(jwt.TokenConfig{
		AccessSecret: []byte(secret),
		Issuer:       envOrDefault("INTEGRATION_JWT_ISSUER", "exam-prep"),
	})
	token, err := manager.GenerateAccessToken(jwt.User{ID: userID, DisplayName: "integration"})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func makeRequest(t *testing.T, method, url, token string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
