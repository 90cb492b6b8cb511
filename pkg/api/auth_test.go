package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/edgedesk/edgedesk-go/pkg/session"
)

func TestLoginPersistsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("Expected path /api/auth/login, got %s", r.URL.Path)
		}

		var req LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.EmailOrUsername != "sharp@example.com" {
			t.Errorf("Wrong login identifier: %s", req.EmailOrUsername)
		}

		json.NewEncoder(w).Encode(AuthResponse{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
			User:         &User{ID: "u1", Email: "sharp@example.com", Username: "sharp"},
		})
	}))
	defer server.Close()

	store := session.NewMemoryStore()
	client := NewClient(WithBaseURL(server.URL), WithSessionStore(store))

	resp, err := client.Login(context.Background(), &LoginRequest{
		EmailOrUsername: "sharp@example.com",
		Password:        "hunter2",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.AccessToken != "access-1" {
		t.Errorf("Wrong access token: %s", resp.AccessToken)
	}

	if store.Token() != "access-1" {
		t.Errorf("Access token not persisted, got %q", store.Token())
	}
	if store.RefreshToken() != "refresh-1" {
		t.Errorf("Refresh token not persisted, got %q", store.RefreshToken())
	}
	id := store.Identity()
	if id == nil || id.Username != "sharp" {
		t.Errorf("Identity not persisted: %+v", id)
	}
}

func TestLoginRequires2FALeavesSessionUntouched(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(AuthResponse{Requires2FA: true})
	}))
	defer server.Close()

	store := session.NewMemoryStore()
	client := NewClient(WithBaseURL(server.URL), WithSessionStore(store))

	resp, err := client.Login(context.Background(), &LoginRequest{
		EmailOrUsername: "sharp@example.com",
		Password:        "hunter2",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if !resp.Requires2FA {
		t.Fatal("Expected requires_2fa response")
	}
	if store.Token() != "" {
		t.Errorf("Session must stay anonymous until TOTP, got token %q", store.Token())
	}
}

func TestLogoutClearsSessionEvenOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail": "revocation failed"}`))
	}))
	defer server.Close()

	store := session.NewMemoryStore()
	store.SetCredentials(session.Credentials{AccessToken: "stale", RefreshToken: "stale-r"})

	client := NewClient(WithBaseURL(server.URL), WithSessionStore(store))

	err := client.Logout(context.Background())
	if err == nil {
		t.Fatal("Expected the revocation error to propagate")
	}
	if store.Token() != "" {
		t.Errorf("Local session must be cleared regardless, got token %q", store.Token())
	}
}

func TestRefreshKeepsStoredIdentity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/refresh" {
			t.Errorf("Expected path /api/auth/refresh, got %s", r.URL.Path)
		}

		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["refresh_token"] != "refresh-old" {
			t.Errorf("Expected stored refresh token in body, got %q", body["refresh_token"])
		}

		// Refresh responses carry tokens only, no user object.
		json.NewEncoder(w).Encode(AuthResponse{
			AccessToken:  "access-new",
			RefreshToken: "refresh-new",
		})
	}))
	defer server.Close()

	store := session.NewMemoryStore()
	store.SetCredentials(session.Credentials{
		AccessToken:  "access-old",
		RefreshToken: "refresh-old",
		Identity:     session.Identity{UserID: "u1", Username: "sharp"},
	})

	client := NewClient(WithBaseURL(server.URL), WithSessionStore(store))

	if _, err := client.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	if store.Token() != "access-new" {
		t.Errorf("Expected rotated access token, got %q", store.Token())
	}
	id := store.Identity()
	if id == nil || id.Username != "sharp" {
		t.Errorf("Identity lost across refresh: %+v", id)
	}
}
