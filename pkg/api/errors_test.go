package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalizeErrorBody(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{
			name:   "string detail",
			status: 400,
			body:   `{"detail": "Invalid stake amount"}`,
			want:   "Invalid stake amount",
		},
		{
			name:   "field error list",
			status: 422,
			body:   `{"detail": [{"msg": "email required"}, {"message": "password too short"}]}`,
			want:   "email required, password too short",
		},
		{
			name:   "msg wins over message",
			status: 422,
			body:   `{"detail": [{"msg": "from msg", "message": "from message"}]}`,
			want:   "from msg",
		},
		{
			name:   "parseable body without detail",
			status: 500,
			body:   `{"error": "boom"}`,
			want:   "HTTP error 500",
		},
		{
			name:   "json string body counts as parseable",
			status: 502,
			body:   `"bad gateway"`,
			want:   "HTTP error 502",
		},
		{
			name:   "detail with unexpected type",
			status: 400,
			body:   `{"detail": 42}`,
			want:   "HTTP error 400",
		},
		{
			name:   "unparseable body",
			status: 503,
			body:   `<html>Service Unavailable</html>`,
			want:   "Request failed",
		},
		{
			name:   "empty body",
			status: 500,
			body:   ``,
			want:   "Request failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeErrorBody(tt.status, []byte(tt.body))
			if got != tt.want {
				t.Errorf("normalizeErrorBody(%d, %s) = %q, want %q", tt.status, tt.body, got, tt.want)
			}
		})
	}
}

func TestAPIErrorCarriesStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Token expired"}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	_, err := client.Me(context.Background())
	if err == nil {
		t.Fatal("Expected error for 401 response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != 401 {
		t.Errorf("Expected status 401, got %d", apiErr.StatusCode)
	}
	if apiErr.Error() != "Token expired" {
		t.Errorf("Expected message 'Token expired', got %q", apiErr.Error())
	}
	if !IsUnauthorized(err) {
		t.Error("IsUnauthorized should report true for a 401")
	}
}

func TestIsUnauthorizedFalseForOtherErrors(t *testing.T) {
	if IsUnauthorized(errors.New("plain error")) {
		t.Error("IsUnauthorized should be false for non-API errors")
	}
	if IsUnauthorized(&APIError{StatusCode: 403, Message: "forbidden"}) {
		t.Error("IsUnauthorized should be false for 403")
	}
}
