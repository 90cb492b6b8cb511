// Package session owns the authentication lifecycle consumed by the API
// client: the access/refresh token pair and the user identity that survive
// between runs.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Storage keys. These match the platform's persisted key names, so a store
// file is portable between clients.
const (
	KeySessionToken = "session_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "user"
	KeyClientID     = "clientId"

	// Legacy keys written by older clients. Read on load, never written.
	legacyKeyClient      = "client"
	legacyKeyAccessToken = "access_token"
)

// Identity is the logged-in user as persisted alongside the tokens.
type Identity struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	ClientID string `json:"client_id,omitempty"`
}

// Credentials is the full persisted session: one value active at a time.
type Credentials struct {
	AccessToken  string
	RefreshToken string
	Identity     Identity
}

// Store supplies the bearer token to the API client and receives new
// credentials on login/refresh. Implementations must be safe for
// concurrent readers.
type Store interface {
	// Token returns the current access token, or "" when anonymous.
	Token() string

	// RefreshToken returns the current refresh token, or "".
	RefreshToken() string

	// Identity returns the stored user identity, or nil when anonymous.
	Identity() *Identity

	// SetCredentials replaces the session wholesale.
	SetCredentials(creds Credentials) error

	// Clear removes all session state, returning to anonymous.
	Clear() error
}

// MemoryStore is an in-memory Store for tests and ephemeral runs.
type MemoryStore struct {
	mu    sync.RWMutex
	creds *Credentials
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return ""
	}
	return s.creds.AccessToken
}

func (s *MemoryStore) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return ""
	}
	return s.creds.RefreshToken
}

func (s *MemoryStore) Identity() *Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return nil
	}
	id := s.creds.Identity
	return &id
}

func (s *MemoryStore) SetCredentials(creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = &creds
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = nil
	return nil
}

// FileStore persists the session as a flat JSON key/value file, the
// durable-storage analog of the web client's local storage.
type FileStore struct {
	path string

	mu    sync.RWMutex
	creds *Credentials
}

// NewFileStore loads (or lazily creates) a session file at path.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// DefaultPath returns the conventional session file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".edgedesk/session.json"
	}
	return filepath.Join(home, ".edgedesk", "session.json")
}

func (s *FileStore) load() error {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read session file: %w", err)
	}

	var kv map[string]json.RawMessage
	if err := json.Unmarshal(raw, &kv); err != nil {
		return fmt.Errorf("parse session file: %w", err)
	}

	creds := Credentials{}
	creds.AccessToken = stringKey(kv, KeySessionToken)
	if creds.AccessToken == "" {
		creds.AccessToken = stringKey(kv, legacyKeyAccessToken)
	}
	creds.RefreshToken = stringKey(kv, KeyRefreshToken)

	if userRaw, ok := kv[KeyUser]; ok {
		_ = json.Unmarshal(userRaw, &creds.Identity)
	}
	creds.Identity.ClientID = stringKey(kv, KeyClientID)
	if creds.Identity.ClientID == "" {
		creds.Identity.ClientID = stringKey(kv, legacyKeyClient)
	}

	if creds.AccessToken != "" {
		s.creds = &creds
	}
	return nil
}

func stringKey(kv map[string]json.RawMessage, key string) string {
	raw, ok := kv[key]
	if !ok {
		return ""
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	return v
}

func (s *FileStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return ""
	}
	return s.creds.AccessToken
}

func (s *FileStore) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return ""
	}
	return s.creds.RefreshToken
}

func (s *FileStore) Identity() *Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return nil
	}
	id := s.creds.Identity
	return &id
}

func (s *FileStore) SetCredentials(creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = &creds
	return s.flush()
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = nil
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// flush writes the session wholesale. Caller holds the lock.
func (s *FileStore) flush() error {
	if s.creds == nil {
		return nil
	}

	kv := map[string]interface{}{
		KeySessionToken: s.creds.AccessToken,
		KeyRefreshToken: s.creds.RefreshToken,
		KeyUser:         s.creds.Identity,
		KeyClientID:     s.creds.Identity.ClientID,
	}

	raw, err := json.MarshalIndent(kv, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// TokenExpiresWithin reports whether the stored access token expires within
// d. The JWT is inspected without signature verification: the client only
// needs the exp claim to decide when to refresh, the backend still verifies.
// Tokens without a parseable exp claim are treated as non-expiring.
func TokenExpiresWithin(store Store, d time.Duration) bool {
	tok := store.Token()
	if tok == "" {
		return false
	}

	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tok, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Until(exp.Time) < d
}
