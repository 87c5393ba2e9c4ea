package token

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/tutorlink-admin-core/internal/models"
)

// Scope is one credential storage tier. The session scope is consulted
// before the persistent scope, mirroring how the dashboard read
// sessionStorage before localStorage.
type Scope interface {
	Token() (string, bool)
}

// MemoryScope holds a token for the lifetime of the process.
type MemoryScope struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryScope builds a session-scoped token holder.
func NewMemoryScope(token string) *MemoryScope {
	return &MemoryScope{token: strings.TrimSpace(token)}
}

// Set replaces the held token. Clearing with an empty string is allowed.
func (s *MemoryScope) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = strings.TrimSpace(token)
}

func (s *MemoryScope) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", false
	}
	return s.token, true
}

// FileScope reads the token from disk on every lookup so an operator can
// refresh credentials without restarting.
type FileScope struct {
	Path string
}

func (s FileScope) Token() (string, bool) {
	if s.Path == "" {
		return "", false
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", false
	}
	return token, true
}

// Source resolves the bearer token from an ordered list of scopes. A missing
// token is not an error here; requests go out unauthenticated and the server
// answers 401.
type Source struct {
	scopes []Scope
	logger *zap.Logger
}

// NewSource chains scopes in lookup order.
func NewSource(logger *zap.Logger, scopes ...Scope) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{scopes: scopes, logger: logger}
}

// Token returns the first token any scope yields. An already-expired token
// is still returned (the server is authoritative) but logged, since a stale
// persisted token is the usual cause of surprise 401s.
func (s *Source) Token() (string, bool) {
	for _, scope := range s.scopes {
		raw, ok := scope.Token()
		if !ok {
			continue
		}
		if exp, known := expiresAt(raw); known && time.Now().After(exp) {
			s.logger.Warn("bearer token is expired", zap.Time("expired_at", exp))
		}
		return raw, true
	}
	return "", false
}

// expiresAt peeks at the unverified claims for the expiry timestamp.
func expiresAt(raw string) (time.Time, bool) {
	claims := &models.JWTClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
