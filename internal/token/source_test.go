package token

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutorlink-admin-core/internal/models"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := models.JWTClaims{
		UserID: "a-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return raw
}

func TestSourcePrefersSessionScope(t *testing.T) {
	session := NewMemoryScope("session-token")
	persistent := NewMemoryScope("persistent-token")
	source := NewSource(nil, session, persistent)

	got, ok := source.Token()
	require.True(t, ok)
	assert.Equal(t, "session-token", got)

	// Clearing the session scope falls through to the next tier.
	session.Set("")
	got, ok = source.Token()
	require.True(t, ok)
	assert.Equal(t, "persistent-token", got)
}

func TestSourceReportsMissingToken(t *testing.T) {
	source := NewSource(nil, NewMemoryScope(""))
	_, ok := source.Token()
	assert.False(t, ok)
}

func TestSourceStillReturnsExpiredToken(t *testing.T) {
	expired := signedToken(t, time.Now().Add(-time.Hour))
	source := NewSource(nil, NewMemoryScope(expired))

	// The server stays authoritative; an expired token goes out and the
	// resulting 401 drives re-authentication.
	got, ok := source.Token()
	require.True(t, ok)
	assert.Equal(t, expired, got)
}

func TestFileScopeRereadsOnEveryLookup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	scope := FileScope{Path: path}

	_, ok := scope.Token()
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(path, []byte("  disk-token\n"), 0o600))
	got, ok := scope.Token()
	require.True(t, ok)
	assert.Equal(t, "disk-token", got)

	require.NoError(t, os.WriteFile(path, []byte("rotated"), 0o600))
	got, ok = scope.Token()
	require.True(t, ok)
	assert.Equal(t, "rotated", got)
}
