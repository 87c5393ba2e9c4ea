package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Load reads .env from the working directory, so tests run from a scratch
// dir holding an empty one.
func chdirScratch(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), nil, 0o600))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	chdirScratch(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "http://localhost:5000", cfg.Backend.BaseURL)
	assert.Equal(t, "/api/admin", cfg.Backend.APIPrefix)
	assert.Equal(t, 30*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "admin:baseline", cfg.Baseline.KeyPrefix)
	assert.Empty(t, cfg.MetricsAddr)
}

func TestLoadEnvOverrides(t *testing.T) {
	chdirScratch(t)
	t.Setenv("BACKEND_BASE_URL", "https://api.tutorlink.test/")
	t.Setenv("BACKEND_HTTP_TIMEOUT", "5s")
	t.Setenv("METRICS_ADDR", "127.0.0.1:9108")
	t.Setenv("STUB_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.tutorlink.test", cfg.Backend.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "127.0.0.1:9108", cfg.MetricsAddr)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Stub.AllowedOrigins)
}

func TestLoadBadDurationFallsBack(t *testing.T) {
	chdirScratch(t)
	t.Setenv("BACKEND_HTTP_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Backend.Timeout)
}
