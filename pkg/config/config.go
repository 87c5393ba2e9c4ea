package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	Backend  BackendConfig
	Auth     AuthConfig
	Redis    RedisConfig
	Log      LogConfig
	Baseline BaselineConfig
	Export   ExportConfig
	Stub     StubConfig

	// MetricsAddr, when set, serves the gateway's prometheus registry on
	// that address for the lifetime of the invocation. Empty disables it.
	MetricsAddr string
}

// BackendConfig locates the marketplace REST backend. BaseURL doubles as the
// origin used when rewriting relative document links.
type BackendConfig struct {
	BaseURL   string
	APIPrefix string
	Timeout   time.Duration
}

// AuthConfig sources the operator bearer token. The session token takes
// precedence over the persisted token file.
type AuthConfig struct {
	SessionToken string
	TokenFile    string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type LogConfig struct {
	Level  string
	Format string
}

// BaselineConfig governs the "new since last seen" heuristic.
type BaselineConfig struct {
	Enabled   bool
	KeyPrefix string
}

// ExportConfig controls CSV/PDF report output.
type ExportConfig struct {
	Dir string
}

// StubConfig tunes the local stub backend used for development and tests.
type StubConfig struct {
	Port           int
	JWTSecret      string
	JWTExpiration  time.Duration
	AllowedOrigins []string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.Backend = BackendConfig{
		BaseURL:   strings.TrimRight(v.GetString("BACKEND_BASE_URL"), "/"),
		APIPrefix: v.GetString("BACKEND_API_PREFIX"),
		Timeout:   parseDuration(v.GetString("BACKEND_HTTP_TIMEOUT"), 30*time.Second),
	}

	cfg.Auth = AuthConfig{
		SessionToken: v.GetString("ADMIN_SESSION_TOKEN"),
		TokenFile:    v.GetString("ADMIN_TOKEN_FILE"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Baseline = BaselineConfig{
		Enabled:   v.GetBool("ENABLE_BASELINE"),
		KeyPrefix: v.GetString("BASELINE_KEY_PREFIX"),
	}

	cfg.Export = ExportConfig{
		Dir: v.GetString("EXPORT_DIR"),
	}

	cfg.Stub = StubConfig{
		Port:           v.GetInt("STUB_PORT"),
		JWTSecret:      v.GetString("STUB_JWT_SECRET"),
		JWTExpiration:  parseDuration(v.GetString("STUB_JWT_EXPIRATION"), 24*time.Hour),
		AllowedOrigins: splitAndTrim(v.GetString("STUB_ALLOWED_ORIGINS")),
	}

	cfg.MetricsAddr = v.GetString("METRICS_ADDR")

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("BACKEND_BASE_URL", "http://localhost:5000")
	v.SetDefault("BACKEND_API_PREFIX", "/api/admin")
	v.SetDefault("BACKEND_HTTP_TIMEOUT", "30s")

	v.SetDefault("ADMIN_SESSION_TOKEN", "")
	v.SetDefault("ADMIN_TOKEN_FILE", "")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_BASELINE", false)
	v.SetDefault("BASELINE_KEY_PREFIX", "admin:baseline")

	v.SetDefault("EXPORT_DIR", "./exports")

	v.SetDefault("STUB_PORT", 5000)
	v.SetDefault("STUB_JWT_SECRET", "dev_secret")
	v.SetDefault("STUB_JWT_EXPIRATION", "24h")
	v.SetDefault("STUB_ALLOWED_ORIGINS", "")

	v.SetDefault("METRICS_ADDR", "")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
