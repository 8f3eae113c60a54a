package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultSecret is the development fallback for AUTH_SECRET. Any real
// deployment must override it.
const DefaultSecret = "dev-secret"

// Config aggregates all runtime settings required by the application.
type Config struct {
	AppName     string
	Environment string
	HTTP        HTTPConfig
	Auth        AuthConfig
	Backend     BackendConfig
	Static      StaticConfig
	Dashboard   DashboardConfig
	Redis       RedisConfig
	Context     ContextConfig
	Logger      LoggerConfig
}

type HTTPConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type AuthConfig struct {
	Secret          string
	Username        string
	Password        string
	SessionMaxAge   time.Duration
	CookieName      string
	ProtectedPrefix string
	LoginPath       string
}

// BackendConfig points at the external REST API the dashboard consumes.
type BackendConfig struct {
	URL        string
	HealthPath string
}

type StaticConfig struct {
	Dir string
}

// DashboardConfig selects the persistent storage backing the dashboard
// client store: "bolt" (local file) or "redis" (shared).
type DashboardConfig struct {
	Storage     string
	StoragePath string
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

type ContextConfig struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

// Load reads configuration from environment variables (optionally .env)
// and applies sane defaults so the service can boot in any environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "devfolio-backend"),
		Environment: getString("APP_ENV", "development"),
		HTTP: HTTPConfig{
			Host:         getString("SERVER_HOST", "0.0.0.0"),
			Port:         getString("SERVER_PORT", "8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		},
		Auth: AuthConfig{
			Secret:          getString("AUTH_SECRET", DefaultSecret),
			Username:        getString("AUTH_USERNAME", "admin"),
			Password:        getString("AUTH_PASSWORD", "admin"),
			SessionMaxAge:   getDuration("SESSION_MAX_AGE", time.Hour),
			CookieName:      getString("SESSION_COOKIE_NAME", "session"),
			ProtectedPrefix: getString("PROTECTED_PREFIX", "/dashboard"),
			LoginPath:       getString("LOGIN_PATH", "/login"),
		},
		Backend: BackendConfig{
			URL:        getString("BACKEND_URL", "http://localhost:4000"),
			HealthPath: getString("BACKEND_HEALTH_PATH", "/health"),
		},
		Static: StaticConfig{
			Dir: getString("STATIC_DIR", "./web"),
		},
		Dashboard: DashboardConfig{
			Storage:     getString("DASHBOARD_STORAGE", "bolt"),
			StoragePath: getString("DASHBOARD_STORAGE_PATH", "./data/dashboard.db"),
		},
		Redis: RedisConfig{
			URL:      getString("REDIS_URL", "redis://localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
		},
		Context: ContextConfig{
			RequestTimeout:  getDuration("REQUEST_TIMEOUT_SECONDS", 5*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
		},
	}

	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// Address returns the HTTP listen address for the fasthttp server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.HTTP.Host, c.HTTP.Port)
}

// BackendHealthURL is the probe target for the dependency monitor.
func (c *Config) BackendHealthURL() string {
	return c.Backend.URL + c.Backend.HealthPath
}
