package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the central typed configuration struct.
type Config struct {
	App       AppConfig
	Log       LogConfig
	Container ContainerConfig
	API       APIConfig
}

type AppConfig struct {
	Name  string
	Env   string // local | production | testing
	Debug bool
	Port  string
}

// LogConfig selects the zerolog level, format and destination.
type LogConfig struct {
	Level  string // debug | info | warn | error
	Format string // json | console | pretty
	Output string // stdout | stderr | file path
}

// ContainerConfig tunes dependency resolution.
type ContainerConfig struct {
	// MaxDepth limits nested resolutions; 0 means unlimited.
	MaxDepth int
}

// APIConfig holds the upstream API settings used by the demo wiring.
type APIConfig struct {
	Key     string
	BaseURL string
}

// Load reads .env (if present) and populates a Config from environment variables.
// Call once at bootstrap: cfg := config.Load()
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	return &Config{
		App: AppConfig{
			Name:  env("APP_NAME", "GoInject"),
			Env:   env("APP_ENV", "local"),
			Debug: envBool("APP_DEBUG", false),
			Port:  env("APP_PORT", "8000"),
		},
		Log: LogConfig{
			Level:  env("LOG_LEVEL", "info"),
			Format: env("LOG_FORMAT", "console"),
			Output: env("LOG_OUTPUT", "stderr"),
		},
		Container: ContainerConfig{
			MaxDepth: GetInt("CONTAINER_MAX_DEPTH", 0),
		},
		API: APIConfig{
			Key:     env("API_KEY", ""),
			BaseURL: env("API_BASE_URL", "https://api.example.com"),
		},
	}
}

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	return envBool(key, defaultVal)
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
