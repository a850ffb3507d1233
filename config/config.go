// Package config provides configuration management for the print quote service and its form client.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Database DatabaseConfig
	Export   ExportConfig
	Client   ClientConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port        string
	RateLimit   int
	RateWindow  time.Duration
	CORSOrigins []string
	SwaggerUser string
	SwaggerPass string
}

// CacheConfig holds the rendered document cache configuration.
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// AuthConfig holds staff authentication configuration.
type AuthConfig struct {
	Enabled        bool
	APIKeys        map[string]bool
	JWTSecretKey   string
	AccessTokenTTL time.Duration
	AdminEmail     string
	AdminPassword  string
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	LogsTTL      time.Duration
	Enabled      bool
	// CircuitBreaker configuration
	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// ExportConfig holds PDF rendering configuration.
type ExportConfig struct {
	ChromePath    string
	RenderTimeout time.Duration
	Currency      string
	// Locale selects number formatting in exported documents.
	Locale string
}

// ClientConfig holds the form client configuration used by quotectl.
type ClientConfig struct {
	// BackendURL has no default; the client refuses to start without it.
	BackendURL     string
	RequestTimeout time.Duration
	ExportDir      string
	Locale         string
}

// Load creates a Config from environment variables.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8001"),
			RateLimit:   getEnvInt("RATE_LIMIT", 100),
			RateWindow:  getEnvDuration("RATE_WINDOW", time.Minute),
			CORSOrigins: parseCORSOrigins(os.Getenv("CORS_ORIGINS")),
			SwaggerUser: getEnv("SWAGGER_USER", ""),
			SwaggerPass: getEnv("SWAGGER_PASS", ""),
		},
		Cache: CacheConfig{
			Size: getEnvInt("DOCUMENT_CACHE_SIZE", 256),
			TTL:  getEnvDuration("DOCUMENT_CACHE_TTL", 10*time.Minute),
		},
		Auth: AuthConfig{
			Enabled:        getEnvBool("AUTH_ENABLED", false),
			APIKeys:        parseAPIKeys(os.Getenv("API_KEYS")),
			JWTSecretKey:   getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			AccessTokenTTL: getEnvDuration("JWT_ACCESS_TOKEN_TTL", 8*time.Hour),
			AdminEmail:     getEnv("STAFF_ADMIN_EMAIL", ""),
			AdminPassword:  getEnv("STAFF_ADMIN_PASSWORD", ""),
		},
		Database: DatabaseConfig{
			URI:                            getEnv("MONGO_URL", "mongodb://localhost:27017"),
			DatabaseName:                   getEnv("DB_NAME", "print_quotes"),
			LogsTTL:                        getEnvDuration("MONGODB_LOGS_TTL", 30*24*time.Hour),
			Enabled:                        getEnvBool("MONGODB_ENABLED", true),
			CircuitBreakerFailureThreshold: getEnvInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          getEnvDuration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
		Export: ExportConfig{
			ChromePath:    getEnv("CHROME_PATH", ""),
			RenderTimeout: getEnvDuration("EXPORT_RENDER_TIMEOUT", 30*time.Second),
			Currency:      getEnv("QUOTE_CURRENCY", "AUD"),
			Locale:        getEnv("EXPORT_LOCALE", "en-AU"),
		},
		Client: ClientConfig{
			BackendURL:     strings.TrimRight(os.Getenv("QUOTE_BACKEND_URL"), "/"),
			RequestTimeout: getEnvDuration("QUOTE_REQUEST_TIMEOUT", 30*time.Second),
			ExportDir:      getEnv("QUOTE_EXPORT_DIR", "."),
			Locale:         getEnv("QUOTE_LOCALE", "en"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

func parseAPIKeys(s string) map[string]bool {
	if s == "" {
		return nil
	}
	keys := strings.Split(s, ",")
	result := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			result[k] = true
		}
	}
	return result
}

func parseCORSOrigins(s string) []string {
	// the form frontend runs on :3000 during development
	defaults := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	if s == "" {
		return defaults
	}
	if strings.TrimSpace(s) == "*" {
		return []string{"*"}
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts)+len(defaults))
	result = append(result, defaults...)
	for _, p := range parts {
		if origin := strings.TrimSpace(p); origin != "" {
			result = append(result, origin)
		}
	}
	return result
}
