package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultRequestTimeout bounds every portal API call
const DefaultRequestTimeout = 10 * time.Second

// ServerConfig holds settings for the API server
type ServerConfig struct {
	Port               string
	GinMode            string
	JWTSecret          string
	JWTExpirationHours int64
}

// ClientConfig holds settings for the portal client
type ClientConfig struct {
	APIURL      string
	Timeout     time.Duration
	SessionFile string
}

// LoadEnv reads .env into the process environment if present. Variables
// already set win over the file.
func LoadEnv(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// LoadServerConfig reads server settings from the environment
func LoadServerConfig() (*ServerConfig, error) {
	secret := getEnv("JWT_SECRET_KEY", "")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY not set in environment")
	}
	return &ServerConfig{
		Port:               getEnv("SERVER_PORT", "8080"),
		GinMode:            getEnv("GIN_MODE", "release"),
		JWTSecret:          secret,
		JWTExpirationHours: int64(getEnvInt("JWT_EXPIRATION_HOURS", 24)),
	}, nil
}

// LoadClientConfig reads portal settings from the environment
func LoadClientConfig() ClientConfig {
	timeout := DefaultRequestTimeout
	if raw, ok := os.LookupEnv("PORTAL_TIMEOUT"); ok {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			timeout = d
		}
	}
	return ClientConfig{
		APIURL:      getEnv("PORTAL_API_URL", "http://localhost:8080"),
		Timeout:     timeout,
		SessionFile: getEnv("PORTAL_SESSION_FILE", defaultSessionFile()),
	}
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".portal-session"
	}
	return filepath.Join(dir, "edu-portal", "session.env")
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		value, err := strconv.Atoi(valueStr)
		if err != nil {
			return defaultValue
		}
		return value
	}
	return defaultValue
}
