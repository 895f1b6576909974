package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is read by Load when present.
const DefaultEnvFile = ".env"

// Config captures environment driven configuration values for the API server.
type Config struct {
	HTTPPort       int
	LogLevel       string
	Environment    string
	TokenSecret    string
	TokenTTL       time.Duration
	RequestTimeout time.Duration
	CORSOrigins    []string
}

// Load parses configuration from the process environment, falling back to
// values in DefaultEnvFile.
func Load() (Config, error) {
	return LoadWithEnvFile(DefaultEnvFile)
}

// LoadWithEnvFile parses configuration from the process environment. Keys
// missing from the environment are looked up in the dotenv file at path; a
// missing file is not an error. Process variables always win.
func LoadWithEnvFile(path string) (Config, error) {
	fileValues := map[string]string{}
	if path != "" {
		values, err := godotenv.Read(path)
		switch {
		case err == nil:
			fileValues = values
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("read env file %s: %w", path, err)
		}
	}

	lookup := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return strings.TrimSpace(value)
		}
		return strings.TrimSpace(fileValues[key])
	}

	cfg := Config{
		HTTPPort:       8080,
		LogLevel:       "info",
		Environment:    "development",
		TokenTTL:       24 * time.Hour,
		RequestTimeout: 15 * time.Second,
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 4)

	if portValue := lookup("DEVMENTOR_HTTP_PORT"); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 || port > 65535 {
			invalid = append(invalid, "DEVMENTOR_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if level := lookup("DEVMENTOR_LOG_LEVEL"); level != "" {
		switch strings.ToLower(level) {
		case "debug", "info", "warn", "error":
			cfg.LogLevel = strings.ToLower(level)
		default:
			invalid = append(invalid, "DEVMENTOR_LOG_LEVEL")
		}
	}

	if env := lookup("DEVMENTOR_ENVIRONMENT"); env != "" {
		cfg.Environment = strings.ToLower(env)
	}

	if secret := lookup("DEVMENTOR_TOKEN_SECRET"); secret == "" {
		missing = append(missing, "DEVMENTOR_TOKEN_SECRET")
	} else {
		cfg.TokenSecret = secret
	}

	if ttlValue := lookup("DEVMENTOR_TOKEN_TTL"); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "DEVMENTOR_TOKEN_TTL")
		} else {
			cfg.TokenTTL = ttl
		}
	}

	if timeoutValue := lookup("DEVMENTOR_REQUEST_TIMEOUT"); timeoutValue != "" {
		timeout, err := time.ParseDuration(timeoutValue)
		if err != nil || timeout <= 0 {
			invalid = append(invalid, "DEVMENTOR_REQUEST_TIMEOUT")
		} else {
			cfg.RequestTimeout = timeout
		}
	}

	if origins := lookup("DEVMENTOR_CORS_ORIGINS"); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
			}
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables are not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in the production environment.
func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}
