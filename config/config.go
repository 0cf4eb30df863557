package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	DefaultPort        = "5001"
	DefaultCacheTTL    = 5 * time.Minute
	DefaultAMQPQueue   = "favourites.events"
	defaultCORSOrigins = "http://localhost:8081,http://localhost:5173"
)

// Config holds all configuration for the application. It is built once at
// startup and not modified afterwards.
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Database configuration
	DatabaseURL string

	Environment Environment

	// Optional list cache; disabled when RedisURL is empty
	RedisURL string
	CacheTTL time.Duration

	// Optional event publishing; disabled when AMQPURL is empty
	AMQPURL   string
	AMQPQueue string

	CORSOrigins []string
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return net.JoinHostPort(c.ServerHost, c.ServerPort)
}

// LoadConfig builds a Config from, in increasing precedence: defaults, the
// YAML file named by CONFIG_FILE, a .env file (outside production), and
// environment variables. DATABASE_URL falls back to the database_url secret.
func LoadConfig() (*Config, error) {
	if GetEnvironment() != Production {
		// Never overrides variables that are already set
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	k := koanf.New(".")

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg, err := fromKoanf(k)
	if err != nil {
		return nil, err
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func fromKoanf(k *koanf.Koanf) (*Config, error) {
	cfg := &Config{
		ServerHost:  k.String("host"),
		ServerPort:  stringOr(k.String("port"), DefaultPort),
		DatabaseURL: k.String("database_url"),
		RedisURL:    k.String("redis_url"),
		CacheTTL:    DefaultCacheTTL,
		AMQPURL:     k.String("amqp_url"),
		AMQPQueue:   stringOr(k.String("amqp_queue"), DefaultAMQPQueue),
		CORSOrigins: splitList(stringOr(k.String("cors_origins"), defaultCORSOrigins)),
	}

	if k.String("ci") == "true" {
		cfg.Environment = CI
	} else {
		cfg.Environment = ParseEnvironment(stringOr(k.String("node_env"), k.String("env")))
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = readSecret("database_url")
	}

	if ttl := k.String("cache_ttl"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, ValidationError{Field: "CACHE_TTL", Message: fmt.Sprintf("invalid duration %q", ttl)}
		}
		cfg.CacheTTL = d
	}

	return cfg, nil
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func stringOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
