// Package config loads service settings from an optional YAML file, then lets
// environment variables (or a dotenv file) override individual values.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/githbnaboulsi/shipcore-api/internal/auth/ebay"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite  = "sqlite"
	DriverMySQL   = "mysql"
	DriverMongoDB = "mongodb"

	SecretsEnv = "env"
	SecretsSSM = "ssm"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Secrets  SecretsConfig  `yaml:"secrets"`
	Ebay     EbayConfig     `yaml:"ebay"`
}

type ServerConfig struct {
	Host           string   `yaml:"host"`
	Port           string   `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	// APIKey guards product writes when set.
	APIKey string `yaml:"api_key"`
}

type DatabaseConfig struct {
	Driver        string `yaml:"driver"`
	DSN           string `yaml:"dsn"`
	MongoDatabase string `yaml:"mongo_database"`
	LogLevel      string `yaml:"log_level"`
}

type SecretsConfig struct {
	Provider string `yaml:"provider"`
	Region   string `yaml:"region"`
	EnvFile  string `yaml:"env_file"`
}

type EbayConfig struct {
	TokenURL    string           `yaml:"token_url"`
	Environment string           `yaml:"environment"`
	Timeout     string           `yaml:"timeout"`
	Skew        string           `yaml:"skew"`
	Secrets     ebay.SecretNames `yaml:"secrets"`
}

// Default returns the production settings.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "127.0.0.1",
			Port:           "8080",
			AllowedOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			Driver:        DriverSQLite,
			DSN:           "shipcore.db",
			MongoDatabase: "shipcore",
			LogLevel:      "warn",
		},
		Secrets: SecretsConfig{
			Provider: SecretsEnv,
		},
		Ebay: EbayConfig{
			TokenURL:    ebay.TokenURL,
			Environment: "production",
			Timeout:     "20s",
			Skew:        "30s",
			Secrets:     ebay.DefaultSecretNames,
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (if any)
// and overrides from envFile (if any) and the process environment.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	fileEnv := map[string]string{}
	if envFile != "" {
		values, err := godotenv.Read(envFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read env file %s: %w", envFile, err)
		}
		fileEnv = values
	}
	cfg.applyEnv(func(key string) string {
		if v, ok := fileEnv[key]; ok && v != "" {
			return v
		}
		return os.Getenv(key)
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&c.Server.Host, "HOST")
	set(&c.Server.Port, "PORT")
	set(&c.Server.APIKey, "SHIPCORE_API_KEY")
	set(&c.Database.Driver, "SHIPCORE_DB_DRIVER")
	set(&c.Database.DSN, "SHIPCORE_DB_DSN")
	set(&c.Database.MongoDatabase, "SHIPCORE_MONGO_DATABASE")
	set(&c.Database.LogLevel, "SHIPCORE_DB_LOG_LEVEL")
	set(&c.Secrets.Provider, "SHIPCORE_SECRETS_PROVIDER")
	set(&c.Secrets.Region, "AWS_REGION")
	set(&c.Secrets.EnvFile, "SHIPCORE_SECRETS_ENV_FILE")
	set(&c.Ebay.TokenURL, "SHIPCORE_EBAY_TOKEN_URL")

	if origins := getenv("SHIPCORE_ALLOWED_ORIGINS"); origins != "" {
		c.Server.AllowedOrigins = splitList(origins)
	}
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverMySQL, DriverMongoDB:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database dsn is required")
	}
	if c.Database.Driver == DriverMongoDB && c.Database.MongoDatabase == "" {
		return fmt.Errorf("mongo_database is required for the mongodb driver")
	}

	switch c.Secrets.Provider {
	case SecretsEnv, SecretsSSM:
	default:
		return fmt.Errorf("unsupported secrets provider %q", c.Secrets.Provider)
	}

	timeout, err := time.ParseDuration(c.Ebay.Timeout)
	if err != nil || timeout <= 0 {
		return fmt.Errorf("invalid ebay timeout %q", c.Ebay.Timeout)
	}
	skew, err := time.ParseDuration(c.Ebay.Skew)
	if err != nil || skew < 0 {
		return fmt.Errorf("invalid ebay skew %q", c.Ebay.Skew)
	}
	if c.Ebay.Secrets.ClientID == "" || c.Ebay.Secrets.ClientSecret == "" || c.Ebay.Secrets.RuName == "" {
		return fmt.Errorf("ebay secret names must all be set")
	}
	return nil
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// ExchangeTimeout is the parsed ebay.timeout; call after Validate.
func (e EbayConfig) ExchangeTimeout() time.Duration {
	d, _ := time.ParseDuration(e.Timeout)
	return d
}

// StatusSkew is the parsed ebay.skew; call after Validate.
func (e EbayConfig) StatusSkew() time.Duration {
	d, _ := time.ParseDuration(e.Skew)
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
