package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/pageza/nutrisaur/backend/internal/recommend"
)

// ConfigPathEnvVar overrides the YAML config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// EnvPrefix marks environment variables that map onto config paths.
// NUTRISAUR_ENGINE__CACHE_SIZE sets engine.cache_size.
const EnvPrefix = "NUTRISAUR_"

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"/etc/nutrisaur/config.yaml",
}

// Config holds all configuration for the application
type Config struct {
	Environment Environment `koanf:"-"`

	Server    ServerConfig     `koanf:"server"`
	Database  DatabaseConfig   `koanf:"database"`
	Redis     RedisConfig      `koanf:"redis"`
	JWT       JWTConfig        `koanf:"jwt"`
	Engine    recommend.Config `koanf:"engine"`
	RateLimit RateLimitConfig  `koanf:"rate_limit"`
	Breaker   BreakerConfig    `koanf:"breaker"`
	Catalog   CatalogConfig    `koanf:"catalog"`
	Log       LogConfig        `koanf:"log"`
}

// ServerConfig configures the HTTP server
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         string        `koanf:"port" validate:"required,numeric"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	CORSOrigins  []string      `koanf:"cors_origins"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// DatabaseConfig selects and configures the gorm dialect
type DatabaseConfig struct {
	Driver   string `koanf:"driver" validate:"oneof=postgres sqlite"`
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Name     string `koanf:"name"`
	SSLMode  string `koanf:"ssl_mode"`
	// Path is the sqlite database file; ":memory:" keeps it in memory.
	Path string `koanf:"path"`
}

// DSN returns the postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// RedisConfig configures the rate limiter backend
type RedisConfig struct {
	Enabled  bool   `koanf:"enabled"`
	URL      string `koanf:"url" validate:"required_if=Enabled true"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db" validate:"min=0"`
}

// JWTConfig configures token signing
type JWTConfig struct {
	Secret string        `koanf:"secret" validate:"required"`
	TTL    time.Duration `koanf:"ttl" validate:"gt=0"`
}

// RateLimitConfig bounds recommendation requests per user
type RateLimitConfig struct {
	Requests int           `koanf:"requests" validate:"min=1"`
	Window   time.Duration `koanf:"window" validate:"gt=0"`
}

// BreakerConfig configures the circuit breaker around the user context lookup
type BreakerConfig struct {
	MaxRequests      uint32        `koanf:"max_requests"`
	Interval         time.Duration `koanf:"interval"`
	Timeout          time.Duration `koanf:"timeout"`
	FailureThreshold uint32        `koanf:"failure_threshold" validate:"min=1"`
}

// CatalogConfig says where the dish catalog snapshot comes from
type CatalogConfig struct {
	Source string `koanf:"source" validate:"oneof=db file s3"`
	Path   string `koanf:"path" validate:"required_if=Source file"`
	Bucket string `koanf:"bucket" validate:"required_if=Source s3"`
	Key    string `koanf:"key" validate:"required_if=Source s3"`
	Region string `koanf:"region"`
	// Admins are the usernames allowed to trigger an import over HTTP.
	Admins []string `koanf:"admins"`
}

// LogConfig configures zerolog
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         "8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			CORSOrigins:  []string{"http://localhost:3000"},
		},
		Database: DatabaseConfig{
			Driver:  "postgres",
			Host:    "localhost",
			Port:    "5432",
			User:    "postgres",
			Name:    "nutrisaur",
			SSLMode: "disable",
			Path:    "nutrisaur.db",
		},
		Redis: RedisConfig{
			URL: "redis://localhost:6379",
		},
		JWT: JWTConfig{
			TTL: 24 * time.Hour,
		},
		Engine: recommend.DefaultConfig(),
		RateLimit: RateLimitConfig{
			Requests: 60,
			Window:   time.Minute,
		},
		Breaker: BreakerConfig{
			MaxRequests:      1,
			Interval:         time.Minute,
			Timeout:          30 * time.Second,
			FailureThreshold: 5,
		},
		Catalog: CatalogConfig{
			Source: "db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadConfig builds the configuration from defaults, an optional YAML file,
// environment variables and finally Docker secrets.
func LoadConfig() (*Config, error) {
	environment := GetEnvironment()

	// Local .env files are a development convenience only
	if environment == Development || environment == Test {
		_ = godotenv.Load()
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	for _, path := range []string{"server.cors_origins", "catalog.admins"} {
		if err := splitCommaList(k, path); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.Environment = environment

	applySecrets(cfg)

	if environment == Development || environment == Test {
		cfg.Log.Format = "console"
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// legacyEnv maps the plain variable names used by the compose files onto config paths.
var legacyEnv = map[string]string{
	"server_port":    "server.port",
	"server_host":    "server.host",
	"db_driver":      "database.driver",
	"db_host":        "database.host",
	"db_port":        "database.port",
	"db_user":        "database.user",
	"db_password":    "database.password",
	"db_name":        "database.name",
	"db_ssl_mode":    "database.ssl_mode",
	"db_path":        "database.path",
	"redis_url":      "redis.url",
	"redis_password": "redis.password",
	"jwt_secret":     "jwt.secret",
	"s3_bucket_name": "catalog.bucket",
	"catalog_admins": "catalog.admins",
	"aws_region":     "catalog.region",
	"log_level":      "log.level",
}

// envTransformFunc turns an environment variable name into a koanf path.
// Unknown names return "" and are skipped.
func envTransformFunc(key string) string {
	if strings.HasPrefix(key, EnvPrefix) {
		path := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		return strings.ReplaceAll(path, "__", ".")
	}
	if mapped, ok := legacyEnv[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}

func splitCommaList(k *koanf.Koanf, path string) error {
	s, ok := k.Get(path).(string)
	if !ok {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if err := k.Set(path, out); err != nil {
		return fmt.Errorf("failed to set %s: %w", path, err)
	}
	return nil
}

// secretTargets lists the Docker secrets that override loaded values when present.
var secretTargets = map[string]func(*Config, string){
	"db_password":    func(c *Config, v string) { c.Database.Password = v },
	"db_user":        func(c *Config, v string) { c.Database.User = v },
	"jwt_secret":     func(c *Config, v string) { c.JWT.Secret = v },
	"redis_password": func(c *Config, v string) { c.Redis.Password = v },
}

func applySecrets(cfg *Config) {
	for name, set := range secretTargets {
		if v := readSecret(name); v != "" {
			set(cfg, v)
		}
	}
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	data, err := os.ReadFile(filepath.Join(secretsDir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
