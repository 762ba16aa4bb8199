package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Server  ServerConfig
	App     AppConfig
	Cache   CacheConfig
	DB      DBConfig
	AuditDB AuditDBConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"sampleroom-api"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	Debug       bool   `envconfig:"APP_DEBUG" default:"false"`
	Version     string `envconfig:"APP_VERSION" default:"1.0.0"`
	// DefaultActorID attributes mutations when the caller sends no X-Actor-ID.
	DefaultActorID string `envconfig:"DEFAULT_ACTOR_ID" default:"system"`
	// CommentReplyDepth is how many reply levels are eagerly loaded per thread.
	CommentReplyDepth int `envconfig:"COMMENT_REPLY_DEPTH" default:"3"`
}

// CacheConfig holds cache settings.
type CacheConfig struct {
	Type string        `envconfig:"CACHE_TYPE" default:"memory"` // memory or redis
	TTL  time.Duration `envconfig:"CACHE_TTL" default:"1m"`

	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

// DBConfig holds primary (entity) database settings.
type DBConfig struct {
	Path string `envconfig:"DB_PATH" default:"./data/sampleroom.db"`
}

// AuditDBConfig holds audit trail database settings. The audit trail can live
// in the primary SQLite file or in a shared central database.
type AuditDBConfig struct {
	Type string `envconfig:"AUDIT_DB_TYPE" default:"sqlite"` // sqlite, postgres, or mysql
	Path string `envconfig:"AUDIT_DB_PATH" default:"./data/sampleroom.db"`
	// PostgreSQL settings
	Host     string `envconfig:"AUDIT_DB_HOST" default:"localhost"`
	Port     int    `envconfig:"AUDIT_DB_PORT" default:"5432"`
	Name     string `envconfig:"AUDIT_DB_NAME" default:"sampleroom"`
	User     string `envconfig:"AUDIT_DB_USER" default:"postgres"`
	Password string `envconfig:"AUDIT_DB_PASS" default:""`
	SSLMode  string `envconfig:"AUDIT_DB_SSLMODE" default:"disable"`
}

// PostgresDSN returns the PostgreSQL connection string.
func (a *AuditDBConfig) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		a.User, a.Password, a.Host, a.Port, a.Name, a.SSLMode)
}

// MySQLDSN returns the MySQL data source name.
func (a *AuditDBConfig) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		a.User, a.Password, a.Host, a.Port, a.Name)
}

// Address returns the server address in host:port format.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RedisAddress returns the Redis address in host:port format.
func (c *CacheConfig) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsDevelopment returns true if running in development mode.
func (a *AppConfig) IsDevelopment() bool {
	return a.Environment == "development"
}

// IsProduction returns true if running in production mode.
func (a *AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
