package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string   `mapstructure:"host"`
	Port            string   `mapstructure:"port"`
	ReadTimeout     int      `mapstructure:"read_timeout"`
	WriteTimeout    int      `mapstructure:"write_timeout"`
	ShutdownTimeout int      `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int      `mapstructure:"max_header_bytes"`
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig holds database configuration.
// Driver selects the engine (postgres or sqlite), ORM the data-access layer (gorm or sqlx).
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	ORM             string `mapstructure:"orm"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Name            string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	Path            string `mapstructure:"path"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// DSN returns the postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		d.Host, d.Username, d.Password, d.Name, d.Port, d.SSLMode)
}

// CacheConfig holds cache configuration
type CacheConfig struct {
	Type        string `mapstructure:"type"`
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	Password    string `mapstructure:"password"`
	DB          int    `mapstructure:"db"`
	ScheduleTTL int    `mapstructure:"schedule_ttl"`
	LectureTTL  int    `mapstructure:"lecture_ttl"`
}

func (c CacheConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c CacheConfig) ScheduleExpiration() time.Duration {
	return time.Duration(c.ScheduleTTL) * time.Second
}

func (c CacheConfig) LectureExpiration() time.Duration {
	return time.Duration(c.LectureTTL) * time.Second
}

// AuthConfig holds token and password hashing settings
type AuthConfig struct {
	JWTSecret      string `mapstructure:"jwt_secret"`
	Issuer         string `mapstructure:"issuer"`
	AccessTokenTTL int    `mapstructure:"access_token_ttl"`
	BcryptCost     int    `mapstructure:"bcrypt_cost"`
}

func (a AuthConfig) AccessTokenDuration() time.Duration {
	return time.Duration(a.AccessTokenTTL) * time.Minute
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

var config *Config

// Init initializes the configuration
func Init() {
	setDefaults(viper.GetViper())

	cfg, err := Load(viper.GetViper())
	if err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}
	config = cfg
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Get returns the global configuration
func Get() *Config {
	if config == nil {
		Init()
	}
	return config
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	c.Database.Driver = strings.ToLower(c.Database.Driver)
	c.Database.ORM = strings.ToLower(c.Database.ORM)
	c.Cache.Type = strings.ToLower(c.Cache.Type)

	switch c.Database.Driver {
	case "postgres":
	case "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for the sqlite driver")
		}
		if c.Database.ORM == "gorm" {
			return fmt.Errorf("database.orm gorm is only supported with the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}

	switch c.Database.ORM {
	case "gorm", "sqlx":
	default:
		return fmt.Errorf("unsupported database.orm %q", c.Database.ORM)
	}

	switch c.Cache.Type {
	case "redis", "none":
	default:
		return fmt.Errorf("unsupported cache.type %q", c.Cache.Type)
	}
	if c.Cache.ScheduleTTL < 0 || c.Cache.LectureTTL < 0 {
		return fmt.Errorf("cache TTLs must not be negative")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be positive")
	}
	return nil
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	setDefaults(v)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "class-timetable")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")

	// Server defaults
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 15)
	v.SetDefault("server.shutdown_timeout", 30)
	v.SetDefault("server.max_header_bytes", 1048576)
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Database defaults
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.orm", "gorm")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.username", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "class_timetable")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.path", "./data/timetable.db")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", 300)

	// Cache defaults
	v.SetDefault("cache.type", "redis")
	v.SetDefault("cache.host", "localhost")
	v.SetDefault("cache.port", 6379)
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.schedule_ttl", 300)
	v.SetDefault("cache.lecture_ttl", 3600)

	// Auth defaults
	v.SetDefault("auth.jwt_secret", "change-me")
	v.SetDefault("auth.issuer", "class-timetable")
	v.SetDefault("auth.access_token_ttl", 60)
	v.SetDefault("auth.bcrypt_cost", 10)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.file_path", "")
}
