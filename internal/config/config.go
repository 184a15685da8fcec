package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Log      LogConfig      `mapstructure:"log"`
	Workouts WorkoutsConfig `mapstructure:"workouts"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Supported values of database.driver
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type DatabaseConfig struct {
	Driver      string `mapstructure:"driver"`
	URI         string `mapstructure:"uri"`  // mongo
	Name        string `mapstructure:"name"` // mongo database name
	PostgresURL string `mapstructure:"postgres_url"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
}

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"` // e.g. "60m", "1h"
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	File     string `mapstructure:"file"` // empty disables file logging
	JSON     bool   `mapstructure:"json"`
	ToStdout bool   `mapstructure:"to_stdout"`
}

type WorkoutsConfig struct {
	WeekStart  string `mapstructure:"week_start"` // weekday name
	Timezone   string `mapstructure:"timezone"`   // IANA name
	RandomSeed uint64 `mapstructure:"random_seed"`
}

type CatalogConfig struct {
	SeedSource  string        `mapstructure:"seed_source"` // file path or s3://bucket/key
	CacheSizeMB int           `mapstructure:"cache_size_mb"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Location resolves the configured timezone.
func (c WorkoutsConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

// LoadConfig reads configuration from a .env file, a config.yaml under path,
// and environment variables, in increasing order of precedence.
func LoadConfig(path string) (config Config, err error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// --- Environment Variable Handling ---
	// server.address -> SERVER_ADDRESS, jwt.expiration -> JWT_EXPIRATION
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))
	v.AutomaticEnv()

	setDefaults(v)

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("read config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("unmarshal config: %w", err)
	}

	return config, config.Validate()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.shutdown_timeout", "5s")
	v.SetDefault("database.driver", DriverMongo)
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "gymbuddy")
	v.SetDefault("database.postgres_url", "")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", "1h")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.json", false)
	v.SetDefault("log.to_stdout", true)
	v.SetDefault("workouts.week_start", "sunday")
	v.SetDefault("workouts.timezone", "UTC")
	v.SetDefault("workouts.random_seed", 0)
	v.SetDefault("catalog.seed_source", "")
	v.SetDefault("catalog.cache_size_mb", 8)
	v.SetDefault("catalog.cache_ttl", "1h")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// Validate checks values that would otherwise fail late at startup.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case DriverMongo, DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	if c.Database.Driver == DriverPostgres && c.Database.PostgresURL == "" {
		return errors.New("database.postgres_url is required for the postgres driver")
	}
	if c.JWT.Expiration <= 0 {
		return errors.New("jwt.expiration must be positive")
	}
	if _, err := c.Workouts.Location(); err != nil {
		return fmt.Errorf("workouts.timezone: %w", err)
	}
	return nil
}
