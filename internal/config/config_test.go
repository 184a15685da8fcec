package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, "gymbuddy", cfg.Database.Name)
	assert.Equal(t, time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Log.ToStdout)
	assert.Equal(t, "sunday", cfg.Workouts.WeekStart)
	assert.Equal(t, 8, cfg.Catalog.CacheSizeMB)
	assert.Equal(t, time.Hour, cfg.Catalog.CacheTTL)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)

	loc, err := cfg.Workouts.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  address: ":9090"
database:
  driver: memory
jwt:
  secret: from-file
  expiration: 30m
workouts:
  week_start: monday
  timezone: Europe/Berlin
  random_seed: 42
catalog:
  seed_source: s3://seed/catalog.yaml
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, 30*time.Minute, cfg.JWT.Expiration)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "monday", cfg.Workouts.WeekStart)
	assert.EqualValues(t, 42, cfg.Workouts.RandomSeed)
	assert.Equal(t, "s3://seed/catalog.yaml", cfg.Catalog.SeedSource)

	loc, err := cfg.Workouts.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		Database: DatabaseConfig{Driver: DriverMemory},
		JWT:      JWTConfig{Expiration: time.Hour},
	}
	require.NoError(t, valid.Validate())

	unknownDriver := valid
	unknownDriver.Database.Driver = "sqlite"
	assert.Error(t, unknownDriver.Validate())

	noPostgresURL := valid
	noPostgresURL.Database.Driver = DriverPostgres
	assert.Error(t, noPostgresURL.Validate())

	noExpiration := valid
	noExpiration.JWT.Expiration = 0
	assert.Error(t, noExpiration.Validate())

	badZone := valid
	badZone.Workouts.Timezone = "Mars/Olympus"
	assert.Error(t, badZone.Validate())
}
