package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhodgson/phone-catalog-tracker/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimalConfig = `
scraper:
  base_url: https://shop.example.com/smartphones
database:
  host: localhost
  name: catalog
  user: catalog
`

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 10, cfg.Scraper.MaxPages)
	assert.Equal(t, 15*time.Second, cfg.Scraper.Timeout)
	assert.Equal(t, 2.0, cfg.Scraper.RateLimit.PerSecond)
	assert.Equal(t, 4, cfg.Scraper.RateLimit.Burst)
	assert.Equal(t, time.Hour, cfg.Schedule.ScrapeInterval)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadExpandsEnvVars(t *testing.T) {
	t.Setenv("CATALOG_DB_PASSWORD", "s3cret")

	cfg, err := config.Load(writeConfig(t, minimalConfig+`  password: ${CATALOG_DB_PASSWORD}
`))
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Database.Password)
}

func TestLoadValidation(t *testing.T) {
	t.Parallel()

	_, err := config.Load(writeConfig(t, `
database:
  host: localhost
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scraper.base_url is required")
	assert.Contains(t, err.Error(), "database.name is required")
	assert.Contains(t, err.Error(), "database.user is required")
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	t.Parallel()

	d := config.DatabaseConfig{
		Host: "db", Port: 5433, Name: "catalog", User: "u", Password: "p", SSLMode: "require",
	}
	assert.Equal(t,
		"host=db port=5433 dbname=catalog user=u password=p sslmode=require",
		d.DSN(),
	)
}
