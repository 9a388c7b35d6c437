package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/metadia/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "data/metadia.db", cfg.ConnectionString())
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "Combustível", cfg.App.FuelKeyword)
	assert.Equal(t, "data/metadia-tui.log", cfg.Log.File)
}

func TestLoad_Postgres(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_USER", "meta")
	t.Setenv("DB_PASSWORD", "s3cr@t")
	t.Setenv("DB_HOST", "db")
	t.Setenv("CORS_ORIGINS", "http://a.test,http://b.test")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://meta:s3cr%40t@db:5432/metadia?sslmode=disable", cfg.ConnectionString())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.App.CORSOrigins)
}

func TestLoad_UnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")

	_, err := config.Load()
	assert.ErrorContains(t, err, "DB_DRIVER")
}
