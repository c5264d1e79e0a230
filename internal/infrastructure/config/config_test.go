package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "erpcore", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "UTC", cfg.App.Timezone)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "", cfg.Database.Password)
		assert.Equal(t, "erp", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.False(t, cfg.Redis.Enabled())
		assert.False(t, cfg.Storage.Enabled())
		assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
		assert.NotEmpty(t, cfg.JWT.Secret)
	})

	t.Run("loads values from environment variables with ERP prefix", func(t *testing.T) {
		t.Setenv("ERP_APP_NAME", "test-app")
		t.Setenv("ERP_APP_PORT", "9000")
		t.Setenv("ERP_APP_TIMEZONE", "Europe/Madrid")
		t.Setenv("ERP_DATABASE_HOST", "testdb.local")
		t.Setenv("ERP_DATABASE_PORT", "5433")
		t.Setenv("ERP_DATABASE_MAX_OPEN_CONNS", "50")
		t.Setenv("ERP_DATABASE_MAX_IDLE_CONNS", "10")
		t.Setenv("ERP_REDIS_HOST", "cache.local")
		t.Setenv("ERP_JWT_ACCESS_TOKEN_EXPIRATION", "1h")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "Europe/Madrid", cfg.App.Location().String())
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
		assert.True(t, cfg.Redis.Enabled())
		assert.Equal(t, "cache.local:6379", cfg.Redis.Addr())
		assert.Equal(t, time.Hour, cfg.JWT.AccessTokenExpiration)
		assert.Equal(t, "test-app", cfg.Telemetry.ServiceName)
	})

	t.Run("rejects idle connections above open connections", func(t *testing.T) {
		t.Setenv("ERP_DATABASE_MAX_OPEN_CONNS", "5")
		t.Setenv("ERP_DATABASE_MAX_IDLE_CONNS", "10")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("production requires secrets", func(t *testing.T) {
		t.Setenv("ERP_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("production rejects sslmode disable", func(t *testing.T) {
		t.Setenv("ERP_APP_ENV", "production")
		t.Setenv("ERP_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		t.Setenv("ERP_DATABASE_PASSWORD", "secret")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")
	})

	t.Run("rejects invalid timezone", func(t *testing.T) {
		t.Setenv("ERP_APP_TIMEZONE", "Mars/Olympus")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "erp",
		Password: "p@ss word",
		DBName:   "ledger",
		SSLMode:  "require",
	}
	assert.Equal(t, "postgres://erp:p%40ss%20word@db:5432/ledger?sslmode=require", d.DSN())
}
