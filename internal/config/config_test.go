package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("yaml file overrides defaults", func(t *testing.T) {
		path := writeConfigFile(t, `
server:
  port: "9090"
jwt:
  secret: "test-secret"
  access_token_expiration: "30m"
database:
  dbname: "hostelhub_test"
`)

		cfg, err := LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, "hostelhub_test", cfg.Database.DBName)
		assert.Equal(t, 30*time.Minute, cfg.GetAccessTokenExpiration())
		// Untouched fields keep their defaults
		assert.Equal(t, "development", cfg.Server.Mode)
		assert.Equal(t, "720h", cfg.JWT.RefreshTokenExpiration)
	})

	t.Run("environment variables win over the file", func(t *testing.T) {
		path := writeConfigFile(t, `
server:
  port: "9090"
jwt:
  secret: "test-secret"
`)
		t.Setenv("SERVER_PORT", "7070")
		t.Setenv("DB_HOST", "db.internal")

		cfg, err := LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "7070", cfg.Server.Port)
		assert.Equal(t, "db.internal", cfg.Database.Host)
	})

	t.Run("missing jwt secret is rejected", func(t *testing.T) {
		path := writeConfigFile(t, `
server:
  port: "9090"
`)
		_, err := LoadConfig(path)
		assert.ErrorContains(t, err, "jwt secret")
	})

	t.Run("invalid duration is rejected", func(t *testing.T) {
		path := writeConfigFile(t, `
jwt:
  secret: "test-secret"
  access_token_expiration: "soon"
`)
		_, err := LoadConfig(path)
		assert.ErrorContains(t, err, "access_token_expiration")
	})
}

func TestGetPostgresConnectionString(t *testing.T) {
	path := writeConfigFile(t, `
jwt:
  secret: "test-secret"
database:
  user: "app"
  password: "pw"
  host: "db"
  port: "5433"
  dbname: "hostel"
  sslmode: "require"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://app:pw@db:5433/hostel?sslmode=require", cfg.GetPostgresConnectionString())
}
