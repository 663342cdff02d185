package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
service_name: shop-from-file
server:
  port: 9090
database:
  url: postgres://file/db
  driver: pq
kafka:
  brokers: [k1:9092, k2:9092]
redis:
  url: redis://localhost:6379/0
  ttl: 30s
catalog:
  legacy_errors: true
security:
  password_iterations: 1000
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "pgx", cfg.Database.Driver)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
	assert.False(t, cfg.Catalog.LegacyErrors)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadFile(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.LoadFile(writeFile(t, sampleYAML)))

	assert.Equal(t, "shop-from-file", cfg.ServiceName)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres://file/db", cfg.Database.URL)
	assert.Equal(t, "pq", cfg.Database.Driver)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.True(t, cfg.Catalog.LegacyErrors)
	assert.Equal(t, 1000, cfg.Security.PasswordIterations)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowOrigins)
}

func TestLoadFile_Invalid(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.LoadFile(writeFile(t, "server: [not, a, map")))
	assert.Error(t, cfg.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", writeFile(t, sampleYAML))
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("KAFKA_BROKERS", "env:9092")
	t.Setenv("CATALOG_LEGACY_ERRORS", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "postgres://env/db", cfg.Database.URL)
	assert.Equal(t, "pq", cfg.Database.Driver)
	assert.Equal(t, []string{"env:9092"}, cfg.Kafka.Brokers)
	assert.False(t, cfg.Catalog.LegacyErrors)
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
}
