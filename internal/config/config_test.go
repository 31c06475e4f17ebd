package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quarry.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	t.Setenv("QUARRY_DATA_ROOT", "/srv/datasets")
	t.Setenv("QUARRY_REDIS_ADDR", "")

	c := Default()
	assert.Equal(t, "/srv/datasets", c.DataRoot)
	assert.Equal(t, BackendDisk, c.Cache.Backend)
	assert.Equal(t, "localhost:6379", c.Cache.RedisAddr)
}

func TestLoad(t *testing.T) {
	t.Run("full config", func(t *testing.T) {
		path := writeConfig(t, `
data_root: /mnt/datasets
cache:
  backend: redis
  redis_addr: cache.lab:6379
`)
		c, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "/mnt/datasets", c.DataRoot)
		assert.Equal(t, BackendRedis, c.Cache.Backend)
		assert.Equal(t, "cache.lab:6379", c.Cache.RedisAddr)
	})

	t.Run("defaults fill gaps", func(t *testing.T) {
		t.Setenv("QUARRY_DATA_ROOT", "/srv/datasets")
		c, err := Load(writeConfig(t, "cache:\n  backend: disk\n"))
		require.NoError(t, err)
		assert.Equal(t, "/srv/datasets", c.DataRoot)
		assert.Equal(t, "localhost:6379", c.Cache.RedisAddr)
	})

	t.Run("environment overrides redis addr", func(t *testing.T) {
		t.Setenv("QUARRY_REDIS_ADDR", "override:6380")
		c, err := Load(writeConfig(t, "cache:\n  backend: redis\n  redis_addr: file:6379\n"))
		require.NoError(t, err)
		assert.Equal(t, "override:6380", c.Cache.RedisAddr)
	})

	t.Run("rejects unknown backend", func(t *testing.T) {
		_, err := Load(writeConfig(t, "cache:\n  backend: memcached\n"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported cache backend")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
		assert.Error(t, err)
	})

	t.Run("malformed YAML", func(t *testing.T) {
		_, err := Load(writeConfig(t, "cache: ["))
		assert.Error(t, err)
	})
}
