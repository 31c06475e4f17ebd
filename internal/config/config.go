// Package config loads quarry.yml, the optional configuration file
// selecting the data root and the summary-cache backend. Environment
// variables override file values, and everything has a working default,
// so the file is only needed to change backends.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quarrydata/quarry/pkg/dataset"
)

// Cache backends.
const (
	BackendDisk  = "disk"
	BackendRedis = "redis"
)

// Config is the top-level quarry.yml configuration.
type Config struct {
	// DataRoot is where datasets are downloaded and summaries cached.
	// Defaults to dataset.DataRoot (QUARRY_DATA_ROOT or ~/.quarry).
	DataRoot string `yaml:"data_root,omitempty"`
	// Cache selects the summary-cache backend.
	Cache CacheConfig `yaml:"cache,omitempty"`
}

// CacheConfig selects and parameterizes the summary-cache backend.
type CacheConfig struct {
	// Backend is "disk" (default) or "redis".
	Backend string `yaml:"backend,omitempty"`
	// RedisAddr is the host:port of the Redis server for the redis
	// backend. Defaults to localhost:6379.
	RedisAddr string `yaml:"redis_addr,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads and validates the configuration file at path, applying
// environment overrides and defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.DataRoot == "" {
		c.DataRoot = dataset.DataRoot()
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = BackendDisk
	}
	if addr := os.Getenv("QUARRY_REDIS_ADDR"); addr != "" {
		c.Cache.RedisAddr = addr
	}
	if c.Cache.RedisAddr == "" {
		c.Cache.RedisAddr = "localhost:6379"
	}
}

// Validate performs strict validation on the configuration.
func (c *Config) Validate() error {
	if c.Cache.Backend != BackendDisk && c.Cache.Backend != BackendRedis {
		return fmt.Errorf("unsupported cache backend: %s (expected: %s or %s)",
			c.Cache.Backend, BackendDisk, BackendRedis)
	}
	return nil
}
