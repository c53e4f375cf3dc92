// Package config loads the infraflow configuration file.
//
// Configuration is TOML, looked up at the path given by --config, the
// INFRAFLOW_CONFIG environment variable, or ~/.config/infraflow/config.toml
// (XDG), in that order. Every field has a working default so the file is
// entirely optional.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/dizzikim-dev/infraflow-sub006/pkg/errors"
	"github.com/dizzikim-dev/infraflow-sub006/pkg/layout"
)

// Cache backend names accepted in [cache] backend.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendOff   = "off"
)

// Config is the root of the TOML configuration file.
type Config struct {
	Layout layout.Config `toml:"layout"`
	Server ServerConfig  `toml:"server"`
	Cache  CacheConfig   `toml:"cache"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend  string `toml:"backend"`   // file, redis, or off
	Dir      string `toml:"dir"`       // file backend: cache directory
	RedisURL string `toml:"redis_url"` // redis backend: connection URL
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Layout: layout.DefaultConfig(),
		Server: ServerConfig{Addr: ":8080"},
		Cache: CacheConfig{
			Backend: CacheBackendFile,
		},
	}
}

// Load reads the configuration from path. An empty path falls back to
// INFRAFLOW_CONFIG and then the XDG location; a missing file at a fallback
// location is not an error, but a missing file at an explicit path is.
func Load(path string) (Config, error) {
	explicit := path != ""
	if path == "" {
		path = os.Getenv("INFRAFLOW_CONFIG")
	}
	if path == "" {
		path = defaultPath()
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if explicit {
			return Config{}, errors.New(errors.ErrCodeFileNotFound, "config file %s does not exist", path)
		}
		return cfg, nil
	}
	if err != nil {
		return Config{}, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case CacheBackendFile, CacheBackendOff, "":
	case CacheBackendRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache backend redis requires redis_url")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"unknown cache backend %q (must be file, redis, or off)", c.Cache.Backend)
	}
	return nil
}

// defaultPath returns the XDG config file location.
func defaultPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "infraflow", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "infraflow", "config.toml")
}
