// Package config loads creativeforge settings from a TOML file and the
// environment.
//
// A configuration file overrides guideline thresholds, registers extra
// export formats and selects the cache backend:
//
//	[guidelines]
//	max_text_coverage_percent = 25
//	approved_colors = ["#e30613", "#000000", "#ffffff"]
//	safe_zone_margin = 40
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[[formats]]
//	key = "pinterest_pin"
//	name = "Pinterest Pin"
//	width = 1000
//	height = 1500
//	platform = "pinterest"
//
// Environment variables (see [Config.ApplyEnv]) take precedence over the
// file.
package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/creativeforge/pkg/compliance"
	"github.com/matzehuels/creativeforge/pkg/errors"
	"github.com/matzehuels/creativeforge/pkg/format"
)

// Environment variables.
const (
	EnvCache     = "CREATIVEFORGE_CACHE"
	EnvRedisAddr = "CREATIVEFORGE_REDIS_ADDR"
	EnvAddr      = "CREATIVEFORGE_ADDR"
	EnvConfig    = "CREATIVEFORGE_CONFIG"
)

// Cache backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// DefaultAddr is the server listen address.
const DefaultAddr = ":8080"

// Config is the full configuration.
type Config struct {
	Guidelines compliance.Guidelines `toml:"guidelines"`
	Formats    []format.Format       `toml:"formats"`
	Cache      CacheConfig           `toml:"cache"`
	Server     ServerConfig          `toml:"server"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend string `toml:"backend"`
	// Dir overrides the file cache directory.
	Dir           string `toml:"dir,omitempty"`
	RedisAddr     string `toml:"redis_addr,omitempty"`
	MemoryEntries int    `toml:"memory_entries,omitempty"`
}

// ServerConfig configures `creativeforge serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Guidelines: compliance.DefaultGuidelines(),
		Cache:      CacheConfig{Backend: BackendFile},
		Server:     ServerConfig{Addr: DefaultAddr},
	}
}

// Load reads the TOML file at path on top of [Default] and validates the
// result. Unknown keys are rejected so that typos do not silently fall back
// to defaults.
func Load(path string) (Config, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Config{}, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Config{}, errors.New(errors.ErrCodeNotFound, "config file %s not found", path)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open config")
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	return cfg, nil
}

// Decode reads TOML from r on top of [Default] and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidInput, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDefault loads the file named by CREATIVEFORGE_CONFIG, or the user
// config file if it exists, and falls back to [Default] otherwise.
func LoadDefault() (Config, error) {
	if path := os.Getenv(EnvConfig); path != "" {
		return Load(path)
	}
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	if _, err := os.Stat(path); err != nil {
		return Default(), nil
	}
	return Load(path)
}

// DefaultPath returns $XDG_CONFIG_HOME/creativeforge/config.toml, or the
// platform equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "creativeforge", "config.toml"), nil
}

// ApplyEnv overlays CREATIVEFORGE_CACHE, CREATIVEFORGE_REDIS_ADDR and
// CREATIVEFORGE_ADDR onto c.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvCache); v != "" {
		c.Cache.Backend = strings.ToLower(v)
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		c.Cache.RedisAddr = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
}

// Validate checks guidelines, formats and the cache backend.
func (c Config) Validate() error {
	if err := c.Guidelines.Validate(); err != nil {
		return err
	}
	if _, err := c.Registry(); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case BackendFile, BackendMemory, BackendNone:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache backend redis needs redis_addr or %s", EnvRedisAddr)
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (must be one of: file, memory, redis, none)", c.Cache.Backend)
	}
	return nil
}

// Registry returns the built-in formats extended, or overridden, by the
// configured ones.
func (c Config) Registry() (*format.Registry, error) {
	reg := format.DefaultRegistry()
	for _, f := range c.Formats {
		if err := reg.Add(f); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
