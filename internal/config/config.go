// Package config loads the waypoint CLI configuration from YAML and the environment.
package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for a config file.
var DefaultPath = filepath.Join(".waypoint", "config.yaml")

// EnvPrefix prefixes every environment override.
const EnvPrefix = "WAYPOINT_"

// Store kinds.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreBadger = "badger"
	StoreLoam   = "loam"
)

// Config is the CLI configuration.
type Config struct {
	LogLevel   string           `mapstructure:"log_level" yaml:"log_level"`
	Codec      string           `mapstructure:"codec" yaml:"codec"`
	Store      StoreConfig      `mapstructure:"store" yaml:"store"`
	Encryption EncryptionConfig `mapstructure:"encryption" yaml:"encryption"`
	Metrics    bool             `mapstructure:"metrics" yaml:"metrics"`
}

// StoreConfig selects and configures the document store.
type StoreConfig struct {
	Kind   string       `mapstructure:"kind" yaml:"kind"`
	Path   string       `mapstructure:"path" yaml:"path"`
	Redis  RedisConfig  `mapstructure:"redis" yaml:"redis"`
	Badger BadgerConfig `mapstructure:"badger" yaml:"badger"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr" yaml:"addr"`
	Password string        `mapstructure:"password" yaml:"password"`
	DB       int           `mapstructure:"db" yaml:"db"`
	Prefix   string        `mapstructure:"prefix" yaml:"prefix"`
	TTL      time.Duration `mapstructure:"ttl" yaml:"ttl"`
	LockTTL  time.Duration `mapstructure:"lock_ttl" yaml:"lock_ttl"`
}

type BadgerConfig struct {
	SyncWrites bool          `mapstructure:"sync_writes" yaml:"sync_writes"`
	GCInterval time.Duration `mapstructure:"gc_interval" yaml:"gc_interval"`
}

// EncryptionConfig holds base64 encoded AES-256 keys. An empty Key disables encryption.
type EncryptionConfig struct {
	Key          string   `mapstructure:"key" yaml:"key"`
	FallbackKeys []string `mapstructure:"fallback_keys" yaml:"fallback_keys"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		LogLevel: "warn",
		Codec:    "binary",
		Store: StoreConfig{
			Kind: StoreFile,
			Path: filepath.Join(".waypoint", "documents"),
			Redis: RedisConfig{
				Addr:    "localhost:6379",
				Prefix:  "waypoint:",
				LockTTL: 30 * time.Second,
			},
			Badger: BadgerConfig{
				SyncWrites: true,
				GCInterval: 5 * time.Minute,
			},
		},
	}
}

// Load reads path over the defaults and applies WAYPOINT_* overrides.
// A missing file is not an error: the defaults are used.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if len(raw) == 0 {
			break
		}
		if err := decode(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to decode %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func decode(raw map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

// envOverrides maps variable suffixes to config keys.
var envOverrides = map[string]func(*Config, string) error{
	"LOG_LEVEL":      func(c *Config, v string) error { c.LogLevel = v; return nil },
	"CODEC":          func(c *Config, v string) error { c.Codec = v; return nil },
	"STORE":          func(c *Config, v string) error { c.Store.Kind = v; return nil },
	"STORE_PATH":     func(c *Config, v string) error { c.Store.Path = v; return nil },
	"REDIS_ADDR":     func(c *Config, v string) error { c.Store.Redis.Addr = v; return nil },
	"REDIS_PASSWORD": func(c *Config, v string) error { c.Store.Redis.Password = v; return nil },
	"REDIS_DB": func(c *Config, v string) (err error) {
		c.Store.Redis.DB, err = strconv.Atoi(v)
		return err
	},
	"REDIS_TTL": func(c *Config, v string) (err error) {
		c.Store.Redis.TTL, err = time.ParseDuration(v)
		return err
	},
	"ENCRYPTION_KEY": func(c *Config, v string) error { c.Encryption.Key = v; return nil },
	"METRICS": func(c *Config, v string) (err error) {
		c.Metrics, err = strconv.ParseBool(v)
		return err
	},
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	for suffix, set := range envOverrides {
		v, ok := lookup(EnvPrefix + suffix)
		if !ok {
			continue
		}
		if err := set(cfg, v); err != nil {
			return fmt.Errorf("invalid %s%s: %w", EnvPrefix, suffix, err)
		}
	}
	return nil
}

// Validate checks the values Load cannot type-check.
func (c Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q: want debug, info, warn or error", c.LogLevel)
	}
	switch c.Store.Kind {
	case StoreMemory, StoreRedis:
	case StoreFile, StoreBadger, StoreLoam:
		if c.Store.Path == "" {
			return fmt.Errorf("store %s needs a path", c.Store.Kind)
		}
	default:
		return fmt.Errorf("unknown store kind %q", c.Store.Kind)
	}
	if c.Store.Kind == StoreRedis && c.Store.Redis.Addr == "" {
		return fmt.Errorf("store redis needs an addr")
	}
	if c.Encryption.Key != "" {
		if _, err := c.Encryption.Keys(); err != nil {
			return err
		}
	}
	return nil
}

// Keys decodes the active key followed by the fallback keys.
func (e EncryptionConfig) Keys() ([][]byte, error) {
	var keys [][]byte
	for i, s := range append([]string{e.Key}, e.FallbackKeys...) {
		k, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("encryption key %d: %w", i, err)
		}
		if len(k) != 32 {
			return nil, fmt.Errorf("encryption key %d: %d bytes, want 32", i, len(k))
		}
		keys = append(keys, k)
	}
	return keys, nil
}
