// Package config loads server and CLI configuration from a TOML file,
// with environment variable overrides for secrets.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the full draftboard configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	LLM    LLMConfig    `toml:"llm"`
	Cache  CacheConfig  `toml:"cache"`
	Board  BoardConfig  `toml:"board"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr string `toml:"addr"`

	// NoAuth disables session authentication for single-user
	// deployments.
	NoAuth bool `toml:"no_auth"`

	// RateLimit is the number of diagram generations allowed per
	// session per minute. Zero disables rate limiting.
	RateLimit int `toml:"rate_limit"`

	ReadTimeout     duration `toml:"read_timeout"`
	WriteTimeout    duration `toml:"write_timeout"`
	ShutdownTimeout duration `toml:"shutdown_timeout"`
}

// LLMConfig configures the generation source. The API key comes from
// the DRAFTBOARD_API_KEY environment variable when not set here.
type LLMConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
}

// CacheConfig configures the pipeline cache backend.
type CacheConfig struct {
	// Backend is "file", "redis", or "none".
	Backend string `toml:"backend"`

	// Dir is the file backend's directory. Empty means the default
	// user cache directory.
	Dir string `toml:"dir"`

	// Redis connection settings, used when Backend is "redis".
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// BoardConfig configures board persistence.
type BoardConfig struct {
	// Backend is "memory" or "mongo".
	Backend string `toml:"backend"`

	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// duration wraps time.Duration for TOML string decoding ("30s", "1m").
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			RateLimit:       10,
			ReadTimeout:     duration{30 * time.Second},
			WriteTimeout:    duration{120 * time.Second},
			ShutdownTimeout: duration{10 * time.Second},
		},
		Cache: CacheConfig{Backend: "file"},
		Board: BoardConfig{Backend: "memory"},
	}
}

// DefaultPath returns the standard config file location,
// ~/.config/draftboard/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "draftboard", "config.toml"), nil
}

// Load reads configuration from path, applying defaults for anything the
// file leaves unset. A missing file yields the defaults without error;
// any other read or parse failure is reported.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		applyEnv(&cfg)
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	applyEnv(&cfg)
	return cfg, cfg.validate()
}

// applyEnv overlays environment variables that hold secrets, so they
// never need to live in the config file.
func applyEnv(cfg *Config) {
	if key := os.Getenv("DRAFTBOARD_API_KEY"); key != "" {
		cfg.LLM.APIKey = key
	}
	if pw := os.Getenv("DRAFTBOARD_REDIS_PASSWORD"); pw != "" {
		cfg.Cache.RedisPassword = pw
	}
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case "", "file", "redis", "none":
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	switch c.Board.Backend {
	case "", "memory", "mongo":
	default:
		return fmt.Errorf("unknown board backend %q", c.Board.Backend)
	}
	if c.Board.Backend == "mongo" && c.Board.MongoURI == "" {
		return fmt.Errorf("board backend is mongo but mongo_uri is unset")
	}
	if c.Cache.Backend == "redis" && c.Cache.RedisAddr == "" {
		return fmt.Errorf("cache backend is redis but redis_addr is unset")
	}
	return nil
}
