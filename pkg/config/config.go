// Package config loads application settings from an optional TOML file
// with environment-variable overrides. Every knob has a working default,
// so a bare binary serves from a local data directory without any
// configuration at all.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/utrgv-dp/roadmap/pkg/errors"
)

// Backend names accepted for stores and caches.
const (
	StoreFile  = "file"
	StoreMongo = "mongo"

	CacheMemory = "memory"
	CacheFile   = "file"
	CacheRedis  = "redis"
)

// Config is the root configuration document.
type Config struct {
	Server Server `toml:"server"`
	Store  Store  `toml:"store"`
	Cache  Cache  `toml:"cache"`
	Client Client `toml:"client"`
}

// Server configures the HTTP server.
type Server struct {
	Addr string `toml:"addr"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout duration `toml:"shutdown_timeout"`
}

// Store selects and configures the persistence backend.
type Store struct {
	Backend string `toml:"backend"`

	// DataDir holds the per-collection JSON files of the file backend.
	DataDir string `toml:"data_dir"`

	Mongo Mongo `toml:"mongo"`
}

// Mongo configures the MongoDB backend.
type Mongo struct {
	URI      string   `toml:"uri"`
	Database string   `toml:"database"`
	Timeout  duration `toml:"timeout"`
}

// Cache selects and configures the read cache in front of the store.
type Cache struct {
	Backend string   `toml:"backend"`
	Dir     string   `toml:"dir"`
	TTL     duration `toml:"ttl"`

	Redis Redis `toml:"redis"`
}

// Redis configures the Redis cache backend.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// Client configures the CLI's API client and browser defaults.
type Client struct {
	BaseURL  string `toml:"base_url"`
	PageSize int    `toml:"page_size"`
}

// duration wraps time.Duration for TOML string values like "30s".
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(parsed)
	return nil
}

// Std returns the plain time.Duration.
func (d duration) Std() time.Duration { return time.Duration(d) }

// Default returns the configuration used when no file or overrides exist.
func Default() Config {
	return Config{
		Server: Server{
			Addr:            ":8080",
			ShutdownTimeout: duration(10 * time.Second),
		},
		Store: Store{
			Backend: StoreFile,
			DataDir: "data",
			Mongo: Mongo{
				Database: "roadmaps",
				Timeout:  duration(20 * time.Second),
			},
		},
		Cache: Cache{
			Backend: CacheMemory,
			TTL:     duration(5 * time.Minute),
			Redis:   Redis{Addr: "localhost:6379"},
		},
		Client: Client{
			BaseURL:  "http://localhost:8080",
			PageSize: 20,
		},
	}
}

// Load reads path (when non-empty) over the defaults and then applies
// environment overrides. A missing explicit path is an error; the empty
// path means "defaults plus environment".
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if os.IsNotExist(err) {
				return cfg, errors.New(errors.ErrCodeInvalidInput, "config file %q not found", path)
			}
			return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parsing config %q", path)
		}
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv layers ROADMAP_* variables over the loaded values.
func applyEnv(cfg *Config) {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString("ROADMAP_ADDR", &cfg.Server.Addr)
	setString("ROADMAP_STORE_BACKEND", &cfg.Store.Backend)
	setString("ROADMAP_DATA_DIR", &cfg.Store.DataDir)
	setString("ROADMAP_MONGO_URI", &cfg.Store.Mongo.URI)
	setString("ROADMAP_MONGO_DATABASE", &cfg.Store.Mongo.Database)
	setString("ROADMAP_CACHE_BACKEND", &cfg.Cache.Backend)
	setString("ROADMAP_CACHE_DIR", &cfg.Cache.Dir)
	setString("ROADMAP_REDIS_ADDR", &cfg.Cache.Redis.Addr)
	setString("ROADMAP_REDIS_PASSWORD", &cfg.Cache.Redis.Password)
	setString("ROADMAP_BASE_URL", &cfg.Client.BaseURL)

	if v := os.Getenv("ROADMAP_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Client.PageSize = n
		}
	}
	if v := os.Getenv("ROADMAP_CACHE_TTL"); v != "" {
		if ttl, err := time.ParseDuration(v); err == nil {
			cfg.Cache.TTL = duration(ttl)
		}
	}
}

// Validate rejects unknown backend names and inconsistent settings.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case StoreFile:
	case StoreMongo:
		if c.Store.Mongo.URI == "" {
			return errors.New(errors.ErrCodeInvalidInput, "mongo backend requires store.mongo.uri")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q", c.Store.Backend)
	}

	switch c.Cache.Backend {
	case CacheMemory, CacheRedis:
	case CacheFile:
		if c.Cache.Dir == "" {
			return errors.New(errors.ErrCodeInvalidInput, "file cache requires cache.dir")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}

	if c.Client.PageSize <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "page size must be positive")
	}
	return nil
}
