package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/utrgv-dp/roadmap/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roadmap.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Store.Backend != StoreFile {
		t.Errorf("store backend = %q", cfg.Store.Backend)
	}
	if cfg.Client.PageSize != 20 {
		t.Errorf("page size = %d", cfg.Client.PageSize)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[server]
addr = ":9090"

[store]
backend = "mongo"

[store.mongo]
uri = "mongodb://localhost:27017"
database = "degrees"
timeout = "5s"

[cache]
backend = "redis"
ttl = "90s"

[cache.redis]
addr = "cache.internal:6379"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Store.Mongo.Database != "degrees" {
		t.Errorf("database = %q", cfg.Store.Mongo.Database)
	}
	if cfg.Store.Mongo.Timeout.Std() != 5*time.Second {
		t.Errorf("timeout = %v", cfg.Store.Mongo.Timeout.Std())
	}
	if cfg.Cache.Backend != CacheRedis || cfg.Cache.Redis.Addr != "cache.internal:6379" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	// Unspecified values keep their defaults.
	if cfg.Client.PageSize != 20 {
		t.Errorf("page size = %d", cfg.Client.PageSize)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[server]
addr = ":9090"
`)
	t.Setenv("ROADMAP_ADDR", ":7070")
	t.Setenv("ROADMAP_PAGE_SIZE", "5")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("addr = %q, want env override", cfg.Server.Addr)
	}
	if cfg.Client.PageSize != 5 {
		t.Errorf("page size = %d, want env override", cfg.Client.PageSize)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown store", func(c *Config) { c.Store.Backend = "postgres" }},
		{"mongo without uri", func(c *Config) { c.Store.Backend = StoreMongo }},
		{"unknown cache", func(c *Config) { c.Cache.Backend = "memcached" }},
		{"file cache without dir", func(c *Config) { c.Cache.Backend = CacheFile }},
		{"zero page size", func(c *Config) { c.Client.PageSize = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("error = %v, want INVALID_INPUT", err)
			}
		})
	}
}
