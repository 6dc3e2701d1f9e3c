// Package config loads the reader's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oddlabs/oddly/internal/source"
)

const (
	DefaultConfigFile    = "config.yaml"
	DefaultStoragePath   = ".oddly/oddly.db"
	DefaultArticleTTL    = 30 * time.Minute
	DefaultContentTTL    = 7 * 24 * time.Hour
	DefaultMemoryEntries = 20
	DefaultReadWait      = 2 * time.Second

	DefaultPreloadTop     = 10
	DefaultPreloadBatch   = 5
	DefaultPreloadTimeout = 5 * time.Second
)

// Duration wraps time.Duration for YAML unmarshaling from strings like "30m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

type Config struct {
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Cache   CacheConfig   `yaml:"cache"`
	Preload PreloadConfig `yaml:"preload"`
	Feeds   []source.Feed `yaml:"feeds"`
}

type APIConfig struct {
	BaseURL string `yaml:"base_url"`
}

type StorageConfig struct {
	Path string `yaml:"path"`
}

type CacheConfig struct {
	ArticleTTL    Duration `yaml:"article_ttl"`
	ContentTTL    Duration `yaml:"content_ttl"`
	MemoryEntries int      `yaml:"memory_entries"`
	ReadWait      Duration `yaml:"read_wait"`
}

// PreloadConfig bounds the content preloader: how many of the top
// articles are warmed, how many requests run at once, and how long
// each request may take.
type PreloadConfig struct {
	Top     int      `yaml:"top"`
	Batch   int      `yaml:"batch"`
	Timeout Duration `yaml:"timeout"`
}

// Load reads config.yaml from dir, applies defaults, and validates.
// A missing file is not an error: the reader runs on defaults with
// the bundled feed list.
func Load(dir string) (*Config, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("config dir is required")
	}

	var cfg Config
	path := filepath.Join(dir, DefaultConfigFile)
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// run on defaults
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = DefaultStoragePath
	}
	if cfg.Cache.ArticleTTL.Duration == 0 {
		cfg.Cache.ArticleTTL.Duration = DefaultArticleTTL
	}
	if cfg.Cache.ContentTTL.Duration == 0 {
		cfg.Cache.ContentTTL.Duration = DefaultContentTTL
	}
	if cfg.Cache.MemoryEntries == 0 {
		cfg.Cache.MemoryEntries = DefaultMemoryEntries
	}
	if cfg.Cache.ReadWait.Duration == 0 {
		cfg.Cache.ReadWait.Duration = DefaultReadWait
	}
	if cfg.Preload.Top == 0 {
		cfg.Preload.Top = DefaultPreloadTop
	}
	if cfg.Preload.Batch == 0 {
		cfg.Preload.Batch = DefaultPreloadBatch
	}
	if cfg.Preload.Timeout.Duration == 0 {
		cfg.Preload.Timeout.Duration = DefaultPreloadTimeout
	}
	if cfg.API.BaseURL == "" && len(cfg.Feeds) == 0 {
		cfg.Feeds = source.DefaultFeeds()
	}
}

func validate(cfg *Config) error {
	if cfg.API.BaseURL == "" && len(cfg.Feeds) == 0 {
		return errors.New("either api.base_url or feeds must be configured")
	}
	for i, f := range cfg.Feeds {
		if strings.TrimSpace(f.URL) == "" {
			return fmt.Errorf("feeds[%d]: url is required", i)
		}
		if strings.TrimSpace(f.Source) == "" {
			return fmt.Errorf("feeds[%d]: source is required", i)
		}
	}
	if cfg.Cache.ArticleTTL.Duration < 0 || cfg.Cache.ContentTTL.Duration < 0 {
		return errors.New("cache TTLs must be positive")
	}
	if cfg.Preload.Top < 0 || cfg.Preload.Batch < 0 {
		return errors.New("preload bounds must be positive")
	}
	return nil
}
