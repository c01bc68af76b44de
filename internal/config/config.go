// Package config loads and validates the site configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultFilename is the configuration file scaffolded by init and looked
// up by build/dev inside the blog directory.
const DefaultFilename = "blog.toml"

// Link is an opaque name+href pair rendered into the site navigation.
type Link struct {
	Name string `toml:"name"`
	Href string `toml:"href"`
}

// Config is the site configuration. Immutable once loaded; one instance per
// build. The dev server forces IsDevServer regardless of file contents.
type Config struct {
	BlogTitle       string `toml:"blog_title"`
	Author          string `toml:"author"`
	BaseURL         string `toml:"base_url"`
	EnableRSS       bool   `toml:"enable_rss"`
	ExtraLinksStart []Link `toml:"extra_links_start"`
	ExtraLinksEnd   []Link `toml:"extra_links_end"`
	IsDevServer     bool   `toml:"is_dev_server"`
}

// Parse decodes TOML configuration bytes and applies defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Config{
		EnableRSS:       true,
		ExtraLinksStart: []Link{},
		ExtraLinksEnd:   []Link{},
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}
	if cfg.BlogTitle == "" {
		return nil, errors.New("configuration missing required field: blog_title")
	}
	if cfg.Author == "" {
		return nil, errors.New("configuration missing required field: author")
	}
	return &cfg, nil
}

// Load reads and parses the configuration file at path. Any failure here is
// fatal to the build: no build proceeds without valid configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read configuration %s: %w", path, err)
	}
	return Parse(data)
}
