// Package config loads the crawl configuration from a YAML file.
//
// The configuration lives at a fixed path (config/config.yaml) and supplies
// the module index URL, the name of the transient link-list file, and the
// cookie set attached to every request.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the fixed location of the configuration file, relative to
// the working directory the tool is started from.
const DefaultPath = "config/config.yaml"

// ErrMissingURL reports a configuration without the required url key.
var ErrMissingURL = errors.New("url missing in configuration")

// Config holds the settings for one crawl run.
type Config struct {
	// URL is the module index page. Required; the crawl is invalid without it.
	URL string
	// File is the name of the transient link-list file written into the
	// output directory and removed after a successful run.
	File string
	// Cookies maps cookie names to values, sent with every request. Names
	// keep the case they have in the file; cookie names are case-sensitive.
	Cookies map[string]string
}

// Load reads the configuration file at path.
//
// A missing or unreadable file is an error; absent keys fall back to their
// defaults (file: links.txt, cookies: empty). No schema validation is
// performed beyond what Validate checks.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("file", "links.txt")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	// viper folds nested map keys to lower case, which corrupts
	// case-sensitive cookie names. The cookies section is decoded from the
	// raw file instead.
	var cookies struct {
		Cookies map[string]string `yaml:"cookies"`
	}
	if err := yaml.Unmarshal(data, &cookies); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg := &Config{
		URL:     v.GetString("url"),
		File:    v.GetString("file"),
		Cookies: cookies.Cookies,
	}
	if cfg.Cookies == nil {
		cfg.Cookies = map[string]string{}
	}
	return cfg, nil
}

// Validate reports whether the configuration can drive a crawl.
func (c *Config) Validate() error {
	if c.URL == "" {
		return ErrMissingURL
	}
	return nil
}
