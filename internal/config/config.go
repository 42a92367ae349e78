package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Cache  CacheConfig  `yaml:"cache"`
	Pages  PagesConfig  `yaml:"pages"`
	Log    LogConfig    `yaml:"log"`
	Output OutputConfig `yaml:"output"`
}

type CacheConfig struct {
	Path string `yaml:"path"` // SQLite file of the player cache
}

type PagesConfig struct {
	Dir string `yaml:"dir"` // Directory of the saved player registry pages
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

type OutputConfig struct {
	Indent bool `yaml:"indent"`
}

func Default() *Config {
	return &Config{
		Cache: CacheConfig{Path: "players.db"},
		Pages: PagesConfig{Dir: "pages"},
		Log:   LogConfig{Level: "info", Format: "text"},
		Output: OutputConfig{
			Indent: true,
		},
	}
}

// Loads the config file at the given path on top of the defaults.
// An empty path only applies the defaults. The environment
// overrides the file in both cases.
func Load(configPath string) (*Config, error) {
	config := Default()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	config.applyEnv()

	return config, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("FASTIMPORT_CACHE"); v != "" {
		c.Cache.Path = v
	}
	if v := os.Getenv("FASTIMPORT_PAGES"); v != "" {
		c.Pages.Dir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
}
