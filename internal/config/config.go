package config

import (
	"errors"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultDomain    = "en.wikipedia.org"
	defaultUserAgent = "wikihistories/1.0"
	configPathEnv    = "WIKI_HISTORIES_CONFIG"
	domainEnv        = "WIKI_DOMAIN"
	userAgentEnv     = "WIKI_USER_AGENT"
)

// Configuration validation errors.
var (
	ErrNoTitles          = errors.New("at least one page title is required")
	ErrInvalidFormat     = errors.New("output.format must be 'csv' or 'table'")
	ErrInvalidConcurrent = errors.New("fetch.concurrency must be non-negative")
)

// Config holds high-level settings required across the application.
type Config struct {
	Wiki    WikiConfig    `yaml:"wiki"`
	Fetch   FetchConfig   `yaml:"fetch"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Titles  []string      `yaml:"titles"`
}

// WikiConfig describes which wiki to talk to and how to identify.
type WikiConfig struct {
	Domain     string `yaml:"domain"`
	UserAgent  string `yaml:"userAgent"`
	TimeoutSec int    `yaml:"timeoutSec"`
}

// Timeout resolves the HTTP timeout with a sane floor.
func (w WikiConfig) Timeout() time.Duration {
	if w.TimeoutSec <= 0 {
		return 20 * time.Second
	}
	return time.Duration(w.TimeoutSec) * time.Second
}

// FetchConfig selects what each record carries and how hard to fetch it.
type FetchConfig struct {
	IncludeText        bool `yaml:"includeText"`
	IncludeTalkContent bool `yaml:"includeTalkContent"`
	Concurrency        int  `yaml:"concurrency"`
}

// OutputConfig describes where and how the assembled history is written.
type OutputConfig struct {
	Format string `yaml:"format"`
	Path   string `yaml:"path"` // empty writes to stdout
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg
}

// Validate checks settings the application cannot run without.
func (c Config) Validate() error {
	if len(c.Titles) == 0 {
		return ErrNoTitles
	}
	if c.Output.Format != "csv" && c.Output.Format != "table" {
		return ErrInvalidFormat
	}
	if c.Fetch.Concurrency < 0 {
		return ErrInvalidConcurrent
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(domainEnv); v != "" {
		c.Wiki.Domain = v
	}
	if v := os.Getenv(userAgentEnv); v != "" {
		c.Wiki.UserAgent = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Wiki.Domain != "" {
		base.Wiki.Domain = override.Wiki.Domain
	}
	if override.Wiki.UserAgent != "" {
		base.Wiki.UserAgent = override.Wiki.UserAgent
	}
	if override.Wiki.TimeoutSec > 0 {
		base.Wiki.TimeoutSec = override.Wiki.TimeoutSec
	}

	if override.Fetch.IncludeText {
		base.Fetch.IncludeText = true
	}
	if override.Fetch.IncludeTalkContent {
		base.Fetch.IncludeTalkContent = true
	}
	if override.Fetch.Concurrency > 0 {
		base.Fetch.Concurrency = override.Fetch.Concurrency
	}

	if override.Output.Format != "" {
		base.Output.Format = override.Output.Format
	}
	if override.Output.Path != "" {
		base.Output.Path = override.Output.Path
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if len(override.Titles) > 0 {
		base.Titles = override.Titles
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Wiki: WikiConfig{
			Domain:     defaultDomain,
			UserAgent:  defaultUserAgent,
			TimeoutSec: 20,
		},
		Fetch: FetchConfig{
			IncludeText:        false,
			IncludeTalkContent: false,
			Concurrency:        4,
		},
		Output:  OutputConfig{Format: "csv"},
		Logging: LoggingConfig{Level: "info"},
	}
}
