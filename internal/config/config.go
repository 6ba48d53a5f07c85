package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

const envPrefix = "NEWSBOARD_"

// sections are the nested config blocks addressable from the environment.
var sections = []string{"page", "feed"}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (NEWSBOARD_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// NEWSBOARD_PAGE_ENDPOINT -> page.endpoint, NEWSBOARD_DATA_DIR -> data_dir.
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	for _, section := range sections {
		if rest, ok := strings.CutPrefix(key, section+"_"); ok {
			return section + "." + rest
		}
	}
	return key
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Page.Endpoint == "" {
		return fmt.Errorf("page.endpoint is required")
	}
	u, err := url.Parse(c.Page.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid page.endpoint %q: must be an absolute URL", c.Page.Endpoint)
	}
	if err := validPort("page.port", c.Page.Port); err != nil {
		return err
	}
	if c.Page.TimeoutSeconds < 0 {
		return fmt.Errorf("page.timeout_seconds must be non-negative")
	}
	if c.Page.History && c.DataDir == "" {
		return fmt.Errorf("data_dir is required when page.history is enabled")
	}

	if err := validPort("feed.port", c.Feed.Port); err != nil {
		return err
	}
	if c.Feed.URL == "" {
		return fmt.Errorf("feed.url is required")
	}
	if c.Feed.ColumnID == "" {
		return fmt.Errorf("feed.column_id is required")
	}
	if c.Feed.TimeoutSeconds <= 0 {
		return fmt.Errorf("feed.timeout_seconds must be positive")
	}
	if c.Feed.ArticleWaitSeconds < 0 {
		return fmt.Errorf("feed.article_wait_seconds must be non-negative")
	}
	if c.Feed.EnrichConcurrency < 1 {
		return fmt.Errorf("feed.enrich_concurrency must be at least 1")
	}

	return nil
}

func validPort(name string, port int) error {
	if port < 0 || port > 65535 {
		return fmt.Errorf("%s %d out of range", name, port)
	}
	return nil
}
