package config

// Config is the top-level newsboard configuration, corresponding to .newsboard.yml.
type Config struct {
	DataDir string     `yaml:"data_dir" koanf:"data_dir"`
	Page    PageConfig `yaml:"page" koanf:"page"`
	Feed    FeedConfig `yaml:"feed" koanf:"feed"`
}

// PageConfig configures the card page server.
type PageConfig struct {
	Port           int    `yaml:"port" koanf:"port"`
	Endpoint       string `yaml:"endpoint" koanf:"endpoint"`
	TimeoutSeconds int    `yaml:"timeout_seconds" koanf:"timeout_seconds"`
	History        bool   `yaml:"history" koanf:"history"`
	AllowAll       bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// FeedConfig configures the /noticias scraper service.
type FeedConfig struct {
	Port               int    `yaml:"port" koanf:"port"`
	URL                string `yaml:"url" koanf:"url"`
	ColumnID           string `yaml:"column_id" koanf:"column_id"`
	TimeoutSeconds     int    `yaml:"timeout_seconds" koanf:"timeout_seconds"`
	ArticleWaitSeconds int    `yaml:"article_wait_seconds" koanf:"article_wait_seconds"`
	Headless           bool   `yaml:"headless" koanf:"headless"`
	BrowserBin         string `yaml:"browser_bin" koanf:"browser_bin"`
	EnrichConcurrency  int    `yaml:"enrich_concurrency" koanf:"enrich_concurrency"`
}
