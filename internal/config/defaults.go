package config

const (
	DefaultFeedURL      = "https://www.globo.com/"
	DefaultColumnID     = "column-jornalismo"
	DefaultFeedPort     = 5000
	DefaultPagePort     = 8080
	DefaultFeedTimeout  = 20
	DefaultArticleWait  = 8
	DefaultEnrichPages  = 4
	DefaultPageEndpoint = "http://localhost:5000/noticias"
)

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DataDir: ".newsboard",
		Page: PageConfig{
			Port:     DefaultPagePort,
			Endpoint: DefaultPageEndpoint,
			History:  true,
		},
		Feed: FeedConfig{
			Port:               DefaultFeedPort,
			URL:                DefaultFeedURL,
			ColumnID:           DefaultColumnID,
			TimeoutSeconds:     DefaultFeedTimeout,
			ArticleWaitSeconds: DefaultArticleWait,
			Headless:           true,
			EnrichConcurrency:  DefaultEnrichPages,
		},
	}
}
