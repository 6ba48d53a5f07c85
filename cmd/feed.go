package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/newsboard/internal/feed"
	"github.com/ziadkadry99/newsboard/internal/scraper"
	"github.com/ziadkadry99/newsboard/internal/server"
)

var (
	feedPort       int
	feedControlURL string
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Serve the /noticias JSON feed scraped from the portal",
	Long: `Starts the feed service. Each GET /noticias launches a headless browser,
reads the configured column of the portal home page and returns the cards,
enriched with subtitle and publication date, as a JSON array.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Feed.Port = feedPort
		}

		launcher := scraper.RodLauncher{Bin: cfg.Feed.BrowserBin, ControlURL: feedControlURL}
		s := scraper.New(launcher, cfg.Feed.EnrichConcurrency, logger)

		// a scrape opens one page per article and can outlast any fixed write timeout
		srv := server.New(server.Config{
			Name:         "feed",
			Port:         cfg.Feed.Port,
			AllowAll:     true,
			WriteTimeout: -1,
		}, logger)
		feed.NewHandler(s, scrapeDefaults(cfg.Feed), logger).RegisterRoutes(srv.Router())

		logger.Info("newsboard feed starting",
			zap.String("version", Version),
			zap.Int("port", cfg.Feed.Port),
			zap.String("url", cfg.Feed.URL),
			zap.String("column", cfg.Feed.ColumnID))
		return runUntilSignal(srv)
	},
}

func init() {
	feedCmd.Flags().IntVar(&feedPort, "port", 5000, "Port to listen on")
	feedCmd.Flags().StringVar(&feedControlURL, "control-url", "", "DevTools URL of an already running Chrome")
	rootCmd.AddCommand(feedCmd)
}
