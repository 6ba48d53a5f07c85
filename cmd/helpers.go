package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/newsboard/internal/config"
	"github.com/ziadkadry99/newsboard/internal/db"
	"github.com/ziadkadry99/newsboard/internal/scraper"
	"github.com/ziadkadry99/newsboard/internal/server"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `newsboard init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// openDatabase opens the history database under the data directory.
func openDatabase(cfg *config.Config) (*db.DB, error) {
	path := filepath.Join(cfg.DataDir, "newsboard.db")
	database, err := db.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	return database, nil
}

// scrapeDefaults converts the feed config into default scrape options.
func scrapeDefaults(cfg config.FeedConfig) scraper.Options {
	return scraper.Options{
		URL:         cfg.URL,
		ColumnID:    cfg.ColumnID,
		Timeout:     time.Duration(cfg.TimeoutSeconds) * time.Second,
		ArticleWait: time.Duration(cfg.ArticleWaitSeconds) * time.Second,
		Headless:    cfg.Headless,
	}
}

// runUntilSignal starts srv and shuts it down on SIGINT or SIGTERM.
func runUntilSignal(srv *server.Server) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}()

	return srv.Start()
}
