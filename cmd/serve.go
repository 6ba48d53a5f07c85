package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/newsboard/internal/board"
	"github.com/ziadkadry99/newsboard/internal/history"
	"github.com/ziadkadry99/newsboard/internal/news"
	"github.com/ziadkadry99/newsboard/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the news card page",
	Long:  `Starts the card page server. Each click on the refresh button fetches the configured feed endpoint once and renders the items as cards.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Page.Port = servePort
		}

		client := news.NewClient(cfg.Page.Endpoint, time.Duration(cfg.Page.TimeoutSeconds)*time.Second)

		var opts []board.Option
		var historyStore *history.Store
		if cfg.Page.History {
			database, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer database.Close()
			historyStore = history.NewStore(database)
			opts = append(opts, board.WithRecorder(historyStore))
		}

		controller := board.NewController(client, board.New(), logger, opts...)

		srv := server.New(server.Config{
			Name:     "page",
			Port:     cfg.Page.Port,
			AllowAll: cfg.Page.AllowAll,
		}, logger)
		board.NewPage(controller, logger).RegisterRoutes(srv.Router())
		if historyStore != nil {
			history.RegisterRoutes(srv.Router(), historyStore)
		}

		logger.Info("newsboard page starting",
			zap.String("version", Version),
			zap.Int("port", cfg.Page.Port),
			zap.String("endpoint", cfg.Page.Endpoint),
			zap.Bool("history", cfg.Page.History))
		return runUntilSignal(srv)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}
