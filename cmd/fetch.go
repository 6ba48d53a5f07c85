package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/newsboard/internal/board"
	"github.com/ziadkadry99/newsboard/internal/news"
	"github.com/ziadkadry99/newsboard/internal/output"
)

var (
	fetchLimit    int
	fetchHTML     bool
	fetchEndpoint string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the feed once and print the cards",
	Long:  `Runs a single refresh against the feed endpoint and prints the resulting cards as a table, or the full card page with --html.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		endpoint := cfg.Page.Endpoint
		if fetchEndpoint != "" {
			endpoint = fetchEndpoint
		}

		client := news.NewClient(endpoint, time.Duration(cfg.Page.TimeoutSeconds)*time.Second)
		controller := board.NewController(client, board.New(), logger)
		status := controller.Refresh(cmd.Context(), news.Query{Limit: fetchLimit})
		view := controller.Board().Snapshot()

		if fetchHTML {
			if err := board.Render(os.Stdout, board.PageData{View: view, Limit: fetchLimit}); err != nil {
				return fmt.Errorf("rendering page: %w", err)
			}
		} else {
			output.Status(os.Stderr, view.Status, view.Message)
			if len(view.Cards) > 0 {
				tbl := output.NewTable(os.Stdout, []string{"Badge", "Title", "Date", "Source"})
				for _, c := range view.Cards {
					tbl.AddRow(c.Badge, c.Title, c.Date, c.Source)
				}
				if err := tbl.Render(); err != nil {
					return err
				}
			}
		}

		if status == news.StatusError {
			return fmt.Errorf("%s", view.Message)
		}
		return nil
	},
}

func init() {
	fetchCmd.Flags().IntVar(&fetchLimit, "limit", 0, "Maximum number of cards to request (0 = no limit)")
	fetchCmd.Flags().BoolVar(&fetchHTML, "html", false, "Print the rendered card page instead of a table")
	fetchCmd.Flags().StringVar(&fetchEndpoint, "endpoint", "", "Feed endpoint (overrides page.endpoint)")
	rootCmd.AddCommand(fetchCmd)
}
