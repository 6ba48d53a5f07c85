package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/newsboard/internal/history"
	"github.com/ziadkadry99/newsboard/internal/news"
	"github.com/ziadkadry99/newsboard/internal/output"
)

var (
	historyLimit  int
	historyStatus string
	historyPrune  time.Duration
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded board refreshes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		store := history.NewStore(database)
		ctx := cmd.Context()

		if historyPrune > 0 {
			n, err := store.DeleteBefore(ctx, time.Now().Add(-historyPrune))
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Pruned %d runs older than %s\n", n, historyPrune)
		}

		runs, err := store.Query(ctx, history.QueryFilter{
			Status: news.Status(historyStatus),
			Limit:  historyLimit,
		})
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(os.Stderr, "No refreshes recorded.")
			return nil
		}

		tbl := output.NewTable(os.Stdout, []string{"Started", "Status", "Items", "HTTP", "Took", "Error"})
		for _, r := range runs {
			httpStatus := ""
			if r.HTTPStatus != 0 {
				httpStatus = strconv.Itoa(r.HTTPStatus)
			}
			tbl.AddRow(
				r.StartedAt.Local().Format(time.DateTime),
				string(r.Status),
				strconv.Itoa(r.ItemCount),
				httpStatus,
				r.Duration().String(),
				r.Error,
			)
		}
		return tbl.Render()
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Number of runs to show")
	historyCmd.Flags().StringVar(&historyStatus, "status", "", "Only show runs with this status (idle, empty, error)")
	historyCmd.Flags().DurationVar(&historyPrune, "prune", 0, "Delete runs older than this before listing")
	rootCmd.AddCommand(historyCmd)
}
