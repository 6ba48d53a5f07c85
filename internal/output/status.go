package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/ziadkadry99/newsboard/internal/news"
)

// Status prints a board status line, colored by state.
func Status(w io.Writer, s news.Status, message string) {
	if message == "" {
		return
	}
	switch s {
	case news.StatusError:
		color.New(color.FgRed).Fprintf(w, "✗ %s\n", message)
	case news.StatusEmpty:
		color.New(color.FgYellow).Fprintf(w, "⚠ %s\n", message)
	case news.StatusLoading:
		color.New(color.Faint).Fprintf(w, "%s\n", message)
	default:
		fmt.Fprintln(w, message)
	}
}
