package history

import (
	"time"

	"github.com/ziadkadry99/newsboard/internal/news"
)

// Run is one recorded board refresh.
type Run struct {
	ID         string      `json:"id"`
	StartedAt  time.Time   `json:"started_at"`
	FinishedAt time.Time   `json:"finished_at"`
	Endpoint   string      `json:"endpoint"`
	Status     news.Status `json:"status"`
	ItemCount  int         `json:"item_count"`
	HTTPStatus int         `json:"http_status,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Duration is the wall time the refresh took.
func (r Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
