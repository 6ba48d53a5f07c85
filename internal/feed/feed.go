// Package feed serves scraped news items as the JSON feed consumed by the board.
package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/newsboard/internal/news"
	"github.com/ziadkadry99/newsboard/internal/scraper"
)

// Scraper produces the items for one feed request.
type Scraper interface {
	Scrape(ctx context.Context, opts scraper.Options) ([]news.Item, error)
}

// Handler serves GET /noticias.
type Handler struct {
	scraper  Scraper
	defaults scraper.Options
	logger   *zap.Logger
}

// NewHandler returns a Handler whose query parameters override defaults.
func NewHandler(s Scraper, defaults scraper.Options, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{scraper: s, defaults: defaults, logger: logger}
}

// RegisterRoutes mounts the feed endpoint onto the given router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/noticias", h.handleNoticias)
}

// OptionsFromQuery applies the limit, headless, timeout, column_id and url
// parameters on top of defaults. Unparseable integers keep the default.
func OptionsFromQuery(q map[string][]string, defaults scraper.Options) scraper.Options {
	opts := defaults
	get := func(key string) string {
		if v := q[key]; len(v) > 0 {
			return v[0]
		}
		return ""
	}

	if n, err := strconv.Atoi(get("limit")); err == nil {
		opts.Limit = n
	}
	if v := get("headless"); v != "" {
		opts.Headless = strings.ToLower(v) == "true"
	}
	if n, err := strconv.Atoi(get("timeout")); err == nil && n > 0 {
		opts.Timeout = time.Duration(n) * time.Second
	}
	if v := get("column_id"); v != "" {
		opts.ColumnID = v
	}
	if v := get("url"); v != "" {
		opts.URL = v
	}
	return opts
}

func (h *Handler) handleNoticias(w http.ResponseWriter, r *http.Request) {
	opts := OptionsFromQuery(r.URL.Query(), h.defaults)

	start := time.Now()
	items, err := h.scraper.Scrape(r.Context(), opts)
	if err != nil {
		h.logger.Error("scrape failed", zap.String("url", opts.URL), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if items == nil {
		items = []news.Item{}
	}

	h.logger.Info("scrape finished",
		zap.String("url", opts.URL),
		zap.String("column", opts.ColumnID),
		zap.Int("items", len(items)),
		zap.Duration("took", time.Since(start)))
	writeJSON(w, http.StatusOK, items)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
