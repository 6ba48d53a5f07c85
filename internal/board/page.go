package board

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/newsboard/internal/news"
)

// Page serves the card board over HTTP.
type Page struct {
	controller *Controller
	logger     *zap.Logger
}

// NewPage creates a Page backed by controller.
func NewPage(controller *Controller, logger *zap.Logger) *Page {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Page{controller: controller, logger: logger}
}

// RegisterRoutes mounts the page routes onto the given router.
func (p *Page) RegisterRoutes(r chi.Router) {
	r.Get("/", p.handleIndex)
	r.Post("/refresh", p.handleRefresh)
	r.Get("/api/board", p.handleBoard)
	r.Post("/api/board/refresh", p.handleAPIRefresh)
}

func (p *Page) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := PageData{
		View:  p.controller.Board().Snapshot(),
		Limit: parseLimit(r.URL.Query().Get("limit")),
	}

	var buf bytes.Buffer
	if err := Render(&buf, data); err != nil {
		p.logger.Error("rendering page", zap.Error(err))
		http.Error(w, "rendering page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (p *Page) handleRefresh(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r.FormValue("limit"))
	p.controller.Refresh(r.Context(), news.Query{Limit: limit})

	target := "/"
	if limit > 0 {
		target += "?limit=" + strconv.Itoa(limit)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (p *Page) handleBoard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, p.controller.Board().Snapshot())
}

func (p *Page) handleAPIRefresh(w http.ResponseWriter, r *http.Request) {
	p.controller.Refresh(r.Context(), news.Query{Limit: parseLimit(r.URL.Query().Get("limit"))})
	writeJSON(w, http.StatusOK, p.controller.Board().Snapshot())
}

// parseLimit returns the positive integer in s, or 0.
func parseLimit(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
