package history

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ziadkadry99/newsboard/internal/db"
	"github.com/ziadkadry99/newsboard/internal/news"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestLogAndGetByID(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	started := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	run := Run{
		ID:         "run-1",
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
		Endpoint:   "http://localhost:5000/noticias",
		Status:     news.StatusError,
		HTTPStatus: 500,
		Error:      "HTTP 500",
	}
	if err := store.Log(ctx, run); err != nil {
		t.Fatalf("Log: %v", err)
	}

	got, err := store.GetByID(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != news.StatusError {
		t.Errorf("Status = %q, want %q", got.Status, news.StatusError)
	}
	if got.HTTPStatus != 500 {
		t.Errorf("HTTPStatus = %d, want 500", got.HTTPStatus)
	}
	if got.Error != "HTTP 500" {
		t.Errorf("Error = %q, want %q", got.Error, "HTTP 500")
	}
	if !got.StartedAt.Equal(started) {
		t.Errorf("StartedAt = %v, want %v", got.StartedAt, started)
	}
	if got.Duration() != 3*time.Second {
		t.Errorf("Duration = %v, want 3s", got.Duration())
	}
}

func TestLogKeepsSubSecondPrecision(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	started := time.Date(2025, 3, 1, 10, 0, 0, 900_000_000, time.UTC)
	run := Run{
		ID:         "fast",
		StartedAt:  started,
		FinishedAt: started.Add(400 * time.Millisecond),
		Endpoint:   "http://x",
		Status:     news.StatusIdle,
		ItemCount:  2,
	}
	if err := store.Log(ctx, run); err != nil {
		t.Fatalf("Log: %v", err)
	}

	got, err := store.GetByID(ctx, "fast")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.StartedAt.Equal(started) {
		t.Errorf("StartedAt = %v, want %v", got.StartedAt, started)
	}
	if got.Duration() != run.Duration() {
		t.Errorf("Duration = %v, want %v", got.Duration(), run.Duration())
	}
}

func TestQueryOrdersWithinSameSecond(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	// logged out of order so rowid cannot decide
	for _, r := range []Run{
		{ID: "late", StartedAt: base.Add(500 * time.Millisecond)},
		{ID: "early", StartedAt: base},
		{ID: "mid", StartedAt: base.Add(50 * time.Millisecond)},
	} {
		r.Endpoint = "http://x"
		r.Status = news.StatusIdle
		if err := store.Log(ctx, r); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	runs, err := store.Query(ctx, QueryFilter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(runs) != 3 || runs[0].ID != "late" || runs[1].ID != "mid" || runs[2].ID != "early" {
		t.Errorf("unexpected order: %+v", runs)
	}

	since := base.Add(10 * time.Millisecond)
	recent, _ := store.Query(ctx, QueryFilter{Since: &since})
	if len(recent) != 2 {
		t.Errorf("expected 2 runs since %v, got %d", since, len(recent))
	}

	n, err := store.DeleteBefore(ctx, base.Add(100*time.Millisecond))
	if err != nil {
		t.Fatalf("DeleteBefore: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted %d, want 2", n)
	}
}

func TestLogGeneratesUUID(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	if err := store.Log(ctx, Run{Endpoint: "http://x", Status: news.StatusEmpty}); err != nil {
		t.Fatalf("Log: %v", err)
	}

	runs, err := store.Query(ctx, QueryFilter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if len(runs[0].ID) != 36 {
		t.Errorf("expected UUID id, got %q", runs[0].ID)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	store := setupStore(t)
	if _, err := store.GetByID(context.Background(), "missing"); err == nil {
		t.Error("expected error for missing run")
	}
}

func TestQueryFilters(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, st := range []news.Status{news.StatusIdle, news.StatusEmpty, news.StatusIdle, news.StatusError} {
		err := store.Log(ctx, Run{
			StartedAt: base.Add(time.Duration(i) * time.Hour),
			Endpoint:  "http://x",
			Status:    st,
			ItemCount: i,
		})
		if err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	idle, err := store.Query(ctx, QueryFilter{Status: news.StatusIdle})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(idle) != 2 {
		t.Errorf("expected 2 idle runs, got %d", len(idle))
	}

	all, _ := store.Query(ctx, QueryFilter{})
	if len(all) != 4 || all[0].Status != news.StatusError {
		t.Errorf("expected newest first, got %+v", all)
	}

	since := base.Add(2 * time.Hour)
	recent, _ := store.Query(ctx, QueryFilter{Since: &since})
	if len(recent) != 2 {
		t.Errorf("expected 2 runs since %v, got %d", since, len(recent))
	}

	page, _ := store.Query(ctx, QueryFilter{Limit: 1, Offset: 1})
	if len(page) != 1 || page[0].ItemCount != 2 {
		t.Errorf("unexpected page: %+v", page)
	}

	skipped, _ := store.Query(ctx, QueryFilter{Offset: 3})
	if len(skipped) != 1 {
		t.Errorf("expected 1 run after offset 3, got %d", len(skipped))
	}
}

func TestDeleteBefore(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	old := time.Now().Add(-48 * time.Hour)
	store.Log(ctx, Run{StartedAt: old, Endpoint: "http://x", Status: news.StatusIdle})
	store.Log(ctx, Run{Endpoint: "http://x", Status: news.StatusIdle})

	n, err := store.DeleteBefore(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteBefore: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted %d, want 1", n)
	}
}

func TestRoutes(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	store.Log(ctx, Run{ID: "abc", Endpoint: "http://x", Status: news.StatusEmpty})

	r := chi.NewRouter()
	RegisterRoutes(r, store)

	req := httptest.NewRequest(http.MethodGet, "/api/history?status=empty", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var runs []Run
	if err := json.NewDecoder(w.Body).Decode(&runs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != "abc" {
		t.Errorf("unexpected runs: %+v", runs)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/history/abc", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/history/nope", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/history?status=error", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if body := w.Body.String(); body != "[]\n" {
		t.Errorf("expected empty JSON array, got %q", body)
	}
}
