package history

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ziadkadry99/newsboard/internal/db"
	"github.com/ziadkadry99/newsboard/internal/news"
)

// timeLayout is fixed-width so stored timestamps sort in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store persists refresh runs.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Log inserts a run. If run.ID is empty a UUID is generated.
func (s *Store) Log(ctx context.Context, run Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = run.StartedAt
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO refresh_runs (
			id, started_at, finished_at, endpoint, status,
			item_count, http_status, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		formatTime(run.StartedAt),
		formatTime(run.FinishedAt),
		run.Endpoint,
		string(run.Status),
		run.ItemCount,
		run.HTTPStatus,
		run.Error,
	)
	if err != nil {
		return fmt.Errorf("inserting refresh run: %w", err)
	}
	return nil
}

// GetByID retrieves a single run.
func (s *Store) GetByID(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, endpoint, status,
			   item_count, http_status, error
		FROM refresh_runs WHERE id = ?`, id)

	return scanInto(row)
}

// QueryFilter controls which runs are returned by Query.
type QueryFilter struct {
	Status news.Status
	Since  *time.Time
	Limit  int
	Offset int
}

// Query returns runs matching the filter, newest first.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Run, error) {
	var (
		clauses []string
		args    []any
	)

	if filter.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.Since != nil {
		clauses = append(clauses, "started_at >= ?")
		args = append(args, formatTime(*filter.Since))
	}

	query := "SELECT id, started_at, finished_at, endpoint, status, item_count, http_status, error FROM refresh_runs"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY started_at DESC, rowid DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	} else if filter.Offset > 0 {
		query += " LIMIT -1"
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying refresh runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanInto(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}

// DeleteBefore removes all runs started before the given time.
// Returns the number of deleted rows.
func (s *Store) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM refresh_runs WHERE started_at < ?",
		formatTime(before),
	)
	if err != nil {
		return 0, fmt.Errorf("deleting old refresh runs: %w", err)
	}
	return res.RowsAffected()
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanInto(sc scanner) (*Run, error) {
	var (
		r                 Run
		status            string
		started, finished string
	)

	err := sc.Scan(
		&r.ID, &started, &finished, &r.Endpoint, &status,
		&r.ItemCount, &r.HTTPStatus, &r.Error,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning refresh run: %w", err)
	}

	r.Status = news.Status(status)
	r.StartedAt = parseTime(started)
	r.FinishedAt = parseTime(finished)
	return &r, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.DateTime, s); err == nil {
		return t
	}
	return time.Time{}
}
