package journal

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Kind names the operation that touched a file.
type Kind string

const (
	KindRemux     Kind = "remux"
	KindLanguage  Kind = "language"
	KindRename    Kind = "rename"
	KindExtract   Kind = "extract"
	KindConvert   Kind = "convert"
	KindPurify    Kind = "purify"
	KindTranslate Kind = "translate"
	KindPreview   Kind = "preview"
)

// Status is the outcome of one operation.
type Status string

const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Entry is one journaled file operation.
type Entry struct {
	ID        int64
	RunID     string
	Kind      Kind
	Source    string
	Target    string
	Status    Status
	Detail    string
	CreatedAt time.Time
}

const timeLayout = time.RFC3339Nano

// Record appends an entry. CreatedAt defaults to now and Status to ok.
func (s *Store) Record(ctx context.Context, entry Entry) (Entry, error) {
	if strings.TrimSpace(string(entry.Kind)) == "" {
		return entry, fmt.Errorf("record operation: kind required")
	}
	if entry.Status == "" {
		entry.Status = StatusOK
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}
	res, err := s.exec(ctx,
		`INSERT INTO operations (run_id, kind, source, target, status, detail, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.RunID, string(entry.Kind), entry.Source, entry.Target, string(entry.Status), entry.Detail,
		entry.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return entry, fmt.Errorf("record operation: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		entry.ID = id
	}
	return entry, nil
}

// Recent returns up to limit entries, newest first. A non-positive limit
// returns everything.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT id, run_id, kind, source, target, status, detail, created_at
	          FROM operations ORDER BY id DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry              Entry
			kind, status, when string
		)
		if err := rows.Scan(&entry.ID, &entry.RunID, &kind, &entry.Source, &entry.Target, &status, &entry.Detail, &when); err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		entry.Kind = Kind(kind)
		entry.Status = Status(status)
		if parsed, err := time.Parse(timeLayout, when); err == nil {
			entry.CreatedAt = parsed.Local()
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate operations: %w", err)
	}
	return entries, nil
}

// PruneBefore deletes entries older than cutoff and reports how many went.
func (s *Store) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.exec(ctx, "DELETE FROM operations WHERE created_at < ?", cutoff.UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("prune operations: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
