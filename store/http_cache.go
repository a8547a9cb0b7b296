package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// CachedResponse is one stored upstream response, keyed by exact URL.
type CachedResponse struct {
	URL         string
	Status      int
	ContentType string
	Body        []byte
	FetchedAt   time.Time
}

func (s *Store) SaveCachedResponse(ctx context.Context, r CachedResponse) error {
	_, err := s.write.ExecContext(ctx, `
		INSERT INTO http_cache (url, status, content_type, body, fetched_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			status = excluded.status,
			content_type = excluded.content_type,
			body = excluded.body,
			fetched_at = excluded.fetched_at`,
		r.URL,
		r.Status,
		r.ContentType,
		r.Body,
		r.FetchedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving cached response: %w", err)
	}
	return nil
}

// GetCachedResponse returns the stored response for url, or ok=false
// when the URL has never been fetched.
func (s *Store) GetCachedResponse(ctx context.Context, url string) (CachedResponse, bool, error) {
	row := s.read.QueryRowContext(ctx, `SELECT
		url, status, content_type, body, fetched_at
		FROM http_cache
		WHERE url = ?`, url)

	var r CachedResponse
	var fetchedAt string
	err := row.Scan(&r.URL, &r.Status, &r.ContentType, &r.Body, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return CachedResponse{}, false, nil
	}
	if err != nil {
		return CachedResponse{}, false, fmt.Errorf("scanning cached response: %w", err)
	}

	r.FetchedAt, err = time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		return CachedResponse{}, false, fmt.Errorf("parsing fetched_at: %w", err)
	}

	return r, true, nil
}

func (s *Store) CountCachedResponses(ctx context.Context) (int, error) {
	var count int
	err := s.read.QueryRowContext(ctx, `SELECT COUNT(*) FROM http_cache`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting cached responses: %w", err)
	}
	return count, nil
}

// PurgeCachedResponses deletes entries fetched more than retentionDays
// ago. A retention below one keeps everything, since past-day prices
// never change.
func (s *Store) PurgeCachedResponses(ctx context.Context, retentionDays int) error {
	if retentionDays < 1 {
		return nil
	}
	before := time.Now().UTC().Add(-time.Duration(retentionDays) * 24 * time.Hour)
	res, err := s.write.ExecContext(ctx,
		`DELETE FROM http_cache WHERE fetched_at < ?`,
		before.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("error when purging http_cache: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		s.logger.Warn("can't get rows affected by purge", slog.Any("error", err))
	} else {
		s.logger.Debug(fmt.Sprintf("purged %d rows from http_cache", rows))
	}

	return nil
}
