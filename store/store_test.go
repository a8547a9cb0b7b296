package store

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestCachedResponseRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	fetchedAt := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	saved := CachedResponse{
		URL:         "https://example.org/2024/06-01_NO1.json",
		Status:      200,
		ContentType: "application/json",
		Body:        []byte(`[{"NOK_per_kWh":1.0}]`),
		FetchedAt:   fetchedAt,
	}
	if err := s.SaveCachedResponse(ctx, saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok, err := s.GetCachedResponse(ctx, saved.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if got.Status != saved.Status || got.ContentType != saved.ContentType {
		t.Errorf("metadata mismatch: %+v", got)
	}
	if string(got.Body) != string(saved.Body) {
		t.Errorf("body mismatch: %q", got.Body)
	}
	if !got.FetchedAt.Equal(fetchedAt) {
		t.Errorf("fetched_at mismatch: %v", got.FetchedAt)
	}
}

func TestCachedResponseMiss(t *testing.T) {
	s := newTestStore(t)

	_, ok, err := s.GetCachedResponse(context.Background(), "https://example.org/never-fetched")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Error("expected a cache miss")
	}
}

func TestSaveCachedResponseOverwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	url := "https://example.org/2024/06-01_NO1.json"
	for _, body := range []string{"first", "second"} {
		err := s.SaveCachedResponse(ctx, CachedResponse{
			URL: url, Status: 200, Body: []byte(body), FetchedAt: time.Now(),
		})
		if err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	got, ok, err := s.GetCachedResponse(ctx, url)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if string(got.Body) != "second" {
		t.Errorf("expected last write to win, got %q", got.Body)
	}

	count, err := s.CountCachedResponses(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 row, got %d", count)
	}
}

func TestPurgeCachedResponses(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	old := CachedResponse{
		URL: "https://example.org/old", Status: 200, Body: []byte("x"),
		FetchedAt: time.Now().Add(-40 * 24 * time.Hour),
	}
	fresh := CachedResponse{
		URL: "https://example.org/fresh", Status: 200, Body: []byte("y"),
		FetchedAt: time.Now(),
	}
	for _, r := range []CachedResponse{old, fresh} {
		if err := s.SaveCachedResponse(ctx, r); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	// Retention below one keeps everything
	if err := s.PurgeCachedResponses(ctx, 0); err != nil {
		t.Fatalf("purge: %v", err)
	}
	if count, _ := s.CountCachedResponses(ctx); count != 2 {
		t.Errorf("expected 2 rows after no-op purge, got %d", count)
	}

	if err := s.PurgeCachedResponses(ctx, 30); err != nil {
		t.Fatalf("purge: %v", err)
	}
	if _, ok, _ := s.GetCachedResponse(ctx, old.URL); ok {
		t.Error("expected the old entry to be purged")
	}
	if _, ok, _ := s.GetCachedResponse(ctx, fresh.URL); !ok {
		t.Error("expected the fresh entry to survive")
	}
}

func TestLogEntries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := s.SaveLogEntry(ctx, LogEntryRow{
			Timestamp: time.Now(),
			Level:     int(slog.LevelInfo),
			Message:   "message",
			Attrs:     `[{"i":"x"}]`,
		})
		if err != nil {
			t.Fatalf("save log entry: %v", err)
		}
	}

	entries, err := s.GetLogEntries(ctx, slog.LevelDebug, 1, 3)
	if err != nil {
		t.Fatalf("get log entries: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("expected page of 3, got %d", len(entries))
	}

	if err := s.PurgeLog(ctx, 2); err != nil {
		t.Fatalf("purge log: %v", err)
	}
	entries, err = s.GetLogEntries(ctx, slog.LevelDebug, 1, 10)
	if err != nil {
		t.Fatalf("get log entries: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries after purge, got %d", len(entries))
	}
}

func TestReopenMigratedStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")

	s1, err := New(context.Background(), path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s1.Close()

	s2, err := New(context.Background(), path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	s2.Close()
}
