// Package httpcache provides an http.RoundTripper that persists
// request/response pairs in the store, so repeated fetches of the same
// URL are served without a network round trip, also across restarts.
package httpcache

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/angas/strompris-go/store"
)

type Transport struct {
	store  *store.Store
	next   http.RoundTripper
	logger *slog.Logger
}

func New(s *store.Store, next http.RoundTripper) *Transport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &Transport{
		store:  s,
		next:   next,
		logger: slog.Default().With(slog.String("module", "httpcache")),
	}
}

// RoundTrip serves GET requests from the store when the exact URL has
// been fetched before, and stores successful responses otherwise.
// Store failures degrade to direct network calls, never to a fetch error.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet {
		return t.next.RoundTrip(req)
	}

	url := req.URL.String()

	cached, ok, err := t.store.GetCachedResponse(req.Context(), url)
	if err != nil {
		t.logger.Warn("cache lookup failed, falling back to network",
			slog.String("url", url), slog.Any("error", err))
	} else if ok {
		return cachedResponse(req, cached), nil
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	// Only successful responses are worth keeping, caching a transient
	// upstream failure would make it permanent.
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp, nil
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read response body for caching: %w", err)
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))

	err = t.store.SaveCachedResponse(req.Context(), store.CachedResponse{
		URL:         url,
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
		FetchedAt:   time.Now(),
	})
	if err != nil {
		t.logger.Warn("cache write failed, response served uncached",
			slog.String("url", url), slog.Any("error", err))
	}

	return resp, nil
}

func cachedResponse(req *http.Request, cached store.CachedResponse) *http.Response {
	header := make(http.Header)
	if cached.ContentType != "" {
		header.Set("Content-Type", cached.ContentType)
	}
	return &http.Response{
		Status:        http.StatusText(cached.Status),
		StatusCode:    cached.Status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(cached.Body)),
		ContentLength: int64(len(cached.Body)),
		Request:       req,
	}
}
