// Package ingest turns external content sources into pagination items.
package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/Sternrassler/site-paginate/pkg/pagination"
	"github.com/mmcdole/gofeed"
)

// FetchTimeout bounds a feed download.
const FetchTimeout = 30 * time.Second

// ErrMissingID is returned for feed entries with neither GUID nor link.
var ErrMissingID = errors.New("feed entry has no guid or link")

// Control characters that XML does not allow, except tab, LF and CR.
var invalidControlChars = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`)

// FromFeed parses an RSS, Atom or JSON feed and returns its entries as
// items in feed order.
func FromFeed(r io.Reader) ([]pagination.Item, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}
	body = invalidControlChars.ReplaceAll(body, nil)

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return feedItems(feed)
}

// FetchOptions controls feed downloads.
type FetchOptions struct {
	// Client is the HTTP client. Nil uses a client with FetchTimeout.
	Client *http.Client

	// Retry controls retries of server, rate limit and network errors.
	Retry RetryConfig
}

// FetchFeed downloads a feed with DefaultRetryConfig and parses it with
// FromFeed. A nil client uses a client with FetchTimeout.
func FetchFeed(ctx context.Context, client *http.Client, url string) ([]pagination.Item, error) {
	return Fetch(ctx, url, FetchOptions{Client: client, Retry: DefaultRetryConfig()})
}

// Fetch downloads a feed and parses it with FromFeed.
func Fetch(ctx context.Context, url string, opts FetchOptions) ([]pagination.Item, error) {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: FetchTimeout}
	}

	var body []byte
	err := retryWithBackoff(ctx, opts.Retry, func() error {
		var err error
		body, err = download(ctx, client, url)
		return err
	})
	if err != nil {
		return nil, err
	}
	return FromFeed(bytes.NewReader(body))
}

func download(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create feed request: %w", err)
	}
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/feed+json, application/xml;q=0.9, */*;q=0.8")

	resp, err := client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &FetchError{URL: url, Class: ErrorClassNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		sample, _ := io.ReadAll(io.LimitReader(resp.Body, 500))
		return nil, &FetchError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Class:      classifyStatus(resp.StatusCode),
			Body:       string(sample),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Class: ErrorClassNetwork, Err: err}
	}
	return body, nil
}

func feedItems(feed *gofeed.Feed) ([]pagination.Item, error) {
	items := make([]pagination.Item, 0, len(feed.Items))
	for i, entry := range feed.Items {
		id := entry.GUID
		if id == "" {
			id = entry.Link
		}
		if id == "" {
			return nil, fmt.Errorf("entry %d (%q): %w", i, entry.Title, ErrMissingID)
		}

		data := map[string]any{}
		if entry.Link != "" {
			data["link"] = entry.Link
		}
		if published := entry.PublishedParsed; published != nil {
			data["date"] = published.UTC().Format(time.RFC3339)
		} else if updated := entry.UpdatedParsed; updated != nil {
			data["date"] = updated.UTC().Format(time.RFC3339)
		}

		items = append(items, pagination.Item{
			ID:         id,
			Title:      entry.Title,
			Categories: entry.Categories,
			Data:       data,
		})
	}
	return items, nil
}
