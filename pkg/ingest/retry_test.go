package ingest_test

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Sternrassler/site-paginate/internal/testutil"
	"github.com/Sternrassler/site-paginate/pkg/ingest"
)

func fastRetry(attempts int) ingest.RetryConfig {
	return ingest.RetryConfig{
		MaxAttempts:       attempts,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        5 * time.Millisecond,
		BackoffMultiplier: 2.0,
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := ingest.DefaultRetryConfig()

	if cfg.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", cfg.MaxAttempts)
	}
	if cfg.InitialBackoff != 1*time.Second {
		t.Errorf("InitialBackoff = %v, want 1s", cfg.InitialBackoff)
	}
	if cfg.MaxBackoff != 30*time.Second {
		t.Errorf("MaxBackoff = %v, want 30s", cfg.MaxBackoff)
	}
	if cfg.BackoffMultiplier != 2.0 {
		t.Errorf("BackoffMultiplier = %v, want 2.0", cfg.BackoffMultiplier)
	}
}

// flakyHandler fails the first failures requests with resp, then serves body.
func flakyHandler(failures int32, resp testutil.MockFeedResponse, body string) (http.HandlerFunc, *atomic.Int32) {
	var calls atomic.Int32
	return func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= failures {
			testutil.WriteResponse(w, resp)
			return
		}
		testutil.WriteResponse(w, testutil.NewRSSResponse(body))
	}, &calls
}

func TestFetch_RetriesServerErrors(t *testing.T) {
	mock := testutil.NewMockFeedServer()
	defer mock.Close()

	handler, calls := flakyHandler(2, testutil.NewServerErrorResponse(), testutil.RSS(testutil.FeedEntry{GUID: "1"}))
	mock.SetHandler("/feed.xml", handler)

	items, err := ingest.Fetch(context.Background(), mock.URL("/feed.xml"), ingest.FetchOptions{Retry: fastRetry(3)})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("expected 1 item, got %d", len(items))
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestFetch_RetriesRateLimit(t *testing.T) {
	mock := testutil.NewMockFeedServer()
	defer mock.Close()

	handler, calls := flakyHandler(1, testutil.NewRateLimitResponse(), testutil.RSS(testutil.FeedEntry{GUID: "1"}))
	mock.SetHandler("/feed.xml", handler)

	if _, err := ingest.Fetch(context.Background(), mock.URL("/feed.xml"), ingest.FetchOptions{Retry: fastRetry(3)}); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestFetch_NoRetryOnClientError(t *testing.T) {
	mock := testutil.NewMockFeedServer()
	defer mock.Close()

	handler, calls := flakyHandler(5, testutil.MockFeedResponse{StatusCode: http.StatusForbidden}, testutil.RSS())
	mock.SetHandler("/feed.xml", handler)

	_, err := ingest.Fetch(context.Background(), mock.URL("/feed.xml"), ingest.FetchOptions{Retry: fastRetry(3)})
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ingest.ErrRetryExhausted) {
		t.Error("client errors must not be retried")
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestFetch_RetryExhausted(t *testing.T) {
	mock := testutil.NewMockFeedServer()
	defer mock.Close()
	mock.SetResponse("/feed.xml", testutil.NewServerErrorResponse())

	_, err := ingest.Fetch(context.Background(), mock.URL("/feed.xml"), ingest.FetchOptions{Retry: fastRetry(3)})
	if !errors.Is(err, ingest.ErrRetryExhausted) {
		t.Fatalf("expected ErrRetryExhausted, got %v", err)
	}

	var fetchErr *ingest.FetchError
	if !errors.As(err, &fetchErr) || fetchErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("last FetchError not wrapped: %v", err)
	}
	if mock.RequestCount() != 3 {
		t.Errorf("RequestCount = %d, want 3", mock.RequestCount())
	}
}

func TestFetch_CancelledDuringBackoff(t *testing.T) {
	mock := testutil.NewMockFeedServer()
	defer mock.Close()
	mock.SetResponse("/feed.xml", testutil.NewServerErrorResponse())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	retry := ingest.RetryConfig{MaxAttempts: 3, InitialBackoff: time.Second, BackoffMultiplier: 2.0}
	start := time.Now()
	_, err := ingest.Fetch(ctx, mock.URL("/feed.xml"), ingest.FetchOptions{Retry: retry})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Error("backoff did not honor cancellation")
	}
}
