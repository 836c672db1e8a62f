package htmlfeed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/voetbalpool/voetbalpool/internal/platform/cache"
	"github.com/voetbalpool/voetbalpool/internal/platform/resilience"
)

func TestClient_FetchFollowsRedirects(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/stand", http.StatusFound)
	})
	mux.HandleFunc("/stand", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(standingsHTML))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(ClientConfig{Timeout: 5 * time.Second})

	doc, err := client.Fetch(context.Background(), server.URL+"/old")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := doc.RecognizedTables(); len(got) != 1 || got[0].Shape != ShapeStandings {
		t.Fatalf("expected one standings table, got %+v", doc.Tables)
	}
}

func TestClient_FetchNonOKStatusIsError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{Timeout: 5 * time.Second})

	if _, err := client.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestClient_CircuitOpensAfterRepeatedFailures(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		Timeout: 5 * time.Second,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := client.Fetch(ctx, server.URL); err == nil {
			t.Fatalf("fetch %d: expected failure", i)
		}
	}

	_, err := client.Fetch(ctx, server.URL)
	if !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected open circuit, got %v", err)
	}
}

func TestClient_CacheAvoidsSecondFetch(t *testing.T) {
	t.Parallel()

	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.Write([]byte(standingsHTML))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		Timeout: 5 * time.Second,
		Cache:   cache.NewStore(time.Minute),
	})

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := client.Fetch(ctx, server.URL); err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
	}

	if hits != 1 {
		t.Fatalf("expected one upstream hit, got %d", hits)
	}
}
