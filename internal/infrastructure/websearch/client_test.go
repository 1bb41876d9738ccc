package websearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"NewsTrust/internal/retry"
)

func TestSearchBuildsRequestAndDecodes(t *testing.T) {
	t.Parallel()

	since := time.Date(2026, time.August, 13, 0, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Ocp-Apim-Subscription-Key"); got != "test-key" {
			t.Errorf("missing api key header, got %q", got)
		}
		q := r.URL.Query()
		if q.Get("q") != "centrale nucléaire" {
			t.Errorf("unexpected query: %q", q.Get("q"))
		}
		if q.Get("sortBy") != "date" {
			t.Errorf("unexpected sortBy: %q", q.Get("sortBy"))
		}
		if q.Get("since") != strconv.FormatInt(since.Unix(), 10) {
			t.Errorf("unexpected since: %q", q.Get("since"))
		}
		_, _ = w.Write([]byte(`{"value":[
			{"url":"https://www.lefigaro.fr/a","name":"Titre un"},
			{"url":"https://www.liberation.fr/b","name":"Titre deux"}
		]}`))
	}))
	defer server.Close()

	c := New(server.URL, "test-key", time.Second, retry.Config{MaxAttempts: 1}, nil)
	candidates, err := c.Search(context.Background(), "centrale nucléaire", &since)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}

	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	if candidates[0].URL != "https://www.lefigaro.fr/a" || candidates[0].Title != "Titre un" {
		t.Fatalf("unexpected first candidate: %+v", candidates[0])
	}
}

func TestSearchWithoutSinceOmitsParameter(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("since") {
			t.Error("since must be omitted when no lower bound is given")
		}
		_, _ = w.Write([]byte(`{"value":[]}`))
	}))
	defer server.Close()

	c := New(server.URL, "test-key", time.Second, retry.Config{MaxAttempts: 1}, nil)
	candidates, err := c.Search(context.Background(), "titre", nil)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("expected no candidates, got %d", len(candidates))
	}
}

func TestSearchDegradesToEmptyOnUpstreamFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := New(server.URL, "test-key", time.Second, retry.Config{MaxAttempts: 2, Delay: time.Millisecond}, nil)
	candidates, err := c.Search(context.Background(), "titre", nil)
	if err != nil {
		t.Fatalf("upstream failures must not surface as errors, got %v", err)
	}
	if candidates != nil {
		t.Fatalf("expected nil candidates, got %v", candidates)
	}
}

func TestSearchRetriesTransientFailures(t *testing.T) {
	t.Parallel()

	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"value":[{"url":"https://www.lefigaro.fr/a","name":"Titre"}]}`))
	}))
	defer server.Close()

	c := New(server.URL, "test-key", time.Second, retry.Config{MaxAttempts: 2, Delay: time.Millisecond}, nil)
	candidates, err := c.Search(context.Background(), "titre", nil)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate after retry, got %d", len(candidates))
	}
}
