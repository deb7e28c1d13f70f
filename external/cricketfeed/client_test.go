package cricketfeed

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/crickarena/fantasy-cricket/internal/platform/logging"
	"github.com/crickarena/fantasy-cricket/internal/platform/resilience"
)

func TestClient_FetchScorecard(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/matches/m1/scorecard" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("api_token") != "secret" {
			t.Errorf("missing api token")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"player_id":"ind-rohit","runs":45,"fours":3,"sixes":1},
			{"player_id":"ind-bumrah","wickets":2,"maiden_overs":1},
			{"player_id":"","runs":10}
		]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		Token:   "secret",
		Logger:  logging.NewNop(),
	})

	rows, err := client.FetchScorecard(t.Context(), "m1")
	if err != nil {
		t.Fatalf("fetch scorecard failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows after dropping the blank player id, got %d", len(rows))
	}
	if rows[0].PlayerID != "ind-rohit" || rows[0].Runs != 45 || rows[0].Fours != 3 || rows[0].Sixes != 1 {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Wickets != 2 || rows[1].MaidenOvers != 1 {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}
	if rows[0].MatchID != "m1" {
		t.Fatalf("expected match id stamped on rows, got %q", rows[0].MatchID)
	}
}

func TestClient_FetchScorecard_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"data":[{"player_id":"p1","runs":7}]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		Token:      "secret",
		MaxRetries: 2,
		Logger:     logging.NewNop(),
	})

	rows, err := client.FetchScorecard(t.Context(), "m1")
	if err != nil {
		t.Fatalf("fetch scorecard failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Runs != 7 {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected one retry, got %d calls", got)
	}
}

func TestClient_FetchScorecard_NonRetryableStatusFailsFast(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		Token:      "secret",
		MaxRetries: 3,
		Logger:     logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled: false,
		},
	})

	if _, err := client.FetchScorecard(t.Context(), "m1"); err == nil {
		t.Fatal("expected error for 401 response")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected no retries for 401, got %d calls", got)
	}
}
