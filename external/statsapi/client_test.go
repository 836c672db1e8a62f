package statsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/voetbalpool/voetbalpool/internal/domain/scoring"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(ClientConfig{
		BaseURL: server.URL,
		Token:   "secret-token",
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client, server
}

func TestNewClient_RequiresToken(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(ClientConfig{BaseURL: "https://example.org"}); err == nil {
		t.Fatal("expected missing token error")
	}
}

func TestPlayerGoals_MapsAndDropsUndatedEvents(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/players/gimenez-9/goals") {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("api_token") != "secret-token" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"data": [
			{"date": "2026-09-12", "minute": 45, "type": "penalty", "competition": "Eredivisie"},
			{"date": "2026-10-01", "minute": 118, "type": "normal", "competition": "KNVB Beker"},
			{"date": "", "minute": 10, "type": "normal", "competition": "Eredivisie"},
			{"date": "2026-11-05", "minute": 90, "type": "own-goal", "competition": "Eredivisie"}
		]}`))
	}))

	events, err := client.PlayerGoals(context.Background(), "gimenez-9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(events) != 3 {
		t.Fatalf("expected undated event dropped, got %d events", len(events))
	}
	if events[0].Type != scoring.GoalPenalty {
		t.Fatalf("expected penalty type, got %s", events[0].Type)
	}
	if events[2].Type != scoring.GoalOwnGoal {
		t.Fatalf("expected own goal mapped, got %s", events[2].Type)
	}
}

func TestTeamCupProgress_MapsCategories(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [
			{"category": "domestic", "milestone": "runner_up"},
			{"category": "uefa", "competition": "champions_league", "milestone": "winner"},
			{"category": "uefa", "competition": "intertoto", "milestone": "winner"}
		]}`))
	}))

	progress, err := client.TeamCupProgress(context.Background(), "psv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(progress) != 2 {
		t.Fatalf("expected unknown competition dropped, got %d records", len(progress))
	}
	if progress[0].Category != scoring.CupDomestic || progress[0].Milestone != scoring.MilestoneRunnerUp {
		t.Fatalf("unexpected domestic record %+v", progress[0])
	}
	if progress[1].Competition != scoring.ChampionsLeague {
		t.Fatalf("unexpected uefa record %+v", progress[1])
	}
}

func TestDoJSON_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"data": []}`))
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(ClientConfig{
		BaseURL:    server.URL,
		Token:      "secret-token",
		Timeout:    5 * time.Second,
		MaxRetries: 2,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := client.PlayerGoals(context.Background(), "x"); err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestRedactToken(t *testing.T) {
	t.Parallel()

	in := `error at https://api.example/v1/players/x/goals?api_token=secret-token&x=1`
	out := redactToken(in)
	if strings.Contains(out, "secret-token") {
		t.Fatalf("token leaked: %s", out)
	}
	if !strings.Contains(out, "api_token=***") {
		t.Fatalf("expected redaction marker, got %s", out)
	}
}
