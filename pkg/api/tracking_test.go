package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func TestListBetsFilters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tracking/bets" {
			t.Errorf("Expected path /api/tracking/bets, got %s", r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("status") != "pending" {
			t.Errorf("Expected status=pending, got %q", query.Get("status"))
		}
		if query.Get("sport") != "nba" {
			t.Errorf("Expected sport=nba, got %q", query.Get("sport"))
		}
		json.NewEncoder(w).Encode([]TrackedBet{{ID: "b1", Status: BetStatusPending}})
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	bets, err := client.ListBets(context.Background(), "pending", "nba")
	if err != nil {
		t.Fatalf("ListBets failed: %v", err)
	}
	if len(bets) != 1 || bets[0].ID != "b1" {
		t.Errorf("Wrong bets: %+v", bets)
	}
}

func TestSettleBet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/tracking/bets/b42/settle" {
			t.Errorf("Expected settle path, got %s", r.URL.Path)
		}

		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["result"] != BetResultWin {
			t.Errorf("Expected result=win, got %q", body["result"])
		}

		json.NewEncoder(w).Encode(TrackedBet{
			ID:         "b42",
			Status:     BetStatusSettled,
			Result:     BetResultWin,
			ProfitLoss: decimal.NewFromFloat(45.45),
		})
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	bet, err := client.SettleBet(context.Background(), "b42", BetResultWin)
	if err != nil {
		t.Fatalf("SettleBet failed: %v", err)
	}
	if bet.Result != BetResultWin {
		t.Errorf("Expected win, got %q", bet.Result)
	}
}

func TestLeaderboardParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("sort_by") != "roi" {
			t.Errorf("Expected sort_by=roi, got %q", query.Get("sort_by"))
		}
		if query.Get("limit") != "10" {
			t.Errorf("Expected limit=10, got %q", query.Get("limit"))
		}
		json.NewEncoder(w).Encode([]LeaderboardEntry{{Rank: 1, Username: "sharp"}})
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	entries, err := client.Leaderboard(context.Background(), "roi", 10)
	if err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Rank != 1 {
		t.Errorf("Wrong leaderboard: %+v", entries)
	}
}
