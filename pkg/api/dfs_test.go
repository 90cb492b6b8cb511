package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDFSProjections(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/dfs/projections" {
			t.Errorf("Expected path /api/dfs/projections, got %s", r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("sport") != "nba" || query.Get("platform") != PlatformDraftKings {
			t.Errorf("Wrong query: %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode([]DFSProjection{
			{PlayerID: "p1", Name: "Guard A", Salary: 9800, Value: decimal.NewFromFloat(5.2)},
		})
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	projections, err := client.DFSProjections(context.Background(), "nba", PlatformDraftKings, 0)
	if err != nil {
		t.Fatalf("DFSProjections failed: %v", err)
	}
	if len(projections) != 1 || projections[0].Salary != 9800 {
		t.Errorf("Wrong projections: %+v", projections)
	}
}

func TestDeleteLineupCarriesClientID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("Expected DELETE, got %s", r.Method)
		}
		if r.URL.Path != "/api/dfs/lineups/l7" {
			t.Errorf("Expected path /api/dfs/lineups/l7, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("client_id"); got != "c1" {
			t.Errorf("Expected client_id=c1, got %q", got)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	if err := client.DeleteLineup(context.Background(), "l7", "c1"); err != nil {
		t.Fatalf("DeleteLineup failed: %v", err)
	}
}
