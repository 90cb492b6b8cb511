package teams

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Boston Celtics", "boston celtics"},
		{"  Boston   Celtics  ", "boston celtics"},
		{"Atlético Madrid", "atletico madrid"},
		{"SÃO PAULO", "sao paulo"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFindByAbbreviation(t *testing.T) {
	r := NewRegistry()

	team, ok := r.Find("BOS")
	if !ok {
		t.Fatal("Expected to find BOS")
	}
	if team.Name != "Boston Celtics" {
		t.Errorf("Wrong team for BOS: %s", team.Name)
	}

	// Case-insensitive.
	if team, ok := r.Find("bos"); !ok || team.Name != "Boston Celtics" {
		t.Errorf("Lowercase abbreviation should resolve, got %v", team)
	}
}

func TestFindByNickname(t *testing.T) {
	r := NewRegistry()

	team, ok := r.Find("Celtics")
	if !ok || team.Name != "Boston Celtics" {
		t.Fatalf("Nickname lookup failed: %v", team)
	}

	team, ok = r.Find("cavaliers")
	if !ok || team.Name != "Cleveland Cavaliers" {
		t.Fatalf("Nickname lookup failed: %v", team)
	}
}

func TestCanonicalFallsBackToInput(t *testing.T) {
	r := NewRegistry()

	if got := r.Canonical("LAL"); got != "Los Angeles Lakers" {
		t.Errorf("Canonical(LAL) = %q", got)
	}

	// Unknown teams pass through trimmed so the lookup still goes out.
	if got := r.Canonical("  Gonzaga Bulldogs "); got != "Gonzaga Bulldogs" {
		t.Errorf("Canonical fallback = %q", got)
	}
}

func TestLeagueRosterSizes(t *testing.T) {
	r := NewRegistry()

	if got := len(r.League("nba")); got != 30 {
		t.Errorf("Expected 30 NBA teams, got %d", got)
	}
	if got := len(r.League("nfl")); got != 32 {
		t.Errorf("Expected 32 NFL teams, got %d", got)
	}
}

func TestAddCustomTeam(t *testing.T) {
	r := NewRegistry()
	r.Add(Team{
		Name:         "São Paulo FC",
		Abbreviation: "SAO",
		League:       "soccer",
		Aliases:      []string{"Tricolor"},
	})

	// Diacritic-free input matches the accented canonical name.
	team, ok := r.Find("Sao Paulo FC")
	if !ok || team.Name != "São Paulo FC" {
		t.Fatalf("Diacritic-insensitive lookup failed: %v", team)
	}

	if team, ok := r.Find("Tricolor"); !ok || team.Name != "São Paulo FC" {
		t.Errorf("Alias lookup failed: %v", team)
	}
}
