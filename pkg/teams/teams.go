// Package teams maps user- and feed-supplied team names onto the
// canonical names the H2H endpoints route on. Matching is
// diacritic-insensitive and tolerant of abbreviations and nicknames.
package teams

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Team is one canonical team entry.
type Team struct {
	Name         string
	Abbreviation string
	League       string
	Aliases      []string
}

// Registry resolves names, nicknames and abbreviations to canonical teams.
type Registry struct {
	mu       sync.RWMutex
	byName   map[string]*Team
	byAbbrev map[string]*Team
	byLeague map[string][]*Team
}

// NewRegistry creates a registry preloaded with the built-in league
// tables.
func NewRegistry() *Registry {
	r := &Registry{
		byName:   make(map[string]*Team),
		byAbbrev: make(map[string]*Team),
		byLeague: make(map[string][]*Team),
	}
	for _, t := range builtinTeams {
		r.Add(t)
	}
	return r
}

// Add indexes a team by normalized name, aliases and abbreviation.
func (r *Registry) Add(t Team) {
	r.mu.Lock()
	defer r.mu.Unlock()

	team := t
	r.byName[Normalize(team.Name)] = &team
	for _, alias := range team.Aliases {
		r.byName[Normalize(alias)] = &team
	}
	if team.Abbreviation != "" {
		r.byAbbrev[strings.ToLower(team.Abbreviation)] = &team
	}
	r.byLeague[team.League] = append(r.byLeague[team.League], &team)
}

// Find resolves a name or abbreviation to a team.
func (r *Registry) Find(name string) (*Team, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if team, ok := r.byAbbrev[strings.ToLower(strings.TrimSpace(name))]; ok {
		return team, true
	}

	normName := Normalize(name)
	if team, ok := r.byName[normName]; ok {
		return team, true
	}

	// Partial match as a last resort.
	for key, team := range r.byName {
		if strings.Contains(key, normName) || strings.Contains(normName, key) {
			return team, true
		}
	}
	return nil, false
}

// Canonical returns the canonical display name for a team, falling back
// to the trimmed input when unknown so H2H lookups still go through.
func (r *Registry) Canonical(name string) string {
	if team, ok := r.Find(name); ok {
		return team.Name
	}
	return strings.TrimSpace(name)
}

// League returns all teams in a league.
func (r *Registry) League(league string) []*Team {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byLeague[league]
}

// Normalize lowercases a name, strips diacritics and collapses spaces.
func Normalize(name string) string {
	name = strings.ToLower(name)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	name, _, _ = transform.String(t, name)

	name = strings.Join(strings.Fields(name), " ")
	return strings.TrimSpace(name)
}

// builtinTeams covers the leagues with H2H coverage. College basketball
// resolves through the fallback path since the field is too large to
// table here.
var builtinTeams = []Team{
	// NBA
	{Name: "Atlanta Hawks", Abbreviation: "ATL", League: "nba", Aliases: []string{"Hawks"}},
	{Name: "Boston Celtics", Abbreviation: "BOS", League: "nba", Aliases: []string{"Celtics"}},
	{Name: "Brooklyn Nets", Abbreviation: "BKN", League: "nba", Aliases: []string{"Nets"}},
	{Name: "Charlotte Hornets", Abbreviation: "CHA", League: "nba", Aliases: []string{"Hornets"}},
	{Name: "Chicago Bulls", Abbreviation: "CHI", League: "nba", Aliases: []string{"Bulls"}},
	{Name: "Cleveland Cavaliers", Abbreviation: "CLE", League: "nba", Aliases: []string{"Cavaliers", "Cavs"}},
	{Name: "Dallas Mavericks", Abbreviation: "DAL", League: "nba", Aliases: []string{"Mavericks", "Mavs"}},
	{Name: "Denver Nuggets", Abbreviation: "DEN", League: "nba", Aliases: []string{"Nuggets"}},
	{Name: "Detroit Pistons", Abbreviation: "DET", League: "nba", Aliases: []string{"Pistons"}},
	{Name: "Golden State Warriors", Abbreviation: "GSW", League: "nba", Aliases: []string{"Warriors"}},
	{Name: "Houston Rockets", Abbreviation: "HOU", League: "nba", Aliases: []string{"Rockets"}},
	{Name: "Indiana Pacers", Abbreviation: "IND", League: "nba", Aliases: []string{"Pacers"}},
	{Name: "LA Clippers", Abbreviation: "LAC", League: "nba", Aliases: []string{"Clippers", "Los Angeles Clippers"}},
	{Name: "Los Angeles Lakers", Abbreviation: "LAL", League: "nba", Aliases: []string{"Lakers"}},
	{Name: "Memphis Grizzlies", Abbreviation: "MEM", League: "nba", Aliases: []string{"Grizzlies"}},
	{Name: "Miami Heat", Abbreviation: "MIA", League: "nba", Aliases: []string{"Heat"}},
	{Name: "Milwaukee Bucks", Abbreviation: "MIL", League: "nba", Aliases: []string{"Bucks"}},
	{Name: "Minnesota Timberwolves", Abbreviation: "MIN", League: "nba", Aliases: []string{"Timberwolves", "Wolves"}},
	{Name: "New Orleans Pelicans", Abbreviation: "NOP", League: "nba", Aliases: []string{"Pelicans"}},
	{Name: "New York Knicks", Abbreviation: "NYK", League: "nba", Aliases: []string{"Knicks"}},
	{Name: "Oklahoma City Thunder", Abbreviation: "OKC", League: "nba", Aliases: []string{"Thunder"}},
	{Name: "Orlando Magic", Abbreviation: "ORL", League: "nba", Aliases: []string{"Magic"}},
	{Name: "Philadelphia 76ers", Abbreviation: "PHI", League: "nba", Aliases: []string{"76ers", "Sixers"}},
	{Name: "Phoenix Suns", Abbreviation: "PHX", League: "nba", Aliases: []string{"Suns"}},
	{Name: "Portland Trail Blazers", Abbreviation: "POR", League: "nba", Aliases: []string{"Trail Blazers", "Blazers"}},
	{Name: "Sacramento Kings", Abbreviation: "SAC", League: "nba", Aliases: []string{"Kings"}},
	{Name: "San Antonio Spurs", Abbreviation: "SAS", League: "nba", Aliases: []string{"Spurs"}},
	{Name: "Toronto Raptors", Abbreviation: "TOR", League: "nba", Aliases: []string{"Raptors"}},
	{Name: "Utah Jazz", Abbreviation: "UTA", League: "nba", Aliases: []string{"Jazz"}},
	{Name: "Washington Wizards", Abbreviation: "WAS", League: "nba", Aliases: []string{"Wizards"}},

	// NFL
	{Name: "Arizona Cardinals", Abbreviation: "ARI", League: "nfl", Aliases: []string{"Cardinals"}},
	{Name: "Atlanta Falcons", Abbreviation: "ATLF", League: "nfl", Aliases: []string{"Falcons"}},
	{Name: "Baltimore Ravens", Abbreviation: "BAL", League: "nfl", Aliases: []string{"Ravens"}},
	{Name: "Buffalo Bills", Abbreviation: "BUF", League: "nfl", Aliases: []string{"Bills"}},
	{Name: "Carolina Panthers", Abbreviation: "CAR", League: "nfl", Aliases: []string{"Panthers"}},
	{Name: "Chicago Bears", Abbreviation: "CHIB", League: "nfl", Aliases: []string{"Bears"}},
	{Name: "Cincinnati Bengals", Abbreviation: "CIN", League: "nfl", Aliases: []string{"Bengals"}},
	{Name: "Cleveland Browns", Abbreviation: "CLEB", League: "nfl", Aliases: []string{"Browns"}},
	{Name: "Dallas Cowboys", Abbreviation: "DALC", League: "nfl", Aliases: []string{"Cowboys"}},
	{Name: "Denver Broncos", Abbreviation: "DENB", League: "nfl", Aliases: []string{"Broncos"}},
	{Name: "Detroit Lions", Abbreviation: "DETL", League: "nfl", Aliases: []string{"Lions"}},
	{Name: "Green Bay Packers", Abbreviation: "GB", League: "nfl", Aliases: []string{"Packers"}},
	{Name: "Houston Texans", Abbreviation: "HOUT", League: "nfl", Aliases: []string{"Texans"}},
	{Name: "Indianapolis Colts", Abbreviation: "INDC", League: "nfl", Aliases: []string{"Colts"}},
	{Name: "Jacksonville Jaguars", Abbreviation: "JAX", League: "nfl", Aliases: []string{"Jaguars", "Jags"}},
	{Name: "Kansas City Chiefs", Abbreviation: "KC", League: "nfl", Aliases: []string{"Chiefs"}},
	{Name: "Las Vegas Raiders", Abbreviation: "LV", League: "nfl", Aliases: []string{"Raiders"}},
	{Name: "Los Angeles Chargers", Abbreviation: "LACH", League: "nfl", Aliases: []string{"Chargers"}},
	{Name: "Los Angeles Rams", Abbreviation: "LAR", League: "nfl", Aliases: []string{"Rams"}},
	{Name: "Miami Dolphins", Abbreviation: "MIAD", League: "nfl", Aliases: []string{"Dolphins"}},
	{Name: "Minnesota Vikings", Abbreviation: "MINV", League: "nfl", Aliases: []string{"Vikings"}},
	{Name: "New England Patriots", Abbreviation: "NE", League: "nfl", Aliases: []string{"Patriots", "Pats"}},
	{Name: "New Orleans Saints", Abbreviation: "NO", League: "nfl", Aliases: []string{"Saints"}},
	{Name: "New York Giants", Abbreviation: "NYG", League: "nfl", Aliases: []string{"Giants"}},
	{Name: "New York Jets", Abbreviation: "NYJ", League: "nfl", Aliases: []string{"Jets"}},
	{Name: "Philadelphia Eagles", Abbreviation: "PHIE", League: "nfl", Aliases: []string{"Eagles"}},
	{Name: "Pittsburgh Steelers", Abbreviation: "PIT", League: "nfl", Aliases: []string{"Steelers"}},
	{Name: "San Francisco 49ers", Abbreviation: "SF", League: "nfl", Aliases: []string{"49ers", "Niners"}},
	{Name: "Seattle Seahawks", Abbreviation: "SEA", League: "nfl", Aliases: []string{"Seahawks"}},
	{Name: "Tampa Bay Buccaneers", Abbreviation: "TB", League: "nfl", Aliases: []string{"Buccaneers", "Bucs"}},
	{Name: "Tennessee Titans", Abbreviation: "TEN", League: "nfl", Aliases: []string{"Titans"}},
	{Name: "Washington Commanders", Abbreviation: "WSH", League: "nfl", Aliases: []string{"Commanders"}},
}
