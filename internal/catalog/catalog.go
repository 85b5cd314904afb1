// Package catalog resolves free-form team and player names to the canonical
// records the upstream API is keyed by.
//
// A Catalog is read-only reference data built once (teams are static, players
// come from the upstream player list or a JSON file) and injected wherever
// lookups are needed, so tests can substitute a fixture catalog.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/albapepper/bballscorer/internal/provider"
)

// ResolutionError reports a name that matched no known team or player.
type ResolutionError struct {
	Kind  string // "team" or "player"
	Query string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("no %s matches %q", e.Kind, e.Query)
}

// Catalog is an immutable team and player lookup service.
type Catalog struct {
	teams   []provider.Team
	players []provider.Player
}

// New builds a catalog over the given records. Slices are copied; catalog
// order is the order given.
func New(teams []provider.Team, players []provider.Player) *Catalog {
	c := &Catalog{
		teams:   make([]provider.Team, len(teams)),
		players: make([]provider.Player, len(players)),
	}
	copy(c.teams, teams)
	copy(c.players, players)
	return c
}

// PlayerLister is the upstream call that lists every player.
type PlayerLister interface {
	GetPlayers(ctx context.Context, season int) ([]provider.Player, error)
}

// Load builds the NBA catalog: static teams plus players read from path when
// it is set, or from the upstream player list otherwise.
func Load(ctx context.Context, lister PlayerLister, season int, path string) (*Catalog, error) {
	if path != "" {
		players, err := readPlayersFile(path)
		if err != nil {
			return nil, err
		}
		return New(NBATeams(), players), nil
	}

	players, err := lister.GetPlayers(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("load players: %w", err)
	}
	return New(NBATeams(), players), nil
}

func readPlayersFile(path string) ([]provider.Player, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read players file: %w", err)
	}
	var players []provider.Player
	if err := json.Unmarshal(data, &players); err != nil {
		return nil, fmt.Errorf("decode players file %s: %w", path, err)
	}
	return players, nil
}

// Teams returns the team list in catalog order.
func (c *Catalog) Teams() []provider.Team {
	out := make([]provider.Team, len(c.teams))
	copy(out, c.teams)
	return out
}

// ActivePlayers returns active players in catalog order.
func (c *Catalog) ActivePlayers() []provider.Player {
	var out []provider.Player
	for _, p := range c.players {
		if p.Active {
			out = append(out, p)
		}
	}
	return out
}

// TeamByID looks a team up by its upstream identifier.
func (c *Catalog) TeamByID(id int) (provider.Team, bool) {
	for _, t := range c.teams {
		if t.ID == id {
			return t, true
		}
	}
	return provider.Team{}, false
}

// TeamByAbbreviation looks a team up by exact (case-insensitive) abbreviation.
func (c *Catalog) TeamByAbbreviation(abbr string) (provider.Team, bool) {
	for _, t := range c.teams {
		if strings.EqualFold(t.Abbreviation, abbr) {
			return t, true
		}
	}
	return provider.Team{}, false
}

// teamRules are tried in order; within a rule the first team in catalog order
// wins. Inputs are already lower-cased and trimmed.
var teamRules = []func(t provider.Team, q string) bool{
	func(t provider.Team, q string) bool { return strings.ToLower(t.Abbreviation) == q },
	func(t provider.Team, q string) bool { return strings.ToLower(t.FullName) == q },
	func(t provider.Team, q string) bool { return strings.ToLower(t.Nickname) == q },
	func(t provider.Team, q string) bool { return strings.ToLower(t.City) == q },
	func(t provider.Team, q string) bool { return strings.Contains(strings.ToLower(t.FullName), q) },
	func(t provider.Team, q string) bool { return strings.Contains(strings.ToLower(t.Nickname), q) },
}

// ResolveTeam maps an abbreviation, full name, nickname, city, or fragment of
// the full name or nickname to a team.
func (c *Catalog) ResolveTeam(query string) (provider.Team, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return provider.Team{}, &ResolutionError{Kind: "team", Query: query}
	}
	for _, rule := range teamRules {
		for _, t := range c.teams {
			if rule(t, q) {
				return t, nil
			}
		}
	}
	return provider.Team{}, &ResolutionError{Kind: "team", Query: query}
}

// FindPlayers returns every player whose full name contains the query
// (case-insensitive), in catalog order.
func (c *Catalog) FindPlayers(query string) []provider.Player {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []provider.Player
	for _, p := range c.players {
		if strings.Contains(strings.ToLower(p.FullName), q) {
			out = append(out, p)
		}
	}
	return out
}

// PlayerMatch is the outcome of resolving a player name.
type PlayerMatch struct {
	Player provider.Player
	// Others holds the remaining candidates when the query was ambiguous.
	Others []provider.Player
}

// Ambiguous reports whether other players also matched the query.
func (m PlayerMatch) Ambiguous() bool {
	return len(m.Others) > 0
}

// ResolvePlayer picks a player for a free-text name. An exact full-name match
// wins outright; otherwise the first substring match in catalog order is
// taken. All other candidates are returned alongside so callers can surface
// the ambiguity instead of silently trusting the pick.
func (c *Catalog) ResolvePlayer(query string) (PlayerMatch, error) {
	candidates := c.FindPlayers(query)
	if len(candidates) == 0 {
		return PlayerMatch{}, &ResolutionError{Kind: "player", Query: query}
	}

	q := strings.TrimSpace(query)
	pick := -1
	for i, p := range candidates {
		if strings.EqualFold(p.FullName, q) {
			pick = i
			break
		}
	}
	if pick < 0 {
		pick = 0
	}

	match := PlayerMatch{Player: candidates[pick]}
	for i, p := range candidates {
		if i != pick {
			match.Others = append(match.Others, p)
		}
	}
	return match, nil
}
