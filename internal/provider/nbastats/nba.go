package nbastats

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/albapepper/bballscorer/internal/config"
	"github.com/albapepper/bballscorer/internal/provider"
)

const (
	leagueNBA         = "00"
	seasonTypeRegular = "Regular Season"
)

// --------------------------------------------------------------------------
// Game logs
// --------------------------------------------------------------------------

// TeamGameLog fetches a team's regular-season game log, most recent first.
func (c *Client) TeamGameLog(ctx context.Context, teamID, season int) ([]provider.GameLogEntry, error) {
	params := url.Values{
		"TeamID":     {strconv.Itoa(teamID)},
		"Season":     {config.SeasonLabel(season)},
		"SeasonType": {seasonTypeRegular},
		"LeagueID":   {leagueNBA},
	}
	return c.gameLog(ctx, "teamgamelog", "TeamGameLog", params)
}

// PlayerGameLog fetches a player's regular-season game log, most recent first.
func (c *Client) PlayerGameLog(ctx context.Context, playerID, season int) ([]provider.GameLogEntry, error) {
	params := url.Values{
		"PlayerID":   {strconv.Itoa(playerID)},
		"Season":     {config.SeasonLabel(season)},
		"SeasonType": {seasonTypeRegular},
		"LeagueID":   {leagueNBA},
	}
	return c.gameLog(ctx, "playergamelog", "PlayerGameLog", params)
}

func (c *Client) gameLog(ctx context.Context, endpoint, setName string, params url.Values) ([]provider.GameLogEntry, error) {
	resp, err := c.get(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}

	t, ok := resp.table(setName)
	if !ok {
		t, ok = resp.table("")
	}
	if !ok || !t.has("GAME_DATE") || !t.has("MATCHUP") {
		return nil, &provider.RetrievalError{Endpoint: endpoint, Err: fmt.Errorf("result set %s missing GAME_DATE/MATCHUP", setName)}
	}

	entries := make([]provider.GameLogEntry, 0, len(t.rows))
	var skipped int
	t.each(func(r row) {
		entry, ok := normalizeGameLogRow(r)
		if !ok {
			skipped++
			return
		}
		entries = append(entries, entry)
	})
	if skipped > 0 {
		c.logger.Warn("skipped malformed game log rows", "endpoint", endpoint, "count", skipped)
	}

	provider.SortByDateDesc(entries)
	return entries, nil
}

func normalizeGameLogRow(r row) (provider.GameLogEntry, bool) {
	date, ok := provider.ParseGameDate(r.str("GAME_DATE"))
	if !ok {
		return provider.GameLogEntry{}, false
	}
	matchup := r.str("MATCHUP")
	team, opponent, venue := provider.ParseMatchup(matchup)
	if abbr := r.str("TEAM_ABBREVIATION"); abbr != "" {
		team = abbr
	}

	return provider.GameLogEntry{
		GameID:   r.str("Game_ID", "GAME_ID"),
		Date:     date,
		Matchup:  matchup,
		TeamAbbr: team,
		Opponent: opponent,
		Venue:    venue,
		Minutes:  r.str("MIN"),
		Stats:    r.stats(),
	}, true
}

// --------------------------------------------------------------------------
// Period box scores
// --------------------------------------------------------------------------

// PlayerPeriodStats fetches one player's box score for a single quarter of a
// game. Returns a RetrievalError wrapping provider.ErrNoRows when the player
// has no line for that period.
func (c *Client) PlayerPeriodStats(ctx context.Context, playerID int, gameID string, period int) (*provider.PeriodStats, error) {
	if period < 1 || period > 4 {
		return nil, fmt.Errorf("period %d out of range 1-4", period)
	}
	params := url.Values{
		"GameID":      {gameID},
		"StartPeriod": {strconv.Itoa(period)},
		"EndPeriod":   {strconv.Itoa(period)},
		"RangeType":   {"1"},
		"StartRange":  {"0"},
		"EndRange":    {"0"},
	}

	resp, err := c.get(ctx, "boxscoretraditionalv2", params)
	if err != nil {
		return nil, err
	}

	t, ok := resp.table("PlayerStats")
	if !ok {
		return nil, &provider.RetrievalError{Endpoint: "boxscoretraditionalv2", Err: provider.ErrNoRows}
	}

	var found *provider.PeriodStats
	t.each(func(r row) {
		if found != nil || r.integer("PLAYER_ID") != playerID {
			return
		}
		found = &provider.PeriodStats{
			GameID:   gameID,
			PlayerID: playerID,
			Period:   period,
			Minutes:  r.str("MIN"),
			Stats:    r.stats(),
		}
	})
	if found == nil {
		return nil, &provider.RetrievalError{Endpoint: "boxscoretraditionalv2", Err: provider.ErrNoRows}
	}
	return found, nil
}

// --------------------------------------------------------------------------
// Player catalog
// --------------------------------------------------------------------------

// GetPlayers fetches every player the league lists up to the given season, in
// upstream order. Active means currently on a roster.
func (c *Client) GetPlayers(ctx context.Context, season int) ([]provider.Player, error) {
	params := url.Values{
		"LeagueID":            {leagueNBA},
		"Season":              {config.SeasonLabel(season)},
		"IsOnlyCurrentSeason": {"0"},
	}
	resp, err := c.get(ctx, "commonallplayers", params)
	if err != nil {
		return nil, err
	}

	t, ok := resp.table("CommonAllPlayers")
	if !ok {
		return nil, &provider.RetrievalError{Endpoint: "commonallplayers", Err: provider.ErrNoRows}
	}

	players := make([]provider.Player, 0, len(t.rows))
	t.each(func(r row) {
		id := r.integer("PERSON_ID")
		name := r.str("DISPLAY_FIRST_LAST")
		if id == 0 || name == "" {
			return
		}
		players = append(players, provider.Player{
			ID:       id,
			FullName: name,
			Active:   r.integer("ROSTERSTATUS") == 1,
		})
	})
	return players, nil
}

// --------------------------------------------------------------------------
// Scoreboard
// --------------------------------------------------------------------------

// Scoreboard returns the games scheduled on the given calendar date.
func (c *Client) Scoreboard(ctx context.Context, date time.Time) ([]provider.ScheduledGame, error) {
	params := url.Values{
		"GameDate":  {date.Format("01/02/2006")},
		"LeagueID":  {leagueNBA},
		"DayOffset": {"0"},
	}
	resp, err := c.get(ctx, "scoreboardv2", params)
	if err != nil {
		return nil, err
	}

	t, ok := resp.table("GameHeader")
	if !ok || !t.has("HOME_TEAM_ID") || !t.has("VISITOR_TEAM_ID") || !t.has("GAME_DATE_EST") {
		return nil, nil
	}

	var games []provider.ScheduledGame
	t.each(func(r row) {
		est, ok := provider.ParseGameDate(r.str("GAME_DATE_EST"))
		if !ok {
			return
		}
		games = append(games, provider.ScheduledGame{
			GameID:        r.str("GAME_ID"),
			DateEST:       est,
			HomeTeamID:    r.integer("HOME_TEAM_ID"),
			VisitorTeamID: r.integer("VISITOR_TEAM_ID"),
		})
	})
	return games, nil
}
