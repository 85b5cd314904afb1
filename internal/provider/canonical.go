// Package provider defines canonical data types that the upstream statistics
// client normalizes into. These structs are the contract between the provider
// and the report pipeline: the client outputs them and the fetcher, matcher
// and evaluators consume them.
//
// Box-score columns are kept as a sparse map: a column the upstream response
// did not carry is simply absent, and consumers treat it as "metric
// unavailable" rather than as zero.
package provider

import (
	"sort"
	"strings"
	"time"
)

// Team is the canonical team reference record.
type Team struct {
	ID           int    `json:"id"`
	Abbreviation string `json:"abbreviation"`
	FullName     string `json:"full_name"`
	Nickname     string `json:"nickname"`
	City         string `json:"city"`
}

// Player is the canonical player reference record.
type Player struct {
	ID       int    `json:"id"`
	FullName string `json:"full_name"`
	Active   bool   `json:"is_active"`
}

// Column names a numeric box-score field, using the upstream header names.
type Column string

const (
	ColPoints      Column = "PTS"
	ColRebounds    Column = "REB"
	ColAssists     Column = "AST"
	ColThreesMade  Column = "FG3M"
	ColSteals      Column = "STL"
	ColBlocks      Column = "BLK"
	ColTurnovers   Column = "TOV"
	ColFieldGoalPc Column = "FG_PCT"
	ColThreePc     Column = "FG3_PCT"
	ColFreeThrowPc Column = "FT_PCT"
)

// BoxColumns lists the numeric columns copied from upstream rows.
var BoxColumns = []Column{
	ColPoints, ColRebounds, ColAssists, ColThreesMade, ColSteals, ColBlocks,
	ColTurnovers, ColFieldGoalPc, ColThreePc, ColFreeThrowPc,
}

// Venue records whether the log's own team played at home.
type Venue string

const (
	VenueHome    Venue = "home"
	VenueAway    Venue = "away"
	VenueUnknown Venue = ""
)

// GameLogEntry is one row of a team or player season game log.
type GameLogEntry struct {
	GameID   string             `json:"game_id"`
	Date     time.Time          `json:"date"`
	Matchup  string             `json:"matchup"`
	TeamAbbr string             `json:"team"`
	Opponent string             `json:"opponent"`
	Venue    Venue              `json:"venue"`
	Minutes  string             `json:"minutes,omitempty"`
	Stats    map[Column]float64 `json:"stats"`
}

// Stat returns the value of a box-score column and whether the upstream row
// carried it.
func (e GameLogEntry) Stat(col Column) (float64, bool) {
	v, ok := e.Stats[col]
	return v, ok
}

// Value returns the column value, or zero when absent.
func (e GameLogEntry) Value(col Column) float64 {
	return e.Stats[col]
}

// SortByDateDesc orders entries most recent first. Entries sharing a date keep
// their upstream order.
func SortByDateDesc(entries []GameLogEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
}

// PeriodStats is a player's box score restricted to a single quarter.
type PeriodStats struct {
	GameID   string             `json:"game_id"`
	PlayerID int                `json:"player_id"`
	Period   int                `json:"period"`
	Minutes  string             `json:"minutes,omitempty"`
	Stats    map[Column]float64 `json:"stats"`
}

// ScheduledGame is one fixture from a daily scoreboard.
type ScheduledGame struct {
	GameID        string    `json:"game_id"`
	DateEST       time.Time `json:"date_est"`
	HomeTeamID    int       `json:"home_team_id"`
	VisitorTeamID int       `json:"visitor_team_id"`
}

// Involves reports whether the team took part in the game.
func (g ScheduledGame) Involves(teamID int) bool {
	return g.HomeTeamID == teamID || g.VisitorTeamID == teamID
}

// ParseMatchup splits upstream matchup notation into the log team's
// abbreviation, the opponent abbreviation, and the venue.
//
//	"BOS vs. LAL" -> BOS, LAL, home
//	"BOS @ LAL"   -> BOS, LAL, away
func ParseMatchup(matchup string) (team, opponent string, venue Venue) {
	m := strings.TrimSpace(matchup)
	if fields := strings.Fields(m); len(fields) > 0 {
		team = fields[0]
	}

	for _, sep := range []string{"vs.", "vs", "@"} {
		idx := strings.Index(m, sep)
		if idx < 0 {
			continue
		}
		opponent = strings.TrimSpace(m[idx+len(sep):])
		if sep == "@" {
			return team, opponent, VenueAway
		}
		return team, opponent, VenueHome
	}
	return team, "", VenueUnknown
}

// ParseMinutes converts a minutes cell ("34:12", "34", "34.5") into decimal
// minutes.
func ParseMinutes(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	mins, secs, hasSecs := strings.Cut(s, ":")
	m, ok := ExtractValue(mins)
	if !ok {
		return 0, false
	}
	if !hasSecs {
		return m, true
	}
	sec, ok := ExtractValue(secs)
	if !ok {
		return 0, false
	}
	return m + sec/60.0, true
}
