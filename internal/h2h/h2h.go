// Package h2h collects past meetings between two teams by walking their
// season game logs backward from a starting season.
package h2h

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/albapepper/bballscorer/internal/provider"
	"github.com/albapepper/bballscorer/internal/stats"
)

// Source provides a team's full season log, most recent first.
type Source interface {
	TeamSeason(ctx context.Context, teamID, season int) ([]provider.GameLogEntry, error)
}

// Game is one meeting, oriented by where it was actually played.
type Game struct {
	GameID     string     `json:"game_id"`
	Date       time.Time  `json:"date"`
	Season     int        `json:"season"`
	HomeTeam   string     `json:"home_team"`
	AwayTeam   string     `json:"away_team"`
	HomePoints float64    `json:"home_points"`
	AwayPoints float64    `json:"away_points"`
	HomeFlag   stats.Flag `json:"home_flag"`
	AwayFlag   stats.Flag `json:"away_flag"`
}

// TotalPoints is the combined score of the game.
func (g Game) TotalPoints() float64 {
	return g.HomePoints + g.AwayPoints
}

// Query describes a head-to-head search. Team A and team B are the two sides
// as the caller named them; the result is oriented by venue, not by order.
type Query struct {
	TeamA          provider.Team
	TeamB          provider.Team
	StartSeason    int
	Count          int
	MaxSeasonsBack int
	FloorSeason    int
}

// Matcher finds head-to-head games.
type Matcher struct {
	source Source
	logger *slog.Logger
}

// NewMatcher creates a matcher over a season-log source.
func NewMatcher(source Source, logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Matcher{source: source, logger: logger}
}

// Find returns up to q.Count most recent meetings, newest first. Seasons are
// scanned from q.StartSeason backward, never below q.FloorSeason and for at
// most q.MaxSeasonsBack seasons. A season whose logs cannot be fetched, or
// that holds no meetings, is skipped. Scanning stops after the first season
// that brings the total to q.Count. No meetings yields nil.
func (m *Matcher) Find(ctx context.Context, q Query) []Game {
	if q.Count <= 0 || q.MaxSeasonsBack <= 0 {
		return nil
	}

	var games []Game
	for season := q.StartSeason; season > q.StartSeason-q.MaxSeasonsBack; season-- {
		if season < q.FloorSeason {
			break
		}

		found, err := m.season(ctx, q.TeamA, q.TeamB, season)
		if err != nil {
			m.logger.Info("h2h season skipped",
				"team_a", q.TeamA.Abbreviation, "team_b", q.TeamB.Abbreviation,
				"season", season, "error", err)
			continue
		}
		games = append(games, found...)
		if len(games) >= q.Count {
			break
		}
	}

	if len(games) == 0 {
		return nil
	}
	sort.SliceStable(games, func(i, j int) bool {
		if !games[i].Date.Equal(games[j].Date) {
			return games[i].Date.After(games[j].Date)
		}
		return games[i].GameID > games[j].GameID
	})
	if len(games) > q.Count {
		games = games[:q.Count]
	}
	return games
}

func (m *Matcher) season(ctx context.Context, a, b provider.Team, season int) ([]Game, error) {
	logA, err := m.source.TeamSeason(ctx, a.ID, season)
	if err != nil {
		return nil, err
	}
	logB, err := m.source.TeamSeason(ctx, b.ID, season)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]provider.GameLogEntry)
	for _, e := range againstOpponent(logB, a.Abbreviation) {
		byID[e.GameID] = e
	}

	var games []Game
	for _, ea := range againstOpponent(logA, b.Abbreviation) {
		eb, ok := byID[ea.GameID]
		if !ok {
			continue
		}
		ptsA, okA := ea.Stat(provider.ColPoints)
		ptsB, okB := eb.Stat(provider.ColPoints)
		if !okA || !okB {
			continue
		}
		games = append(games, orient(ea, a, b, ptsA, ptsB, season))
	}
	return games, nil
}

// orient places the two sides by team A's own matchup notation: "vs" means A
// hosted, "@" means A travelled. Unreadable notation keeps A as the home side.
func orient(ea provider.GameLogEntry, a, b provider.Team, ptsA, ptsB float64, season int) Game {
	g := Game{GameID: ea.GameID, Date: ea.Date, Season: season}
	if ea.Venue == provider.VenueAway {
		g.HomeTeam, g.AwayTeam = b.Abbreviation, a.Abbreviation
		g.HomePoints, g.AwayPoints = ptsB, ptsA
	} else {
		g.HomeTeam, g.AwayTeam = a.Abbreviation, b.Abbreviation
		g.HomePoints, g.AwayPoints = ptsA, ptsB
	}
	g.HomeFlag, g.AwayFlag = stats.Higher(g.HomePoints, g.AwayPoints)
	return g
}

func againstOpponent(entries []provider.GameLogEntry, abbr string) []provider.GameLogEntry {
	var out []provider.GameLogEntry
	for _, e := range entries {
		if e.GameID != "" && strings.EqualFold(e.Opponent, abbr) {
			out = append(out, e)
		}
	}
	return out
}

// AverageTotalPoints is the mean combined score, rounded to one decimal.
func AverageTotalPoints(games []Game) float64 {
	if len(games) == 0 {
		return 0
	}
	var sum float64
	for _, g := range games {
		sum += g.TotalPoints()
	}
	return stats.Round1(sum / float64(len(games)))
}
