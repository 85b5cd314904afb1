package report

import (
	"context"
	"fmt"
	"time"

	"github.com/albapepper/bballscorer/internal/config"
	"github.com/albapepper/bballscorer/internal/provider"
	"github.com/albapepper/bballscorer/internal/stats"
)

// PlayerRequest asks how a player's recent games measured against a set of
// lines. Period 0 means full games; 1-4 selects a quarter.
type PlayerRequest struct {
	Name   string
	Season int
	Lines  []stats.Line
	LastN  int
	Period int
}

// PlayerRow is one game with one evaluated cell per requested line.
// Approximate marks a game whose quarter box score was unavailable and whose
// full-game stats were used instead.
type PlayerRow struct {
	GameID      string         `json:"game_id"`
	Date        time.Time      `json:"date"`
	Team        string         `json:"team"`
	Opponent    string         `json:"opponent"`
	Venue       provider.Venue `json:"venue"`
	Minutes     string         `json:"minutes"`
	Approximate bool           `json:"approximate,omitempty"`
	Cells       []stats.Cell   `json:"lines"`
}

// PlayerSummary carries hit counts and the context a headline needs.
type PlayerSummary struct {
	ReportID         string            `json:"report_id"`
	Player           provider.Player   `json:"player"`
	OtherCandidates  []provider.Player `json:"other_candidates,omitempty"`
	Season           string            `json:"season"`
	Period           int               `json:"period,omitempty"`
	PeriodLabel      string            `json:"period_label"`
	Games            int               `json:"games"`
	Lines            []stats.Tally     `json:"lines"`
	AvgMinutes       float64           `json:"avg_minutes"`
	ApproximateGames int               `json:"approximate_games,omitempty"`
}

// PlayerReport is the per-game line table for one player.
type PlayerReport = Report[PlayerRow, PlayerSummary]

// PeriodLabel names a period selector: "Full game" or "Q1".."Q4".
func PeriodLabel(period int) string {
	if period == 0 {
		return "Full game"
	}
	return fmt.Sprintf("Q%d", period)
}

// ValidatePeriod accepts 0 (full game) or a quarter 1-4.
func ValidatePeriod(period int) error {
	if period < 0 || period > 4 {
		return fmt.Errorf("%w, got %d", ErrInvalidPeriod, period)
	}
	return nil
}

// PlayerLines evaluates every requested line on each of the player's last
// LastN games. Keys and period are validated before the name is resolved.
func (b *Builder) PlayerLines(ctx context.Context, req PlayerRequest) (*PlayerReport, error) {
	ev, err := stats.NewEvaluator(req.Lines)
	if err != nil {
		return nil, b.invalid(KindPlayer, err)
	}
	if err := ValidatePeriod(req.Period); err != nil {
		return nil, b.invalid(KindPlayer, err)
	}
	if len(req.Lines) == 0 {
		b.absent(KindPlayer, "no lines requested", "name", req.Name)
		return nil, nil
	}

	match, err := b.catalog.ResolvePlayer(req.Name)
	if err != nil {
		b.absent(KindPlayer, "unresolved player", "error", err)
		return nil, nil
	}
	player := match.Player
	if match.Ambiguous() {
		b.logger.Info("ambiguous player name", "query", req.Name, "picked", player.FullName, "others", len(match.Others))
	}

	season := b.season(req.Season)
	lastN := orDefault(req.LastN, DefaultLastN)

	entries, err := b.fetcher().PlayerRecent(ctx, player.ID, season, lastN)
	if err != nil {
		b.absent(KindPlayer, "no games", "player", player.FullName, "season", season, "error", err)
		return nil, nil
	}

	var (
		rows        []PlayerRow
		minutesSum  float64
		minutesN    int
		approximate int
	)
	for _, e := range entries {
		row := PlayerRow{
			GameID:   e.GameID,
			Date:     e.Date,
			Team:     e.TeamAbbr,
			Opponent: e.Opponent,
			Venue:    e.Venue,
			Minutes:  e.Minutes,
		}
		box := e.Stats

		if req.Period > 0 {
			ps, err := b.periodStats(ctx, player.ID, e.GameID, req.Period)
			if err != nil {
				b.logger.Info("period box score unavailable, using full game",
					"player", player.FullName, "game_id", e.GameID, "period", req.Period, "error", err)
				row.Approximate = true
				approximate++
			} else {
				box = ps.Stats
				row.Minutes = ps.Minutes
			}
		}

		if !row.Approximate {
			if m, ok := provider.ParseMinutes(row.Minutes); ok {
				minutesSum += m
				minutesN++
			}
		}

		row.Cells = ev.Evaluate(box)
		rows = append(rows, row)
	}

	summary := PlayerSummary{
		ReportID:         newReportID(),
		Player:           player,
		OtherCandidates:  match.Others,
		Season:           config.SeasonLabel(season),
		Period:           req.Period,
		PeriodLabel:      PeriodLabel(req.Period),
		Games:            len(rows),
		Lines:            ev.Tallies(),
		ApproximateGames: approximate,
	}
	if minutesN > 0 {
		summary.AvgMinutes = stats.Round1(minutesSum / float64(minutesN))
	}

	b.recorder.ObserveReport(KindPlayer, OutcomeOK)
	return &PlayerReport{Rows: rows, Summary: summary}, nil
}

func (b *Builder) periodStats(ctx context.Context, playerID int, gameID string, period int) (*provider.PeriodStats, error) {
	if gameID == "" {
		return nil, &provider.RetrievalError{Endpoint: "boxscoretraditionalv2", Err: fmt.Errorf("game has no id")}
	}
	return b.upstream.PlayerPeriodStats(ctx, playerID, gameID, period)
}
