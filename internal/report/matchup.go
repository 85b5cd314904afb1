package report

import (
	"context"

	"github.com/albapepper/bballscorer/internal/config"
	"github.com/albapepper/bballscorer/internal/gamelog"
	"github.com/albapepper/bballscorer/internal/h2h"
	"github.com/albapepper/bballscorer/internal/provider"
	"github.com/albapepper/bballscorer/internal/stats"
)

// Row blocks of a matchup report.
const (
	BlockOverall  = "overall"
	BlockHomeAway = "home_away"
)

// MatchupRequest asks for a comparison of two teams within one season.
type MatchupRequest struct {
	Home          string
	Away          string
	Season        int
	LastN         int
	LastNHomeAway int
	LastNH2H      int
}

// MatchupRow compares one metric between the two teams. A value is nil when
// that team's data did not expose the metric.
type MatchupRow struct {
	Block     string          `json:"block"`
	Metric    stats.MetricKey `json:"metric"`
	Label     string          `json:"label"`
	HomeValue *float64        `json:"home_value"`
	HomeFlag  stats.Flag      `json:"home_flag"`
	AwayValue *float64        `json:"away_value"`
	AwayFlag  stats.Flag      `json:"away_flag"`
}

// MatchupSummary carries the headline facts of a matchup report.
type MatchupSummary struct {
	ReportID          string        `json:"report_id"`
	Home              provider.Team `json:"home"`
	Away              provider.Team `json:"away"`
	Season            string        `json:"season"`
	LastN             int           `json:"last_n"`
	LastNHomeAway     int           `json:"last_n_home_away"`
	LastNH2H          int           `json:"last_n_h2h"`
	HomeGames         int           `json:"home_games_analyzed"`
	AwayGames         int           `json:"away_games_analyzed"`
	HomeVenueGames    int           `json:"home_games_at_home"`
	AwayVenueGames    int           `json:"away_games_on_road"`
	H2HGames          int           `json:"h2h_games"`
	H2HAvgTotalPoints float64       `json:"h2h_avg_total_points"`
}

// MatchupReport is the team comparison table.
type MatchupReport = Report[MatchupRow, MatchupSummary]

// TeamMatchup compares the home team and the away team over their last LastN
// games, then over the home games and road games respectively found within
// that window, and reports the in-season head-to-head record in the summary.
func (b *Builder) TeamMatchup(ctx context.Context, req MatchupRequest) (*MatchupReport, error) {
	home, err := b.catalog.ResolveTeam(req.Home)
	if err != nil {
		b.absent(KindMatchup, "unresolved team", "error", err)
		return nil, nil
	}
	away, err := b.catalog.ResolveTeam(req.Away)
	if err != nil {
		b.absent(KindMatchup, "unresolved team", "error", err)
		return nil, nil
	}

	season := b.season(req.Season)
	lastN := orDefault(req.LastN, DefaultLastN)
	lastNHomeAway := orDefault(req.LastNHomeAway, DefaultLastNHomeAway)
	lastNH2H := orDefault(req.LastNH2H, DefaultLastNH2H)

	fetch := b.fetcher()
	homeLog := b.teamSeason(ctx, fetch, home, season)
	awayLog := b.teamSeason(ctx, fetch, away, season)

	// The venue split is taken inside the overall window.
	homeRecent := gamelog.Recent(homeLog, lastN)
	awayRecent := gamelog.Recent(awayLog, lastN)
	homeOverall := stats.Aggregate(homeRecent)
	awayOverall := stats.Aggregate(awayRecent)
	homeAtHome := stats.Aggregate(gamelog.Recent(gamelog.AtVenue(homeRecent, provider.VenueHome), lastNHomeAway))
	awayOnRoad := stats.Aggregate(gamelog.Recent(gamelog.AtVenue(awayRecent, provider.VenueAway), lastNHomeAway))

	rows := compareBlock(BlockOverall, homeOverall, awayOverall)
	rows = append(rows, compareBlock(BlockHomeAway, homeAtHome, awayOnRoad)...)
	if len(rows) == 0 {
		b.absent(KindMatchup, "no games", "home", home.Abbreviation, "away", away.Abbreviation, "season", season)
		return nil, nil
	}

	meetings := h2h.NewMatcher(fetch, b.logger).Find(ctx, h2h.Query{
		TeamA:          home,
		TeamB:          away,
		StartSeason:    season,
		Count:          lastNH2H,
		MaxSeasonsBack: 1,
		FloorSeason:    b.settings.FloorSeason,
	})

	summary := MatchupSummary{
		ReportID:          newReportID(),
		Home:              home,
		Away:              away,
		Season:            config.SeasonLabel(season),
		LastN:             lastN,
		LastNHomeAway:     lastNHomeAway,
		LastNH2H:          lastNH2H,
		HomeGames:         gameCount(homeOverall),
		AwayGames:         gameCount(awayOverall),
		HomeVenueGames:    gameCount(homeAtHome),
		AwayVenueGames:    gameCount(awayOnRoad),
		H2HGames:          len(meetings),
		H2HAvgTotalPoints: h2h.AverageTotalPoints(meetings),
	}

	b.logger.Debug("matchup report built", "home", home.Abbreviation, "away", away.Abbreviation,
		"season", season, "rows", len(rows), "memo", fetch.Stats())
	b.recorder.ObserveReport(KindMatchup, OutcomeOK)
	return &MatchupReport{Rows: rows, Summary: summary}, nil
}

// teamSeason fetches a season log, treating a failure as no data.
func (b *Builder) teamSeason(ctx context.Context, fetch *gamelog.Fetcher, team provider.Team, season int) []provider.GameLogEntry {
	entries, err := fetch.TeamSeason(ctx, team.ID, season)
	if err != nil {
		b.logger.Warn("team season log unavailable", "team", team.Abbreviation, "season", season, "error", err)
		return nil
	}
	return entries
}

// compareBlock lines the two summaries up metric by metric, in canonical
// order. A metric appears when at least one side has it and is only flagged
// when both do.
func compareBlock(block string, home, away stats.Summary) []MatchupRow {
	var rows []MatchupRow
	for _, key := range stats.MetricOrder() {
		hv, hok := home.Get(key)
		av, aok := away.Get(key)
		if !hok && !aok {
			continue
		}
		row := MatchupRow{Block: block, Metric: key, Label: key.Label()}
		if hok {
			row.HomeValue = &hv
		}
		if aok {
			row.AwayValue = &av
		}
		if hok && aok {
			row.HomeFlag, row.AwayFlag = stats.Compare(key, hv, av)
		}
		rows = append(rows, row)
	}
	return rows
}

func gameCount(s stats.Summary) int {
	v, _ := s.Get(stats.MetricGames)
	return int(v)
}
