package report

import (
	"context"

	"github.com/albapepper/bballscorer/internal/config"
	"github.com/albapepper/bballscorer/internal/h2h"
	"github.com/albapepper/bballscorer/internal/provider"
)

// H2HRequest asks for the most recent meetings between two teams.
type H2HRequest struct {
	Home           string
	Away           string
	Season         int
	LastN          int
	MaxSeasonsBack int
}

// H2HRow is one meeting with its combined score.
type H2HRow struct {
	h2h.Game
	TotalPoints float64 `json:"total_points"`
}

// H2HSummary carries the head-to-head headline.
type H2HSummary struct {
	ReportID       string        `json:"report_id"`
	TeamA          provider.Team `json:"team_a"`
	TeamB          provider.Team `json:"team_b"`
	StartSeason    string        `json:"start_season"`
	SeasonsBack    int           `json:"max_seasons_back"`
	Games          int           `json:"h2h_count"`
	AvgTotalPoints float64       `json:"h2h_avg_total_points"`
}

// H2HReport is the head-to-head table.
type H2HReport = Report[H2HRow, H2HSummary]

// HeadToHead lists up to LastN meetings between the two teams, searching
// backward from Season. No meetings in the scanned seasons is an absent
// report.
func (b *Builder) HeadToHead(ctx context.Context, req H2HRequest) (*H2HReport, error) {
	a, err := b.catalog.ResolveTeam(req.Home)
	if err != nil {
		b.absent(KindH2H, "unresolved team", "error", err)
		return nil, nil
	}
	bt, err := b.catalog.ResolveTeam(req.Away)
	if err != nil {
		b.absent(KindH2H, "unresolved team", "error", err)
		return nil, nil
	}

	season := b.season(req.Season)
	count := orDefault(req.LastN, DefaultLastNH2H)
	back := orDefault(req.MaxSeasonsBack, b.settings.MaxSeasonsBack)

	games := h2h.NewMatcher(b.fetcher(), b.logger).Find(ctx, h2h.Query{
		TeamA:          a,
		TeamB:          bt,
		StartSeason:    season,
		Count:          count,
		MaxSeasonsBack: back,
		FloorSeason:    b.settings.FloorSeason,
	})
	if len(games) == 0 {
		b.absent(KindH2H, "no meetings", "team_a", a.Abbreviation, "team_b", bt.Abbreviation,
			"season", season, "seasons_back", back)
		return nil, nil
	}

	rows := make([]H2HRow, len(games))
	for i, g := range games {
		rows[i] = H2HRow{Game: g, TotalPoints: g.TotalPoints()}
	}

	b.recorder.ObserveReport(KindH2H, OutcomeOK)
	return &H2HReport{
		Rows: rows,
		Summary: H2HSummary{
			ReportID:       newReportID(),
			TeamA:          a,
			TeamB:          bt,
			StartSeason:    config.SeasonLabel(season),
			SeasonsBack:    back,
			Games:          len(rows),
			AvgTotalPoints: h2h.AverageTotalPoints(games),
		},
	}, nil
}
