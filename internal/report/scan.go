package report

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/time/rate"

	"github.com/albapepper/bballscorer/internal/cache"
	"github.com/albapepper/bballscorer/internal/config"
	"github.com/albapepper/bballscorer/internal/provider"
	"github.com/albapepper/bballscorer/internal/stats"
)

// ScanRequest looks for active players who keep clearing one line.
// MaxPlayers <= 0 scans the whole active roster.
type ScanRequest struct {
	Season     int
	Key        stats.StatKey
	Line       float64
	LastN      int
	MinGames   int
	MinHitRate float64 // fraction, 0.7 = 70%
	MaxPlayers int
}

// ScanRow is a player whose hit rate met the minimum.
type ScanRow struct {
	PlayerID int           `json:"player_id"`
	Player   string        `json:"player"`
	Team     string        `json:"team"`
	NextGame string        `json:"next_game"`
	Hits     int           `json:"hits"`
	Games    int           `json:"games"`
	HitRate  float64       `json:"hit_rate"` // percent, one decimal
	Key      stats.StatKey `json:"key"`
	Line     string        `json:"line"`
}

// ScanSummary counts what the scan looked at. Errors collects the upstream
// failures that made a player be skipped; a scan never aborts on them.
type ScanSummary struct {
	ReportID   string        `json:"report_id"`
	Season     string        `json:"season"`
	Key        stats.StatKey `json:"key"`
	Label      string        `json:"label"`
	Line       string        `json:"line"`
	LastN      int           `json:"last_n"`
	MinGames   int           `json:"min_games"`
	MinHitRate float64       `json:"min_hit_rate"`
	Scanned    int           `json:"players_scanned"`
	Skipped    int           `json:"players_skipped"`
	Matched    int           `json:"players_matched"`
	Errors     []string      `json:"errors,omitempty"`
}

// AddErrorf records a formatted error message.
func (s *ScanSummary) AddErrorf(format string, args ...interface{}) {
	s.Errors = append(s.Errors, fmt.Sprintf(format, args...))
}

// ScanReport is the line-scan result table.
type ScanReport = Report[ScanRow, ScanSummary]

// Scan walks the active players in catalog order, one at a time, waiting the
// configured delay between players. Players whose log cannot be fetched or
// who played fewer than MinGames games are skipped. Matches are sorted by hit
// rate, highest first.
func (b *Builder) Scan(ctx context.Context, req ScanRequest) (*ScanReport, error) {
	line := stats.Line{Key: req.Key, Threshold: req.Line}
	if err := stats.ValidateLines([]stats.Line{line}); err != nil {
		return nil, b.invalid(KindScan, err)
	}

	season := b.season(req.Season)
	lastN := orDefault(req.LastN, DefaultLastN)

	players := b.catalog.ActivePlayers()
	if req.MaxPlayers > 0 && len(players) > req.MaxPlayers {
		players = players[:req.MaxPlayers]
	}

	summary := ScanSummary{
		ReportID:   newReportID(),
		Season:     config.SeasonLabel(season),
		Key:        req.Key,
		Label:      req.Key.Label(),
		Line:       line.Label(),
		LastN:      lastN,
		MinGames:   req.MinGames,
		MinHitRate: req.MinHitRate,
	}

	limit := rate.Inf
	if b.settings.ScanDelay > 0 {
		limit = rate.Every(b.settings.ScanDelay)
	}
	limiter := rate.NewLimiter(limit, 1)
	fetch := b.fetcher()
	nextGames := cache.NewMemo[string, string]()

	rows := make([]ScanRow, 0)
	for _, p := range players {
		if err := limiter.Wait(ctx); err != nil {
			summary.AddErrorf("scan stopped: %v", err)
			break
		}
		summary.Scanned++

		entries, err := fetch.PlayerRecent(ctx, p.ID, season, lastN)
		if err != nil {
			summary.Skipped++
			if !errors.Is(err, provider.ErrNoRows) {
				summary.AddErrorf("%s: %v", p.FullName, err)
			}
			continue
		}

		var hits, games int
		for _, e := range entries {
			v, ok := stats.Value(line.Key, e.Stats)
			if !ok {
				continue
			}
			games++
			if line.Hit(v) {
				hits++
			}
		}
		if games == 0 || games < req.MinGames {
			summary.Skipped++
			continue
		}

		hitRate := float64(hits) / float64(games)
		if hitRate < req.MinHitRate {
			continue
		}

		team := entries[0].TeamAbbr
		next, _ := nextGames.Do(team, func() (string, error) {
			date, _ := b.NextGame(ctx, team)
			return date, nil
		})
		rows = append(rows, ScanRow{
			PlayerID: p.ID,
			Player:   p.FullName,
			Team:     team,
			NextGame: next,
			Hits:     hits,
			Games:    games,
			HitRate:  stats.Round1(hitRate * 100),
			Key:      line.Key,
			Line:     line.Label(),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].HitRate > rows[j].HitRate
	})
	summary.Matched = len(rows)

	b.logger.Info("line scan finished", "key", req.Key, "line", req.Line, "season", season,
		"scanned", summary.Scanned, "skipped", summary.Skipped, "matched", summary.Matched)
	b.recorder.ObserveReport(KindScan, OutcomeOK)
	return &ScanReport{Rows: rows, Summary: summary}, nil
}
