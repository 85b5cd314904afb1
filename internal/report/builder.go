// Package report assembles the outputs of the fetcher, aggregator, matcher
// and evaluator into row sets with a structured summary, ready to be served
// as JSON, written as CSV or printed as text tables.
//
// Builders return (*Report, error). A nil report with a nil error means the
// report is absent: a name did not resolve or the upstream had no usable
// data. An error is only returned for invalid input, such as an unknown stat
// key, and is returned before anything is fetched.
package report

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/albapepper/bballscorer/internal/catalog"
	"github.com/albapepper/bballscorer/internal/config"
	"github.com/albapepper/bballscorer/internal/gamelog"
	"github.com/albapepper/bballscorer/internal/provider"
)

// Report is a row set with its side-channel summary.
type Report[R any, S any] struct {
	Rows    []R `json:"rows"`
	Summary S   `json:"summary"`
}

// PeriodSource fetches a player's box score for one quarter of a game.
type PeriodSource interface {
	PlayerPeriodStats(ctx context.Context, playerID int, gameID string, period int) (*provider.PeriodStats, error)
}

// ScheduleSource lists the games scheduled on a date.
type ScheduleSource interface {
	Scoreboard(ctx context.Context, date time.Time) ([]provider.ScheduledGame, error)
}

// Upstream is everything the builders read from the statistics API.
type Upstream interface {
	gamelog.Source
	PeriodSource
	ScheduleSource
}

// Recorder counts built reports by kind and outcome.
type Recorder interface {
	ObserveReport(kind, outcome string)
}

const (
	KindMatchup = "matchup"
	KindH2H     = "h2h"
	KindPlayer  = "player"
	KindScan    = "scan"

	OutcomeOK      = "ok"
	OutcomeAbsent  = "absent"
	OutcomeInvalid = "invalid"
)

// Window defaults applied when a request leaves a size at zero.
const (
	DefaultLastN         = 10
	DefaultLastNHomeAway = 8
	DefaultLastNH2H      = 6
)

// ErrInvalidPeriod rejects a period outside 1-4.
var ErrInvalidPeriod = errors.New("period must be between 1 and 4")

// Settings are the report-wide knobs taken from configuration.
type Settings struct {
	CurrentSeason  int
	FloorSeason    int
	MaxSeasonsBack int
	ScanDelay      time.Duration
	Location       *time.Location
}

// SettingsFromConfig extracts report settings from the loaded configuration.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		CurrentSeason:  cfg.CurrentSeason,
		FloorSeason:    cfg.H2HFloorSeason,
		MaxSeasonsBack: cfg.H2HMaxSeasonsBack,
		ScanDelay:      cfg.ScanDelay,
		Location:       cfg.Location(),
	}
}

type nopRecorder struct{}

func (nopRecorder) ObserveReport(string, string) {}

// Builder builds every report. It holds no per-request state and is safe to
// share between requests.
type Builder struct {
	catalog  *catalog.Catalog
	upstream Upstream
	settings Settings
	logger   *slog.Logger
	recorder Recorder
	now      func() time.Time
}

// Option configures a Builder.
type Option func(*Builder)

// WithRecorder sets the report counter.
func WithRecorder(r Recorder) Option {
	return func(b *Builder) {
		if r != nil {
			b.recorder = r
		}
	}
}

// WithClock overrides the clock used to find upcoming games.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// NewBuilder creates a report builder.
func NewBuilder(cat *catalog.Catalog, upstream Upstream, settings Settings, logger *slog.Logger, opts ...Option) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	if settings.CurrentSeason == 0 {
		settings.CurrentSeason = config.DefaultSeason
	}
	if settings.MaxSeasonsBack <= 0 {
		settings.MaxSeasonsBack = 5
	}
	b := &Builder{
		catalog:  cat,
		upstream: upstream,
		settings: settings,
		logger:   logger,
		recorder: nopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Catalog returns the lookup service the builder resolves names with.
func (b *Builder) Catalog() *catalog.Catalog {
	return b.catalog
}

// Settings returns the effective report settings.
func (b *Builder) Settings() Settings {
	return b.settings
}

func (b *Builder) season(s int) int {
	if s == 0 {
		return b.settings.CurrentSeason
	}
	return s
}

func (b *Builder) fetcher() *gamelog.Fetcher {
	return gamelog.NewFetcher(b.upstream, b.logger)
}

// absent records and logs a report that could not be built from the data.
func (b *Builder) absent(kind, reason string, args ...any) {
	b.recorder.ObserveReport(kind, OutcomeAbsent)
	b.logger.Info(kind+" report absent: "+reason, args...)
}

func (b *Builder) invalid(kind string, err error) error {
	b.recorder.ObserveReport(kind, OutcomeInvalid)
	return err
}

func newReportID() string {
	return uuid.NewString()
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
