package report

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/bballscorer/internal/catalog"
	"github.com/albapepper/bballscorer/internal/provider"
	"github.com/albapepper/bballscorer/internal/stats"
)

const (
	bosID   = 1610612738
	lalID   = 1610612747
	tatumID = 1628369
)

type seasonKey struct{ id, season int }

type fakeUpstream struct {
	mu       sync.Mutex
	team     map[seasonKey][]provider.GameLogEntry
	player   map[seasonKey][]provider.GameLogEntry
	failing  map[seasonKey]bool
	periods  map[string]*provider.PeriodStats
	schedule map[string][]provider.ScheduledGame
	calls    int
}

func newFakeUpstream() *fakeUpstream {
	return &fakeUpstream{
		team:     map[seasonKey][]provider.GameLogEntry{},
		player:   map[seasonKey][]provider.GameLogEntry{},
		failing:  map[seasonKey]bool{},
		periods:  map[string]*provider.PeriodStats{},
		schedule: map[string][]provider.ScheduledGame{},
	}
}

func (f *fakeUpstream) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeUpstream) TeamGameLog(ctx context.Context, teamID, season int) ([]provider.GameLogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return clone(f.team[seasonKey{teamID, season}]), nil
}

func (f *fakeUpstream) PlayerGameLog(ctx context.Context, playerID, season int) ([]provider.GameLogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failing[seasonKey{playerID, season}] {
		return nil, &provider.RetrievalError{Endpoint: "playergamelog", Err: errors.New("status 500")}
	}
	return clone(f.player[seasonKey{playerID, season}]), nil
}

func (f *fakeUpstream) PlayerPeriodStats(ctx context.Context, playerID int, gameID string, period int) (*provider.PeriodStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	ps, ok := f.periods[fmt.Sprintf("%d/%s/%d", playerID, gameID, period)]
	if !ok {
		return nil, &provider.RetrievalError{Endpoint: "boxscoretraditionalv2", Err: provider.ErrNoRows}
	}
	return ps, nil
}

func (f *fakeUpstream) Scoreboard(ctx context.Context, date time.Time) ([]provider.ScheduledGame, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.schedule[date.Format("2006-01-02")], nil
}

func clone(entries []provider.GameLogEntry) []provider.GameLogEntry {
	if entries == nil {
		return nil
	}
	out := make([]provider.GameLogEntry, len(entries))
	copy(out, entries)
	return out
}

type recorder struct {
	outcomes []string
}

func (r *recorder) ObserveReport(kind, outcome string) {
	r.outcomes = append(r.outcomes, kind+":"+outcome)
}

func entry(id string, date time.Time, matchup string, box map[provider.Column]float64) provider.GameLogEntry {
	team, opp, venue := provider.ParseMatchup(matchup)
	return provider.GameLogEntry{
		GameID: id, Date: date, Matchup: matchup,
		TeamAbbr: team, Opponent: opp, Venue: venue,
		Minutes: "34:30", Stats: box,
	}
}

func teamBox(pts float64) map[provider.Column]float64 {
	return map[provider.Column]float64{
		provider.ColPoints: pts, provider.ColFieldGoalPc: 0.47, provider.ColThreePc: 0.36,
		provider.ColRebounds: 44, provider.ColAssists: 25, provider.ColTurnovers: 13,
	}
}

// teamLog builds n games, most recent first, alternating home and road.
func teamLog(abbr string, n int, pts float64) []provider.GameLogEntry {
	var out []provider.GameLogEntry
	start := time.Date(2025, 3, 30, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		matchup := abbr + " vs. NYK"
		if i%2 == 1 {
			matchup = abbr + " @ MIA"
		}
		out = append(out, entry(fmt.Sprintf("%s-%02d", abbr, i), start.AddDate(0, 0, -2*i), matchup, teamBox(pts)))
	}
	return out
}

func fixtureCatalog() *catalog.Catalog {
	return catalog.New(catalog.NBATeams(), []provider.Player{
		{ID: 1, FullName: "Jaylen Brown", Active: true},
		{ID: tatumID, FullName: "Jayson Tatum", Active: true},
		{ID: 3, FullName: "Anthony Davis", Active: true},
		{ID: 4, FullName: "Retired Guy", Active: false},
		{ID: 5, FullName: "Bench Rookie", Active: true},
	})
}

func newTestBuilder(up *fakeUpstream, rec *recorder) *Builder {
	lisbon, _ := time.LoadLocation("Europe/Lisbon")
	return NewBuilder(fixtureCatalog(), up, Settings{
		CurrentSeason:  2024,
		FloorSeason:    2000,
		MaxSeasonsBack: 5,
		Location:       lisbon,
	}, nil, WithRecorder(rec), WithClock(func() time.Time {
		return time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	}))
}

// --------------------------------------------------------------------------
// Matchup
// --------------------------------------------------------------------------

func TestTeamMatchupBOSvsLAL(t *testing.T) {
	up := newFakeUpstream()
	meeting := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	up.team[seasonKey{bosID, 2024}] = append([]provider.GameLogEntry{
		entry("m1", meeting, "BOS vs. LAL", teamBox(120)),
	}, teamLog("BOS", 15, 112)...)
	up.team[seasonKey{lalID, 2024}] = append([]provider.GameLogEntry{
		entry("m1", meeting, "LAL @ BOS", teamBox(111)),
	}, teamLog("LAL", 6, 104)...)
	rec := &recorder{}

	rep, err := newTestBuilder(up, rec).TeamMatchup(context.Background(), MatchupRequest{
		Home: "BOS", Away: "lakers", Season: 2024, LastN: 10,
	})
	require.NoError(t, err)
	require.NotNil(t, rep)

	s := rep.Summary
	assert.Equal(t, "BOS", s.Home.Abbreviation)
	assert.Equal(t, "LAL", s.Away.Abbreviation)
	assert.Equal(t, "2024-25", s.Season)
	assert.Equal(t, 10, s.HomeGames)
	assert.Equal(t, 7, s.AwayGames, "fewer games than the window")
	assert.Equal(t, 6, s.HomeVenueGames, "home games inside the 10-game window")
	assert.Equal(t, 4, s.AwayVenueGames)
	assert.Equal(t, 1, s.H2HGames)
	assert.Equal(t, 231.0, s.H2HAvgTotalPoints)
	assert.NotEmpty(t, s.ReportID)

	require.Len(t, rep.Rows, 14)
	games := rep.Rows[0]
	assert.Equal(t, BlockOverall, games.Block)
	assert.Equal(t, stats.MetricGames, games.Metric)
	assert.Equal(t, 10.0, *games.HomeValue)
	assert.Equal(t, 7.0, *games.AwayValue)
	assert.Equal(t, stats.FlagNone, games.HomeFlag)
	assert.Equal(t, stats.FlagNone, games.AwayFlag)

	points := rep.Rows[1]
	assert.Equal(t, stats.MetricPoints, points.Metric)
	assert.Equal(t, stats.FlagBetter, points.HomeFlag)
	assert.Equal(t, stats.FlagWorse, points.AwayFlag)

	for _, row := range rep.Rows {
		if row.Metric == stats.MetricTurnovers {
			assert.Equal(t, stats.FlagNone, row.HomeFlag, "equal turnovers flag neither side")
		}
	}
	assert.Equal(t, BlockHomeAway, rep.Rows[7].Block)

	assert.Equal(t, 2, up.count(), "each season log fetched once and reused for the h2h summary")
	assert.Equal(t, []string{"matchup:ok"}, rec.outcomes)
}

func TestTeamMatchupTurnoversFavorLower(t *testing.T) {
	up := newFakeUpstream()
	bos := teamLog("BOS", 10, 112)
	lal := teamLog("LAL", 10, 112)
	for i := range bos {
		bos[i].Stats[provider.ColTurnovers] = 11
		lal[i].Stats[provider.ColTurnovers] = 14
	}
	up.team[seasonKey{bosID, 2024}] = bos
	up.team[seasonKey{lalID, 2024}] = lal

	rep, err := newTestBuilder(up, &recorder{}).TeamMatchup(context.Background(), MatchupRequest{Home: "BOS", Away: "LAL", Season: 2024})
	require.NoError(t, err)
	require.NotNil(t, rep)

	var seen int
	for _, row := range rep.Rows {
		if row.Metric != stats.MetricTurnovers {
			continue
		}
		seen++
		assert.Equal(t, stats.FlagBetter, row.HomeFlag, row.Block)
		assert.Equal(t, stats.FlagWorse, row.AwayFlag, row.Block)
	}
	assert.Equal(t, 2, seen)
}

func TestTeamMatchupVenueSplitStaysInsideWindow(t *testing.T) {
	up := newFakeUpstream()
	up.team[seasonKey{bosID, 2024}] = teamLog("BOS", 20, 112)
	up.team[seasonKey{lalID, 2024}] = teamLog("LAL", 20, 104)

	rep, err := newTestBuilder(up, &recorder{}).TeamMatchup(context.Background(), MatchupRequest{
		Home: "BOS", Away: "LAL", Season: 2024, LastN: 4, LastNHomeAway: 8,
	})
	require.NoError(t, err)
	require.NotNil(t, rep)

	assert.Equal(t, 4, rep.Summary.HomeGames)
	assert.Equal(t, 2, rep.Summary.HomeVenueGames)
	assert.Equal(t, 2, rep.Summary.AwayVenueGames)
	for _, row := range rep.Rows {
		if row.Block == BlockHomeAway && row.Metric == stats.MetricGames {
			assert.Equal(t, 2.0, *row.HomeValue)
			assert.Equal(t, 2.0, *row.AwayValue)
		}
	}
}

func TestTeamMatchupOneSideMissing(t *testing.T) {
	up := newFakeUpstream()
	up.team[seasonKey{bosID, 2024}] = teamLog("BOS", 5, 110)

	rep, err := newTestBuilder(up, &recorder{}).TeamMatchup(context.Background(), MatchupRequest{Home: "BOS", Away: "LAL", Season: 2024})
	require.NoError(t, err)
	require.NotNil(t, rep)
	for _, row := range rep.Rows {
		assert.NotNil(t, row.HomeValue)
		assert.Nil(t, row.AwayValue)
		assert.Equal(t, stats.FlagNone, row.HomeFlag)
	}
	assert.Zero(t, rep.Summary.H2HGames)
}

func TestTeamMatchupAbsent(t *testing.T) {
	rec := &recorder{}
	b := newTestBuilder(newFakeUpstream(), rec)

	rep, err := b.TeamMatchup(context.Background(), MatchupRequest{Home: "Springfield", Away: "LAL"})
	assert.NoError(t, err)
	assert.Nil(t, rep)

	rep, err = b.TeamMatchup(context.Background(), MatchupRequest{Home: "BOS", Away: "LAL"})
	assert.NoError(t, err)
	assert.Nil(t, rep, "no games for either team")

	assert.Equal(t, []string{"matchup:absent", "matchup:absent"}, rec.outcomes)
}

// --------------------------------------------------------------------------
// Head to head
// --------------------------------------------------------------------------

func TestHeadToHead(t *testing.T) {
	up := newFakeUpstream()
	for _, season := range []int{2024, 2023} {
		date := time.Date(season+1, 1, 15, 0, 0, 0, 0, time.UTC)
		id := fmt.Sprintf("h%d", season)
		up.team[seasonKey{bosID, season}] = []provider.GameLogEntry{entry(id, date, "BOS @ LAL", teamBox(118))}
		up.team[seasonKey{lalID, season}] = []provider.GameLogEntry{entry(id, date, "LAL vs. BOS", teamBox(110))}
	}

	rep, err := newTestBuilder(up, &recorder{}).HeadToHead(context.Background(), H2HRequest{
		Home: "Celtics", Away: "Lakers", Season: 2024, LastN: 6, MaxSeasonsBack: 3,
	})
	require.NoError(t, err)
	require.NotNil(t, rep)
	require.Len(t, rep.Rows, 2)

	first := rep.Rows[0]
	assert.Equal(t, "h2024", first.GameID)
	assert.Equal(t, "LAL", first.HomeTeam)
	assert.Equal(t, 110.0, first.HomePoints)
	assert.Equal(t, stats.FlagBetter, first.AwayFlag)
	assert.Equal(t, 228.0, first.TotalPoints)

	assert.Equal(t, 2, rep.Summary.Games)
	assert.Equal(t, 228.0, rep.Summary.AvgTotalPoints)
	assert.Equal(t, "2024-25", rep.Summary.StartSeason)
	assert.Equal(t, 3, rep.Summary.SeasonsBack)
}

func TestHeadToHeadNoMeetingsIsAbsent(t *testing.T) {
	up := newFakeUpstream()
	for _, season := range []int{2024, 2023, 2022} {
		up.team[seasonKey{bosID, season}] = teamLog("BOS", 4, 110)
		up.team[seasonKey{lalID, season}] = teamLog("LAL", 4, 100)
	}
	rec := &recorder{}

	rep, err := newTestBuilder(up, rec).HeadToHead(context.Background(), H2HRequest{
		Home: "BOS", Away: "LAL", Season: 2024, MaxSeasonsBack: 3,
	})
	assert.NoError(t, err)
	assert.Nil(t, rep)
	assert.Equal(t, []string{"h2h:absent"}, rec.outcomes)
}

// --------------------------------------------------------------------------
// Player lines
// --------------------------------------------------------------------------

func playerLog(n int) []provider.GameLogEntry {
	var out []provider.GameLogEntry
	start := time.Date(2025, 3, 30, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		pts, reb := 30.0, 8.0
		if i%2 == 1 {
			pts, reb = 22, 7
		}
		out = append(out, entry(fmt.Sprintf("g%02d", i), start.AddDate(0, 0, -2*i), "BOS vs. NYK", map[provider.Column]float64{
			provider.ColPoints: pts, provider.ColRebounds: reb, provider.ColAssists: 5,
			provider.ColThreesMade: 3, provider.ColSteals: 1, provider.ColBlocks: 1,
		}))
	}
	return out
}

func TestPlayerLinesTatum(t *testing.T) {
	up := newFakeUpstream()
	up.player[seasonKey{tatumID, 2024}] = playerLog(14)

	rep, err := newTestBuilder(up, &recorder{}).PlayerLines(context.Background(), PlayerRequest{
		Name:   "Jayson Tatum",
		Season: 2024,
		Lines:  []stats.Line{{Key: stats.KeyPoints, Threshold: 26}, {Key: stats.KeyRebounds, Threshold: 7.5}},
		LastN:  10,
	})
	require.NoError(t, err)
	require.NotNil(t, rep)
	require.Len(t, rep.Rows, 10)

	for _, row := range rep.Rows {
		require.Len(t, row.Cells, 2)
		pts := row.Cells[0]
		assert.Equal(t, "PTS", pts.Label)
		assert.Equal(t, "26.0+", pts.Line)
		assert.Equal(t, pts.Value >= 26, pts.Hit)
		assert.False(t, row.Approximate)
	}

	s := rep.Summary
	assert.Equal(t, "Jayson Tatum", s.Player.FullName)
	assert.Empty(t, s.OtherCandidates)
	assert.Equal(t, "Full game", s.PeriodLabel)
	assert.Equal(t, 10, s.Games)
	assert.Equal(t, 34.5, s.AvgMinutes)
	require.Len(t, s.Lines, 2)
	assert.Equal(t, 5, s.Lines[0].Hits)
	assert.Equal(t, 50.0, s.Lines[0].HitRate)
	assert.Equal(t, "7.5+", s.Lines[1].Line)
}

func TestPlayerLinesUnknownKeyFailsFast(t *testing.T) {
	up := newFakeUpstream()
	up.player[seasonKey{tatumID, 2024}] = playerLog(10)
	rec := &recorder{}

	rep, err := newTestBuilder(up, rec).PlayerLines(context.Background(), PlayerRequest{
		Name:  "Jayson Tatum",
		Lines: []stats.Line{{Key: stats.KeyPoints, Threshold: 26}, {Key: "xyz", Threshold: 1}},
	})
	var ve *stats.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, stats.AllowedKeys(), ve.Allowed)
	assert.Nil(t, rep)
	assert.Zero(t, up.count(), "nothing fetched before validation")
	assert.Equal(t, []string{"player:invalid"}, rec.outcomes)
}

func TestPlayerLinesInvalidPeriod(t *testing.T) {
	_, err := newTestBuilder(newFakeUpstream(), &recorder{}).PlayerLines(context.Background(), PlayerRequest{
		Name:   "Tatum",
		Lines:  []stats.Line{{Key: stats.KeyPoints, Threshold: 26}},
		Period: 5,
	})
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestPlayerLinesPeriodFallsBackToApproximate(t *testing.T) {
	up := newFakeUpstream()
	up.player[seasonKey{tatumID, 2024}] = playerLog(3)
	up.periods[fmt.Sprintf("%d/g00/1", tatumID)] = &provider.PeriodStats{
		GameID: "g00", PlayerID: tatumID, Period: 1, Minutes: "11:00",
		Stats: map[provider.Column]float64{provider.ColPoints: 9, provider.ColRebounds: 2},
	}
	up.periods[fmt.Sprintf("%d/g02/1", tatumID)] = &provider.PeriodStats{
		GameID: "g02", PlayerID: tatumID, Period: 1, Minutes: "9:00",
		Stats: map[provider.Column]float64{provider.ColPoints: 4, provider.ColRebounds: 1},
	}

	rep, err := newTestBuilder(up, &recorder{}).PlayerLines(context.Background(), PlayerRequest{
		Name:   "tatum",
		Season: 2024,
		Lines:  []stats.Line{{Key: stats.KeyPoints, Threshold: 8}},
		Period: 1,
	})
	require.NoError(t, err)
	require.Len(t, rep.Rows, 3)

	assert.Equal(t, 9.0, rep.Rows[0].Cells[0].Value)
	assert.Equal(t, "11:00", rep.Rows[0].Minutes)
	assert.True(t, rep.Rows[1].Approximate)
	assert.Equal(t, 22.0, rep.Rows[1].Cells[0].Value, "full-game value used")
	assert.False(t, rep.Rows[2].Approximate)

	s := rep.Summary
	assert.Equal(t, 1, s.Period)
	assert.Equal(t, "Q1", s.PeriodLabel)
	assert.Equal(t, 1, s.ApproximateGames)
	assert.Equal(t, 10.0, s.AvgMinutes, "only quarter minutes are averaged")
	assert.Equal(t, 2, s.Lines[0].Hits)
}

func TestPlayerLinesAmbiguousAndAbsent(t *testing.T) {
	up := newFakeUpstream()
	up.player[seasonKey{1, 2024}] = playerLog(2)
	b := newTestBuilder(up, &recorder{})
	lines := []stats.Line{{Key: stats.KeyPRA, Threshold: 30}}

	rep, err := b.PlayerLines(context.Background(), PlayerRequest{Name: "jay", Season: 2024, Lines: lines})
	require.NoError(t, err)
	require.NotNil(t, rep)
	assert.Equal(t, "Jaylen Brown", rep.Summary.Player.FullName)
	require.Len(t, rep.Summary.OtherCandidates, 1)
	assert.Equal(t, "Jayson Tatum", rep.Summary.OtherCandidates[0].FullName)

	rep, err = b.PlayerLines(context.Background(), PlayerRequest{Name: "Wembanyama", Lines: lines})
	assert.NoError(t, err)
	assert.Nil(t, rep)

	rep, err = b.PlayerLines(context.Background(), PlayerRequest{Name: "Anthony Davis", Lines: lines})
	assert.NoError(t, err)
	assert.Nil(t, rep, "no games this season")
}

// --------------------------------------------------------------------------
// Scan and schedule
// --------------------------------------------------------------------------

func TestScan(t *testing.T) {
	up := newFakeUpstream()
	up.player[seasonKey{1, 2024}] = playerLog(10) // pts 30/22 alternating: 50%
	always := playerLog(10)
	for i := range always {
		always[i].Stats[provider.ColPoints] = 27
	}
	up.player[seasonKey{tatumID, 2024}] = always
	up.failing[seasonKey{3, 2024}] = true
	up.player[seasonKey{5, 2024}] = playerLog(4)
	up.schedule["2025-01-12"] = []provider.ScheduledGame{{
		GameID: "0022400600", DateEST: time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
		HomeTeamID: bosID, VisitorTeamID: lalID,
	}}

	rep, err := newTestBuilder(up, &recorder{}).Scan(context.Background(), ScanRequest{
		Season: 2024, Key: stats.KeyPoints, Line: 25, LastN: 10, MinGames: 8, MinHitRate: 0.7,
	})
	require.NoError(t, err)
	require.NotNil(t, rep)

	require.Len(t, rep.Rows, 1)
	row := rep.Rows[0]
	assert.Equal(t, "Jayson Tatum", row.Player)
	assert.Equal(t, "BOS", row.Team)
	assert.Equal(t, "12/01/2025", row.NextGame)
	assert.Equal(t, 10, row.Hits)
	assert.Equal(t, 100.0, row.HitRate)
	assert.Equal(t, "25.0+", row.Line)

	s := rep.Summary
	assert.Equal(t, 4, s.Scanned, "inactive players are not scanned")
	assert.Equal(t, 2, s.Skipped)
	assert.Equal(t, 1, s.Matched)
	require.Len(t, s.Errors, 1)
	assert.Contains(t, s.Errors[0], "Anthony Davis")
}

func TestScanSortsByHitRate(t *testing.T) {
	up := newFakeUpstream()
	up.player[seasonKey{1, 2024}] = playerLog(10)
	up.player[seasonKey{tatumID, 2024}] = playerLog(9)

	rep, err := newTestBuilder(up, &recorder{}).Scan(context.Background(), ScanRequest{
		Season: 2024, Key: stats.KeyPoints, Line: 25, MinHitRate: 0.5, MaxPlayers: 2,
	})
	require.NoError(t, err)
	require.Len(t, rep.Rows, 2)
	assert.Equal(t, "Jayson Tatum", rep.Rows[0].Player) // 5 of 9
	assert.Equal(t, 55.6, rep.Rows[0].HitRate)
	assert.Equal(t, 50.0, rep.Rows[1].HitRate)
	assert.Equal(t, "", rep.Rows[0].NextGame)
	assert.Equal(t, 2, rep.Summary.Scanned)
}

func TestScanRejectsUnknownKey(t *testing.T) {
	up := newFakeUpstream()
	_, err := newTestBuilder(up, &recorder{}).Scan(context.Background(), ScanRequest{Key: "xyz", Line: 1})
	var ve *stats.ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Zero(t, up.count())
}

func TestNextGame(t *testing.T) {
	up := newFakeUpstream()
	up.schedule["2025-01-14"] = []provider.ScheduledGame{{
		DateEST: time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC), HomeTeamID: lalID, VisitorTeamID: 1610612744,
	}}
	b := newTestBuilder(up, &recorder{})

	date, ok := b.NextGame(context.Background(), "LAL")
	require.True(t, ok)
	assert.Equal(t, "14/01/2025", date)

	_, ok = b.NextGame(context.Background(), "BOS")
	assert.False(t, ok)

	_, ok = b.NextGame(context.Background(), "XXX")
	assert.False(t, ok)
}

func TestLocalDate(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	est := time.Date(2025, 1, 12, 19, 30, 0, 0, time.UTC)
	assert.Equal(t, "13/01/2025", localDate(est, tokyo))
}
