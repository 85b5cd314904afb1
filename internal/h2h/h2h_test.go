package h2h

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/bballscorer/internal/provider"
	"github.com/albapepper/bballscorer/internal/stats"
)

var (
	bos = provider.Team{ID: 1610612738, Abbreviation: "BOS"}
	lal = provider.Team{ID: 1610612747, Abbreviation: "LAL"}
)

type seasonKey struct{ team, season int }

type fakeSource struct {
	logs  map[seasonKey][]provider.GameLogEntry
	fail  map[seasonKey]bool
	calls []seasonKey
}

func newFakeSource() *fakeSource {
	return &fakeSource{logs: map[seasonKey][]provider.GameLogEntry{}, fail: map[seasonKey]bool{}}
}

func (f *fakeSource) TeamSeason(ctx context.Context, teamID, season int) ([]provider.GameLogEntry, error) {
	k := seasonKey{teamID, season}
	f.calls = append(f.calls, k)
	if f.fail[k] {
		return nil, &provider.RetrievalError{Endpoint: "teamgamelog", Err: errors.New("unreachable")}
	}
	return f.logs[k], nil
}

func logEntry(gameID string, date time.Time, matchup string, pts float64) provider.GameLogEntry {
	team, opp, venue := provider.ParseMatchup(matchup)
	return provider.GameLogEntry{
		GameID: gameID, Date: date, Matchup: matchup,
		TeamAbbr: team, Opponent: opp, Venue: venue,
		Stats: map[provider.Column]float64{provider.ColPoints: pts},
	}
}

// meeting records one game in both teams' logs. BOS hosts when bosHome.
func (f *fakeSource) meeting(season int, id string, date time.Time, bosHome bool, bosPts, lalPts float64) {
	bosMatchup, lalMatchup := "BOS @ LAL", "LAL vs. BOS"
	if bosHome {
		bosMatchup, lalMatchup = "BOS vs. LAL", "LAL @ BOS"
	}
	kb, kl := seasonKey{bos.ID, season}, seasonKey{lal.ID, season}
	f.logs[kb] = append(f.logs[kb], logEntry(id, date, bosMatchup, bosPts))
	f.logs[kl] = append(f.logs[kl], logEntry(id, date, lalMatchup, lalPts))
}

func (f *fakeSource) filler(season int, team provider.Team, n int) {
	k := seasonKey{team.ID, season}
	for i := 0; i < n; i++ {
		date := time.Date(season, 11, 1+i, 0, 0, 0, 0, time.UTC)
		f.logs[k] = append(f.logs[k], logEntry(fmt.Sprintf("f%d-%d-%d", team.ID, season, i), date, team.Abbreviation+" vs. NYK", 100))
	}
}

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestFindOrientsByVenue(t *testing.T) {
	src := newFakeSource()
	src.filler(2024, bos, 3)
	src.filler(2024, lal, 3)
	src.meeting(2024, "g1", d(2024, 11, 20), false, 118, 110) // BOS won at LAL
	src.meeting(2024, "g2", d(2025, 1, 15), true, 101, 101)

	games := NewMatcher(src, nil).Find(context.Background(), Query{
		TeamA: bos, TeamB: lal, StartSeason: 2024, Count: 6, MaxSeasonsBack: 1, FloorSeason: 2000,
	})
	require.Len(t, games, 2)

	assert.Equal(t, "g2", games[0].GameID)
	assert.Equal(t, "BOS", games[0].HomeTeam)
	assert.Equal(t, stats.FlagNone, games[0].HomeFlag, "ties flag neither side")
	assert.Equal(t, stats.FlagNone, games[0].AwayFlag)

	g1 := games[1]
	assert.Equal(t, "LAL", g1.HomeTeam)
	assert.Equal(t, "BOS", g1.AwayTeam)
	assert.Equal(t, 110.0, g1.HomePoints)
	assert.Equal(t, 118.0, g1.AwayPoints)
	assert.Equal(t, stats.FlagWorse, g1.HomeFlag)
	assert.Equal(t, stats.FlagBetter, g1.AwayFlag)
	assert.Equal(t, 228.0, g1.TotalPoints())
}

func TestFindIsSymmetric(t *testing.T) {
	src := newFakeSource()
	src.meeting(2024, "g1", d(2024, 11, 20), false, 118, 110)
	src.meeting(2024, "g2", d(2025, 1, 15), true, 99, 104)
	src.meeting(2023, "g3", d(2024, 2, 1), true, 120, 111)

	m := NewMatcher(src, nil)
	base := Query{StartSeason: 2024, Count: 6, MaxSeasonsBack: 3, FloorSeason: 2000}

	qa := base
	qa.TeamA, qa.TeamB = bos, lal
	qb := base
	qb.TeamA, qb.TeamB = lal, bos

	ab := m.Find(context.Background(), qa)
	ba := m.Find(context.Background(), qb)
	require.Len(t, ab, 3)
	require.Equal(t, len(ab), len(ba))
	for i := range ab {
		assert.Equal(t, ab[i].GameID, ba[i].GameID)
		assert.Equal(t, ab[i].HomeTeam, ba[i].HomeTeam)
		assert.Equal(t, ab[i].HomePoints, ba[i].HomePoints)
		assert.Equal(t, ab[i].TotalPoints(), ba[i].TotalPoints())
	}
}

func TestFindStopsAfterFullSeason(t *testing.T) {
	src := newFakeSource()
	src.meeting(2024, "a1", d(2024, 11, 20), true, 110, 100)
	src.meeting(2024, "a2", d(2025, 1, 15), false, 105, 108)
	src.meeting(2023, "b1", d(2023, 12, 25), true, 126, 115)
	src.meeting(2023, "b2", d(2024, 2, 1), false, 114, 105)
	src.meeting(2022, "c1", d(2023, 1, 10), true, 111, 109)

	games := NewMatcher(src, nil).Find(context.Background(), Query{
		TeamA: bos, TeamB: lal, StartSeason: 2024, Count: 3, MaxSeasonsBack: 5, FloorSeason: 2000,
	})
	require.Len(t, games, 3)
	assert.Equal(t, []string{"a2", "a1", "b2"}, []string{games[0].GameID, games[1].GameID, games[2].GameID})

	for _, c := range src.calls {
		assert.NotEqual(t, 2022, c.season, "2022 is never fetched once 2023 fills the count")
	}
}

func TestFindSkipsFailedAndEmptySeasons(t *testing.T) {
	src := newFakeSource()
	src.fail[seasonKey{bos.ID, 2024}] = true
	src.filler(2023, bos, 2)
	src.filler(2023, lal, 2)
	src.meeting(2022, "c1", d(2023, 1, 10), true, 111, 109)

	games := NewMatcher(src, nil).Find(context.Background(), Query{
		TeamA: bos, TeamB: lal, StartSeason: 2024, Count: 6, MaxSeasonsBack: 3, FloorSeason: 2000,
	})
	require.Len(t, games, 1)
	assert.Equal(t, 2022, games[0].Season)
}

func TestFindNoMatchesIsAbsent(t *testing.T) {
	src := newFakeSource()
	for _, s := range []int{2024, 2023, 2022} {
		src.filler(s, bos, 5)
		src.filler(s, lal, 5)
	}

	games := NewMatcher(src, nil).Find(context.Background(), Query{
		TeamA: bos, TeamB: lal, StartSeason: 2024, Count: 6, MaxSeasonsBack: 3, FloorSeason: 2000,
	})
	assert.Nil(t, games)
	assert.Len(t, src.calls, 6)
}

func TestFindRespectsFloor(t *testing.T) {
	src := newFakeSource()
	src.meeting(2001, "x", d(2002, 1, 1), true, 90, 88)
	src.meeting(1999, "y", d(2000, 1, 1), true, 90, 88)

	games := NewMatcher(src, nil).Find(context.Background(), Query{
		TeamA: bos, TeamB: lal, StartSeason: 2001, Count: 6, MaxSeasonsBack: 5, FloorSeason: 2000,
	})
	require.Len(t, games, 1)
	assert.Equal(t, "x", games[0].GameID)
}

func TestAverageTotalPoints(t *testing.T) {
	assert.Equal(t, 0.0, AverageTotalPoints(nil))
	assert.Equal(t, 215.5, AverageTotalPoints([]Game{
		{HomePoints: 110, AwayPoints: 100},
		{HomePoints: 120, AwayPoints: 101},
	}))
}
