// Package gamelog fetches team and player season game logs and cuts them into
// the windows the reports are computed over.
//
// A Fetcher lives for one report-build call. Season logs it has already
// fetched (or failed to fetch) are remembered for the rest of that call only.
package gamelog

import (
	"context"
	"log/slog"

	"github.com/albapepper/bballscorer/internal/cache"
	"github.com/albapepper/bballscorer/internal/provider"
)

// Source is the upstream game-log API.
type Source interface {
	TeamGameLog(ctx context.Context, teamID, season int) ([]provider.GameLogEntry, error)
	PlayerGameLog(ctx context.Context, playerID, season int) ([]provider.GameLogEntry, error)
}

type subject int

const (
	subjectTeam subject = iota
	subjectPlayer
)

type logKey struct {
	subject subject
	id      int
	season  int
}

// Fetcher retrieves season logs through a request-scoped memo.
type Fetcher struct {
	source Source
	memo   *cache.Memo[logKey, []provider.GameLogEntry]
	logger *slog.Logger
}

// NewFetcher creates a fetcher for a single report-build call.
func NewFetcher(source Source, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		source: source,
		memo:   cache.NewMemo[logKey, []provider.GameLogEntry](),
		logger: logger,
	}
}

// TeamSeason returns a team's entire season log, most recent first. A season
// with no games is reported as a RetrievalError wrapping provider.ErrNoRows.
func (f *Fetcher) TeamSeason(ctx context.Context, teamID, season int) ([]provider.GameLogEntry, error) {
	return f.season(ctx, logKey{subjectTeam, teamID, season}, "teamgamelog")
}

// PlayerSeason returns a player's entire season log, most recent first.
func (f *Fetcher) PlayerSeason(ctx context.Context, playerID, season int) ([]provider.GameLogEntry, error) {
	return f.season(ctx, logKey{subjectPlayer, playerID, season}, "playergamelog")
}

// TeamRecent returns the team's last n games of the season.
func (f *Fetcher) TeamRecent(ctx context.Context, teamID, season, n int) ([]provider.GameLogEntry, error) {
	entries, err := f.TeamSeason(ctx, teamID, season)
	if err != nil {
		return nil, err
	}
	return Recent(entries, n), nil
}

// PlayerRecent returns the player's last n games of the season.
func (f *Fetcher) PlayerRecent(ctx context.Context, playerID, season, n int) ([]provider.GameLogEntry, error) {
	entries, err := f.PlayerSeason(ctx, playerID, season)
	if err != nil {
		return nil, err
	}
	return Recent(entries, n), nil
}

// Stats exposes the memo counters for debug logging.
func (f *Fetcher) Stats() map[string]interface{} {
	return f.memo.Stats()
}

func (f *Fetcher) season(ctx context.Context, key logKey, endpoint string) ([]provider.GameLogEntry, error) {
	entries, err := f.memo.Do(key, func() ([]provider.GameLogEntry, error) {
		var (
			entries []provider.GameLogEntry
			err     error
		)
		if key.subject == subjectTeam {
			entries, err = f.source.TeamGameLog(ctx, key.id, key.season)
		} else {
			entries, err = f.source.PlayerGameLog(ctx, key.id, key.season)
		}
		if err != nil {
			return nil, err
		}
		if len(entries) == 0 {
			return nil, &provider.RetrievalError{Endpoint: endpoint, Err: provider.ErrNoRows}
		}
		provider.SortByDateDesc(entries)
		return entries, nil
	})
	if err != nil {
		f.logger.Debug("season log unavailable", "endpoint", endpoint, "id", key.id, "season", key.season, "error", err)
		return nil, err
	}

	out := make([]provider.GameLogEntry, len(entries))
	copy(out, entries)
	return out, nil
}

// --------------------------------------------------------------------------
// Windows
// --------------------------------------------------------------------------

// Recent returns the first n entries of a log already ordered most recent
// first, or the whole log when it is shorter. n <= 0 yields nothing.
func Recent(entries []provider.GameLogEntry, n int) []provider.GameLogEntry {
	if n <= 0 {
		return nil
	}
	if n > len(entries) {
		n = len(entries)
	}
	out := make([]provider.GameLogEntry, n)
	copy(out, entries[:n])
	return out
}

// AtVenue keeps the entries played at the given venue, preserving order.
func AtVenue(entries []provider.GameLogEntry, venue provider.Venue) []provider.GameLogEntry {
	var out []provider.GameLogEntry
	for _, e := range entries {
		if e.Venue == venue {
			out = append(out, e)
		}
	}
	return out
}

// SplitVenue separates home games from away games. Entries whose matchup
// could not be read belong to neither side.
func SplitVenue(entries []provider.GameLogEntry) (home, away []provider.GameLogEntry) {
	return AtVenue(entries, provider.VenueHome), AtVenue(entries, provider.VenueAway)
}
