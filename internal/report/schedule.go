package report

import (
	"context"
	"time"
	_ "time/tzdata"
)

// nextGameHorizon is how many days ahead NextGame looks.
const nextGameHorizon = 30

var eastern = loadEastern()

func loadEastern() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return time.FixedZone("EST", -5*60*60)
	}
	return loc
}

// NextGame finds the team's next scheduled game within the next 30 days and
// returns its date as dd/mm/yyyy in the configured local timezone. Days whose
// scoreboard cannot be fetched are skipped. ok is false when no game is found.
func (b *Builder) NextGame(ctx context.Context, teamAbbr string) (date string, ok bool) {
	team, found := b.catalog.TeamByAbbreviation(teamAbbr)
	if !found {
		return "", false
	}

	now := b.now().In(b.settings.Location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	for i := 0; i < nextGameHorizon; i++ {
		day := today.AddDate(0, 0, i)
		games, err := b.upstream.Scoreboard(ctx, day)
		if err != nil {
			b.logger.Debug("scoreboard unavailable", "date", day.Format("2006-01-02"), "error", err)
			continue
		}
		for _, g := range games {
			if g.Involves(team.ID) {
				return localDate(g.DateEST, b.settings.Location), true
			}
		}
	}
	return "", false
}

// localDate reads a scoreboard timestamp, which carries Eastern wall-clock
// time without a zone, and renders its date in loc.
func localDate(est time.Time, loc *time.Location) string {
	wall := time.Date(est.Year(), est.Month(), est.Day(), est.Hour(), est.Minute(), est.Second(), 0, eastern)
	return wall.In(loc).Format("02/01/2006")
}
