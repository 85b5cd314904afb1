package handler

import (
	"net/http"
	"strings"

	"github.com/albapepper/bballscorer/internal/api/respond"
	"github.com/albapepper/bballscorer/internal/export"
	"github.com/albapepper/bballscorer/internal/report"
)

// TeamMatchup compares two teams' recent form.
// @Summary Team matchup report
// @Description Compares two teams over their last N games and over home-at-home / away-on-road games, flagging the better side of each metric. The summary carries the in-season head-to-head count and average combined points.
// @Tags teams
// @Produce json
// @Produce text/csv
// @Param home query string true "Home team (abbreviation, name, nickname or city)"
// @Param away query string true "Away team (abbreviation, name, nickname or city)"
// @Param season query int false "Season start year (default current season)"
// @Param last_n query int false "Overall window (1-82, default 10)"
// @Param last_n_home_away query int false "Home/away window (1-82, default 8)"
// @Param last_n_h2h query int false "In-season head-to-head window (1-20, default 6)"
// @Param format query string false "csv for a CSV download"
// @Success 200 {object} report.MatchupReport
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/teams/matchup [get]
func (h *Handler) TeamMatchup(w http.ResponseWriter, r *http.Request) {
	home, ok := requiredParam(w, r, "home")
	if !ok {
		return
	}
	away, ok := requiredParam(w, r, "away")
	if !ok {
		return
	}
	season, ok := h.seasonParam(w, r)
	if !ok {
		return
	}
	lastN, ok := intParam(w, r, "last_n", report.DefaultLastN, 1, maxLastN)
	if !ok {
		return
	}
	lastNHomeAway, ok := intParam(w, r, "last_n_home_away", report.DefaultLastNHomeAway, 1, maxLastN)
	if !ok {
		return
	}
	lastNH2H, ok := intParam(w, r, "last_n_h2h", report.DefaultLastNH2H, 1, maxLastNH2H)
	if !ok {
		return
	}

	rep, err := h.builder.TeamMatchup(r.Context(), report.MatchupRequest{
		Home:          home,
		Away:          away,
		Season:        season,
		LastN:         lastN,
		LastNHomeAway: lastNHomeAway,
		LastNH2H:      lastNH2H,
	})
	if err != nil {
		writeBuildError(w, err)
		return
	}
	if rep == nil {
		writeNotFound(w, "No matchup data for "+home+" vs "+away)
		return
	}
	h.writeResult(w, r, report.KindMatchup, rep.Summary.ReportID, rep, func() export.Table {
		return export.MatchupTable(rep)
	})
}

// TeamH2H lists recent meetings between two teams.
// @Summary Head-to-head report
// @Description Lists the most recent meetings between two teams, searching backward season by season.
// @Tags teams
// @Produce json
// @Produce text/csv
// @Param home query string true "First team"
// @Param away query string true "Second team"
// @Param season query int false "Season to start searching from (default current season)"
// @Param last_n_h2h query int false "Number of meetings (1-20, default 6)"
// @Param max_seasons_back query int false "Seasons to search (1-25, default from config)"
// @Param format query string false "csv for a CSV download"
// @Success 200 {object} report.H2HReport
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/teams/h2h [get]
func (h *Handler) TeamH2H(w http.ResponseWriter, r *http.Request) {
	home, ok := requiredParam(w, r, "home")
	if !ok {
		return
	}
	away, ok := requiredParam(w, r, "away")
	if !ok {
		return
	}
	season, ok := h.seasonParam(w, r)
	if !ok {
		return
	}
	lastN, ok := intParam(w, r, "last_n_h2h", report.DefaultLastNH2H, 1, maxLastNH2H)
	if !ok {
		return
	}
	seasonsBack, ok := intParam(w, r, "max_seasons_back", h.cfg.H2HMaxSeasonsBack, 1, maxSeasonsBackCap)
	if !ok {
		return
	}

	rep, err := h.builder.HeadToHead(r.Context(), report.H2HRequest{
		Home:           home,
		Away:           away,
		Season:         season,
		LastN:          lastN,
		MaxSeasonsBack: seasonsBack,
	})
	if err != nil {
		writeBuildError(w, err)
		return
	}
	if rep == nil {
		writeNotFound(w, "No head-to-head games found for "+home+" vs "+away)
		return
	}
	h.writeResult(w, r, report.KindH2H, rep.Summary.ReportID, rep, func() export.Table {
		return export.H2HTable(rep)
	})
}

// TeamNextGame finds a team's next scheduled game.
// @Summary Next scheduled game
// @Description Scans the next 30 days of scoreboards and returns the date of the team's next game in the configured local timezone (dd/mm/yyyy).
// @Tags teams
// @Produce json
// @Param team query string true "Team (abbreviation, name, nickname or city)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/teams/next_game [get]
func (h *Handler) TeamNextGame(w http.ResponseWriter, r *http.Request) {
	query, ok := requiredParam(w, r, "team")
	if !ok {
		return
	}
	team, err := h.builder.Catalog().ResolveTeam(query)
	if err != nil {
		writeNotFound(w, err.Error())
		return
	}

	date, found := h.builder.NextGame(r.Context(), team.Abbreviation)
	if !found {
		writeNotFound(w, "No upcoming game for "+strings.ToUpper(team.Abbreviation)+" in the next 30 days")
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"team":      team,
		"next_game": date,
	})
}
