package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/albapepper/bballscorer/internal/api/respond"
	"github.com/albapepper/bballscorer/internal/export"
	"github.com/albapepper/bballscorer/internal/provider"
	"github.com/albapepper/bballscorer/internal/report"
	"github.com/albapepper/bballscorer/internal/stats"
)

// PlayerLines evaluates stat lines on a player's recent games.
// @Summary Player line report
// @Description Evaluates each requested line (key:threshold) on the player's last N games, optionally for a single quarter. Allowed keys: pts, reb, ast, fg3m, stl, blk, pra, ra, pr, pa, sb, pb, dd, td.
// @Tags players
// @Produce json
// @Produce text/csv
// @Param name query string true "Player name or fragment"
// @Param lines query string true "Comma-separated lines, e.g. pts:26,reb:7.5"
// @Param season query int false "Season start year (default current season)"
// @Param last_n query int false "Games (1-82, default 10)"
// @Param period query string false "1-4 for a quarter, empty or full for the whole game"
// @Param format query string false "csv for a CSV download"
// @Success 200 {object} report.PlayerReport
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/players/lines [get]
func (h *Handler) PlayerLines(w http.ResponseWriter, r *http.Request) {
	name, ok := requiredParam(w, r, "name")
	if !ok {
		return
	}
	rawLines, ok := requiredParam(w, r, "lines")
	if !ok {
		return
	}
	lines, err := stats.ParseLines(rawLines)
	if err != nil {
		var ve *stats.ValidationError
		if errors.As(err, &ve) {
			writeBuildError(w, err)
			return
		}
		respond.WriteError(w, http.StatusBadRequest, "INVALID_LINES", err.Error())
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
	period, ok := periodParam(w, r)
	if !ok {
		return
	}

	rep, err := h.builder.PlayerLines(r.Context(), report.PlayerRequest{
		Name:   name,
		Season: season,
		Lines:  lines,
		LastN:  lastN,
		Period: period,
	})
	if err != nil {
		writeBuildError(w, err)
		return
	}
	if rep == nil {
		writeNotFound(w, "No games found for player "+name)
		return
	}
	h.writeResult(w, r, report.KindPlayer, rep.Summary.ReportID, rep, func() export.Table {
		return export.PlayerTable(rep)
	})
}

// PlayerSearch lists catalog players matching a name fragment.
// @Summary Player search
// @Description Lists every catalog player whose name contains the query, in catalog order.
// @Tags players
// @Produce json
// @Produce text/csv
// @Param q query string true "Name fragment"
// @Param format query string false "csv for a CSV download"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/players/search [get]
func (h *Handler) PlayerSearch(w http.ResponseWriter, r *http.Request) {
	q, ok := requiredParam(w, r, "q")
	if !ok {
		return
	}
	players := h.builder.Catalog().FindPlayers(q)
	if players == nil {
		players = []provider.Player{}
	}

	result := map[string]interface{}{
		"rows": players,
		"summary": map[string]interface{}{
			"query": strings.TrimSpace(q),
			"count": len(players),
		},
	}
	h.writeResult(w, r, "players", "", result, func() export.Table {
		return export.PlayersTable(players)
	})
}
