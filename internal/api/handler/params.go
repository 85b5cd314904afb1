package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/albapepper/bballscorer/internal/api/respond"
)

// Query parameter bounds.
const (
	maxLastN          = 82
	maxLastNH2H       = 20
	maxSeasonsBackCap = 25
)

// intParam reads an optional bounded integer. On a bad value it writes a 400
// and returns ok=false.
func intParam(w http.ResponseWriter, r *http.Request, name string, def, lo, hi int) (int, bool) {
	s := strings.TrimSpace(r.URL.Query().Get(name))
	if s == "" {
		return def, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < lo || n > hi {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_PARAM",
			fmt.Sprintf("%s must be an integer between %d and %d", name, lo, hi))
		return 0, false
	}
	return n, true
}

// seasonParam reads ?season, defaulting to the current season.
func (h *Handler) seasonParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	s := strings.TrimSpace(r.URL.Query().Get("season"))
	if s == "" {
		return h.cfg.CurrentSeason, true
	}
	season, err := strconv.Atoi(s)
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_SEASON", "season must be an integer")
		return 0, false
	}
	if !h.cfg.ValidSeason(season) {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_SEASON",
			fmt.Sprintf("Season must be between %d and %d", h.cfg.H2HFloorSeason, time.Now().Year()+1))
		return 0, false
	}
	return season, true
}

// requiredParam reads a non-empty string parameter.
func requiredParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_PARAM", name+" query parameter is required")
		return "", false
	}
	return v, true
}

// periodParam reads ?period: empty or "full" is the full game, 1-4 a quarter.
func periodParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	s := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("period")))
	if s == "" || s == "full" || s == "0" {
		return 0, true
	}
	p, err := strconv.Atoi(strings.TrimPrefix(s, "q"))
	if err != nil || p < 1 || p > 4 {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_PERIOD", "period must be 1-4 or full")
		return 0, false
	}
	return p, true
}
