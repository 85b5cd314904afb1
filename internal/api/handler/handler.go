// Package handler provides HTTP handlers for all API endpoints.
// Handlers parse and bound query parameters, call the report builder, and
// write the {rows, summary} result as JSON or, with ?format=csv, as a CSV
// download. Nothing is cached between requests except the autofill catalog.
package handler

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/albapepper/bballscorer/internal/api/respond"
	"github.com/albapepper/bballscorer/internal/config"
	"github.com/albapepper/bballscorer/internal/export"
	"github.com/albapepper/bballscorer/internal/report"
	"github.com/albapepper/bballscorer/internal/stats"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	builder *report.Builder
	cfg     *config.Config
	logger  *slog.Logger
	started time.Time

	autofillOnce sync.Once
	autofill     []byte
	autofillETag string
}

// New creates a Handler with shared dependencies.
func New(builder *report.Builder, cfg *config.Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		builder: builder,
		cfg:     cfg,
		logger:  logger,
		started: time.Now(),
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status, and the available report endpoints.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":           "bballscorer API",
		"version":        "1.0.0",
		"status":         "running",
		"docs":           "/docs/",
		"current_season": config.SeasonLabel(h.cfg.CurrentSeason),
		"reports": []string{
			"/api/v1/teams/matchup",
			"/api/v1/teams/h2h",
			"/api/v1/teams/next_game",
			"/api/v1/players/lines",
			"/api/v1/players/search",
			"/api/v1/autofill",
		},
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status, uptime and catalog size.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	cat := h.builder.Catalog()
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":         "healthy",
		"uptime_seconds": int(time.Since(h.started).Seconds()),
		"teams":          len(cat.Teams()),
		"active_players": len(cat.ActivePlayers()),
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
}

// --------------------------------------------------------------------------
// Shared response helpers
// --------------------------------------------------------------------------

// writeBuildError maps a builder error onto the error shape. Builders only
// fail on invalid input.
func writeBuildError(w http.ResponseWriter, err error) {
	var ve *stats.ValidationError
	switch {
	case errors.As(err, &ve):
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_STAT", err.Error(), allowedKeys(ve.Allowed))
	case errors.Is(err, report.ErrInvalidPeriod):
		respond.WriteError(w, http.StatusBadRequest, "INVALID_PERIOD", err.Error())
	default:
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Report could not be built")
	}
}

func allowedKeys(keys []stats.StatKey) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = string(k)
	}
	return strings.Join(parts, ",")
}

func writeNotFound(w http.ResponseWriter, message string) {
	respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", message)
}

// wantsCSV reports whether the caller asked for a CSV download.
func wantsCSV(r *http.Request) bool {
	return strings.EqualFold(r.URL.Query().Get("format"), "csv")
}

// writeResult sends a report as JSON, or renders it as CSV on request.
func (h *Handler) writeResult(w http.ResponseWriter, r *http.Request, kind, reportID string, v interface{}, table func() export.Table) {
	if !wantsCSV(r) {
		respond.WriteJSONObject(w, http.StatusOK, v)
		return
	}
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, table()); err != nil {
		h.logger.Error("csv export failed", "kind", kind, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "EXPORT_FAILED", "CSV export failed")
		return
	}
	respond.WriteAttachment(w, "text/csv; charset=utf-8", export.Filename(kind, reportID), buf.Bytes())
}
