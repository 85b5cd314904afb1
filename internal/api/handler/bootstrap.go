package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/albapepper/bballscorer/internal/api/respond"
	"github.com/albapepper/bballscorer/internal/cache"
	"github.com/albapepper/bballscorer/internal/provider"
)

// autofillTTL is how long clients may reuse the autofill catalog.
const autofillTTL = time.Hour

type autofillBody struct {
	Teams   []provider.Team   `json:"teams"`
	Players []provider.Player `json:"players"`
}

// GetAutofill returns the team catalog plus active players.
// The catalog is immutable for the life of the process, so the body and its
// ETag are encoded once.
// @Summary Get autofill catalog
// @Description Returns every team and every active player, used for frontend search/autofill. Supports If-None-Match.
// @Tags bootstrap
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Success 304 "Not modified"
// @Router /api/v1/autofill [get]
func (h *Handler) GetAutofill(w http.ResponseWriter, r *http.Request) {
	h.autofillOnce.Do(func() {
		cat := h.builder.Catalog()
		body := autofillBody{Teams: cat.Teams(), Players: cat.ActivePlayers()}
		if body.Players == nil {
			body.Players = []provider.Player{}
		}
		data, err := json.Marshal(body)
		if err != nil {
			h.logger.Error("encode autofill catalog", "error", err)
			return
		}
		h.autofill = data
		h.autofillETag = cache.ComputeETag(data)
	})
	if h.autofill == nil {
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Autofill catalog unavailable")
		return
	}

	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), h.autofillETag) {
		respond.WriteNotModified(w, h.autofillETag)
		return
	}
	respond.WriteJSON(w, h.autofill, h.autofillETag, autofillTTL)
}
