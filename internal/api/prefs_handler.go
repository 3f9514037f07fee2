package api

import (
	"net/http"

	"github.com/recitelabs/recite-api/internal/api/shared"
	"github.com/recitelabs/recite-api/internal/domain"
	"github.com/recitelabs/recite-api/internal/service"
)

// PrefsHandler handles the personalization preferences endpoints.
type PrefsHandler struct {
	prefsService *service.PrefsService
}

// NewPrefsHandler creates a PrefsHandler.
func NewPrefsHandler(prefsService *service.PrefsService) *PrefsHandler {
	return &PrefsHandler{prefsService: prefsService}
}

// GetPrefs handles GET /prefs.
func (h *PrefsHandler) GetPrefs(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.prefsService.Get(r.Context())
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, PrefsResponse{Prefs: prefs})
}

// UpdatePrefs handles PUT /prefs. Out-of-range numeric fields are
// clamped, not rejected.
func (h *PrefsHandler) UpdatePrefs(w http.ResponseWriter, r *http.Request) {
	var req domain.PersonalizationPrefs
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	prefs, err := h.prefsService.Update(r.Context(), req)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, PrefsResponse{Prefs: prefs})
}
