package api

import (
	"database/sql"
	"net/http"

	"wardrobe/internal/store"
)

// SettingsHandler handles the preference endpoints.
type SettingsHandler struct {
	DB *sql.DB
}

// Get handles GET /api/settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := store.LoadSettings(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}
	jsonResponse(w, http.StatusOK, settings)
}

type updateSettingsRequest struct {
	SoundEnabled bool `json:"soundEnabled"`
	MusicEnabled bool `json:"musicEnabled"`
}

// Update handles PUT /api/settings. Toggles are written through
// immediately; the last-backup timestamp is not settable here.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings := &store.Settings{
		SoundEnabled: req.SoundEnabled,
		MusicEnabled: req.MusicEnabled,
	}
	if err := store.SaveSettings(r.Context(), h.DB, settings); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}

	saved, err := store.LoadSettings(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}
	jsonResponse(w, http.StatusOK, saved)
}
