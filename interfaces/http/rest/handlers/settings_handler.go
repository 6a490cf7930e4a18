package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"sweetshop-backend/application/services"
	"sweetshop-backend/pkg/common"
)

// SettingsHandler serves the site settings the storefront reads on load.
type SettingsHandler struct {
	settings *services.SettingsService
	logger   *zap.Logger
}

// NewSettingsHandler creates a settings handler.
func NewSettingsHandler(settings *services.SettingsService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{settings: settings, logger: logger}
}

// List returns all settings.
func (h *SettingsHandler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.settings.All(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, all)
}

// Get returns one setting by key.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	setting, err := h.settings.Get(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, setting)
}

type settingRequest struct {
	Value string `json:"value"`
}

// Set creates or overwrites a setting. Admin only.
func (h *SettingsHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req settingRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	setting, err := h.settings.Set(r.Context(), chi.URLParam(r, "key"), req.Value)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, setting)
}
