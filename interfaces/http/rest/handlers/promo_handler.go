package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"sweetshop-backend/application/services"
	"sweetshop-backend/domain/shop"
	"sweetshop-backend/pkg/common"
)

// PromoHandler is the admin surface for promo codes.
type PromoHandler struct {
	promos *services.PromoService
	logger *zap.Logger
}

// NewPromoHandler creates a promo handler.
func NewPromoHandler(promos *services.PromoService, logger *zap.Logger) *PromoHandler {
	return &PromoHandler{promos: promos, logger: logger}
}

// List returns all promo codes.
func (h *PromoHandler) List(w http.ResponseWriter, r *http.Request) {
	codes, err := h.promos.List(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, codes)
}

// Create stores a new promo code.
func (h *PromoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var code shop.PromoCode
	if err := common.ParseJSONBody(r, &code, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	created, err := h.promos.Create(r.Context(), code)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, created)
}

// Deactivate turns a code off.
func (h *PromoHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	if err := h.promos.Deactivate(r.Context(), chi.URLParam(r, "code")); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]bool{"active": false})
}

// Delete removes a code.
func (h *PromoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.promos.Delete(r.Context(), chi.URLParam(r, "code")); err != nil {
		common.RespondAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
