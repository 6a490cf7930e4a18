package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"sweetshop-backend/application/services"
	"sweetshop-backend/domain/cart"
	"sweetshop-backend/pkg/auth"
	"sweetshop-backend/pkg/common"
)

const maxBodyBytes = 1 << 20

// CartHandler serves the authenticated cart endpoints.
type CartHandler struct {
	cartSync *services.CartSyncService
	logger   *zap.Logger
}

// NewCartHandler creates a cart handler.
func NewCartHandler(cartSync *services.CartSyncService, logger *zap.Logger) *CartHandler {
	return &CartHandler{cartSync: cartSync, logger: logger}
}

type cartPayload struct {
	Items cart.Snapshot `json:"items"`
}

// GetCart returns the user's remote cart snapshot.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	items, err := h.cartSync.Load(r.Context(), claims.UserID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, cartPayload{Items: items})
}

// SaveCart replaces the user's cart with the submitted snapshot.
func (h *CartHandler) SaveCart(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var payload cartPayload
	if err := common.ParseJSONBody(r, &payload, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	if err := h.cartSync.Save(r.Context(), claims.UserID, payload.Items); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, cartPayload{Items: payload.Items})
}

// MergeCart reconciles the device cart submitted in the body with the
// user's remote cart. Called once right after login. When the remote save
// fails the merged snapshot is still returned so the storefront keeps
// working; the response flags the persistence failure.
func (h *CartHandler) MergeCart(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var payload cartPayload
	if err := common.ParseJSONBody(r, &payload, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	merged, err := h.cartSync.SyncOnLogin(r.Context(), claims.UserID, payload.Items)
	if err != nil && merged == nil {
		common.RespondAppError(w, err)
		return
	}

	resp := struct {
		Items     cart.Snapshot `json:"items"`
		Persisted bool          `json:"persisted"`
	}{Items: merged, Persisted: err == nil}
	common.RespondJSON(w, http.StatusOK, resp)
}

// ClearCart empties the user's cart.
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	if err := h.cartSync.Clear(r.Context(), claims.UserID); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, cartPayload{Items: cart.Snapshot{}})
}
