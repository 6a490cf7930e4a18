package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"sweetshop-backend/application/services"
	"sweetshop-backend/domain/cart"
	"sweetshop-backend/pkg/auth"
	"sweetshop-backend/pkg/common"
)

// WishlistHandler serves the per-user wishlist.
type WishlistHandler struct {
	wishlists *services.WishlistService
	logger    *zap.Logger
}

// NewWishlistHandler creates a wishlist handler.
func NewWishlistHandler(wishlists *services.WishlistService, logger *zap.Logger) *WishlistHandler {
	return &WishlistHandler{wishlists: wishlists, logger: logger}
}

type wishlistPayload struct {
	Items []cart.LineItem `json:"items"`
}

// Get returns the caller's wishlist.
func (h *WishlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	wl, err := h.wishlists.Get(r.Context(), claims.UserID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, wl)
}

// Save replaces the caller's wishlist.
func (h *WishlistHandler) Save(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var payload wishlistPayload
	if err := common.ParseJSONBody(r, &payload, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	wl, err := h.wishlists.Save(r.Context(), claims.UserID, payload.Items)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, wl)
}

// Clear deletes the caller's wishlist.
func (h *WishlistHandler) Clear(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	if err := h.wishlists.Clear(r.Context(), claims.UserID); err != nil {
		common.RespondAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
