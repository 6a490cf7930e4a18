package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"sweetshop-backend/application/services"
	"sweetshop-backend/pkg/common"
)

// EngagementHandler serves newsletter subscriptions and back-in-stock
// alerts.
type EngagementHandler struct {
	engagement *services.EngagementService
	logger     *zap.Logger
}

// NewEngagementHandler creates an engagement handler.
func NewEngagementHandler(engagement *services.EngagementService, logger *zap.Logger) *EngagementHandler {
	return &EngagementHandler{engagement: engagement, logger: logger}
}

type emailRequest struct {
	Email string `json:"email"`
}

// Subscribe adds an email to the newsletter.
func (h *EngagementHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	if err := h.engagement.Subscribe(r.Context(), req.Email); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, map[string]bool{"subscribed": true})
}

// Unsubscribe removes an email from the newsletter.
func (h *EngagementHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	if err := h.engagement.Unsubscribe(r.Context(), req.Email); err != nil {
		common.RespondAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListSubscribers returns all newsletter subscriptions. Admin only.
func (h *EngagementHandler) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	subs, err := h.engagement.ListSubscribers(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, subs)
}

// RequestStockAlert records a back-in-stock request for a product.
func (h *EngagementHandler) RequestStockAlert(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	n, err := h.engagement.RequestStockAlert(r.Context(), chi.URLParam(r, "productID"), req.Email)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, n)
}

// TriggerStockAlerts emails everyone waiting on a product. Admin only,
// typically called after restocking.
func (h *EngagementHandler) TriggerStockAlerts(w http.ResponseWriter, r *http.Request) {
	sent, err := h.engagement.NotifyBackInStock(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]int{"sent": sent})
}
