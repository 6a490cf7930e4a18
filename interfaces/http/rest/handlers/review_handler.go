package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"sweetshop-backend/application/services"
	"sweetshop-backend/domain/shop"
	"sweetshop-backend/pkg/common"
)

// ReviewHandler serves product reviews and their moderation.
type ReviewHandler struct {
	reviews *services.ReviewService
	logger  *zap.Logger
}

// NewReviewHandler creates a review handler.
func NewReviewHandler(reviews *services.ReviewService, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, logger: logger}
}

// ListForProduct returns approved reviews for a product.
func (h *ReviewHandler) ListForProduct(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.ListForProduct(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, reviews)
}

// Submit accepts a new review for moderation.
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var review shop.Review
	if err := common.ParseJSONBody(r, &review, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	review.ProductID = chi.URLParam(r, "productID")

	created, err := h.reviews.Submit(r.Context(), review)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, created)
}

// ListPending returns reviews awaiting moderation. Admin only.
func (h *ReviewHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	pending, err := h.reviews.ListPending(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, pending)
}

// Approve publishes a review. Admin only.
func (h *ReviewHandler) Approve(w http.ResponseWriter, r *http.Request) {
	if err := h.reviews.Approve(r.Context(), chi.URLParam(r, "reviewID")); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]bool{"approved": true})
}

// Delete removes a review. Admin only.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.reviews.Delete(r.Context(), chi.URLParam(r, "reviewID")); err != nil {
		common.RespondAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
