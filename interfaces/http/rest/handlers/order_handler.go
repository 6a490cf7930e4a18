package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"sweetshop-backend/application/services"
	"sweetshop-backend/domain/cart"
	"sweetshop-backend/domain/order"
	"sweetshop-backend/pkg/auth"
	"sweetshop-backend/pkg/common"
)

// OrderHandler serves checkout and order management.
type OrderHandler struct {
	orders   *services.OrderService
	cartSync *services.CartSyncService
	logger   *zap.Logger
}

// NewOrderHandler creates an order handler.
func NewOrderHandler(orders *services.OrderService, cartSync *services.CartSyncService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, cartSync: cartSync, logger: logger}
}

type checkoutRequest struct {
	Customer  order.Customer `json:"customer"`
	Items     cart.Snapshot  `json:"items"`
	PromoCode string         `json:"promoCode,omitempty"`
}

// PlaceOrder handles checkout. Guests can order; a logged-in caller gets
// the order attached to their account and their cart cleared afterwards.
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	input := services.PlaceOrderInput{
		Customer:  req.Customer,
		Items:     req.Items,
		PromoCode: req.PromoCode,
	}
	if claims, err := auth.GetUserFromContext(r.Context()); err == nil {
		input.UserID = claims.UserID
	}

	placed, err := h.orders.PlaceOrder(r.Context(), input)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	if input.UserID != "" {
		if err := h.cartSync.Clear(r.Context(), input.UserID); err != nil {
			h.logger.Warn("cart not cleared after checkout",
				zap.String("orderID", placed.ID),
				zap.Error(err),
			)
		}
	}
	common.RespondJSON(w, http.StatusCreated, placed)
}

// GetOrder returns one order. Customers only see their own; admins see
// any.
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.GetOrder(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	claims, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}
	if !claims.HasRole("admin") && o.UserID != claims.UserID {
		common.RespondError(w, http.StatusForbidden, "FORBIDDEN", "Not your order")
		return
	}
	common.RespondJSON(w, http.StatusOK, o)
}

// ListOrders returns the caller's orders, or every order for admins.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	userID := claims.UserID
	if claims.HasRole("admin") {
		userID = r.URL.Query().Get("userId")
	}

	orders, err := h.orders.ListOrders(r.Context(), userID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	params := common.ExtractPaginationParams(r)
	start, end, info := params.Bounds(len(orders))
	common.RespondWithMeta(w, http.StatusOK, orders[start:end], &common.MetaInfo{Pagination: info})
}

type statusUpdateRequest struct {
	Status order.Status `json:"status"`
}

// UpdateStatus advances an order through fulfilment. Admin only.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusUpdateRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	updated, err := h.orders.UpdateStatus(r.Context(), chi.URLParam(r, "orderID"), req.Status)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, updated)
}

type promoCheckRequest struct {
	Code     string  `json:"code"`
	Subtotal float64 `json:"subtotal"`
}

// CheckPromoCode previews the discount a code grants, for the checkout
// form.
func (h *OrderHandler) CheckPromoCode(w http.ResponseWriter, r *http.Request) {
	var req promoCheckRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	discount, err := h.orders.ValidatePromoCode(r.Context(), req.Code, req.Subtotal)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	resp := struct {
		Valid    bool    `json:"valid"`
		Discount float64 `json:"discount"`
	}{Valid: true, Discount: discount}
	common.RespondJSON(w, http.StatusOK, resp)
}
