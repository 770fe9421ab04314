package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Kanikabudhiraja/GreenBasket-CarbonEmission-sub000/internal/domain"
	"github.com/Kanikabudhiraja/GreenBasket-CarbonEmission-sub000/internal/service"
)

type CheckoutHandler struct {
	checkout service.CheckoutService
}

func NewCheckoutHandler(checkout service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

type CheckoutRequestDTO struct {
	CartItems  []domain.CartLine `json:"cart_items"`
	CouponCode string            `json:"coupon_code,omitempty"`
}

type CheckoutResponseDTO struct {
	SessionHandle string `json:"session_handle"`
}

// POST /api/v1/checkout
func (h *CheckoutHandler) InitiateCheckout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	buyerEmail := getBuyerEmailFromContext(r.Context())

	handle, err := h.checkout.Initiate(r.Context(), req.CartItems, buyerEmail, req.CouponCode)
	if err != nil {
		handleCheckoutError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, CheckoutResponseDTO{SessionHandle: handle})
}

func handleCheckoutError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrEmptyCart) {
		respondError(w, http.StatusBadRequest, "empty_cart", "cart is empty")
		return
	}

	var checkoutErr *service.CheckoutFailedError
	if errors.As(err, &checkoutErr) {
		// The gateway's own message aids debugging bad line items.
		respondErrorDetails(w, http.StatusInternalServerError, "checkout_failed",
			"failed to create checkout session", checkoutErr.Cause.Error())
		return
	}

	respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
}
