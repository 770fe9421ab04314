package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/Kanikabudhiraja/GreenBasket-CarbonEmission-sub000/internal/domain"
	"github.com/Kanikabudhiraja/GreenBasket-CarbonEmission-sub000/internal/service"
	"github.com/go-chi/chi/v5"
)

type OrdersHandler struct {
	orders service.OrderService
}

func NewOrdersHandler(orders service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

type OrderLineDTO struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Amount   int64  `json:"amount"`
}

type AddressDTO struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type OrderResponseDTO struct {
	ID                string         `json:"id"`
	SessionHandle     string         `json:"session_handle"`
	Items             []OrderLineDTO `json:"items"`
	TotalAmount       int64          `json:"total_amount"`
	Currency          string         `json:"currency"`
	CreatedAt         string         `json:"created_at"`
	EstimatedDelivery string         `json:"estimated_delivery"`
	ShippingAddress   AddressDTO     `json:"shipping_address"`
	BuyerName         string         `json:"buyer_name"`
	BuyerEmail        string         `json:"buyer_email"`
	PaymentStatus     string         `json:"payment_status"`
	FulfillmentStatus string         `json:"fulfillment_status"`
}

type OrdersListResponseDTO struct {
	Orders []OrderResponseDTO `json:"orders"`
}

// GET /api/v1/orders?session_handle=...
//
// The endpoint the post-redirect reconciliation loop polls. A miss
// triggers materialization synchronously.
func (h *OrdersHandler) GetBySession(w http.ResponseWriter, r *http.Request) {
	handle := r.URL.Query().Get("session_handle")
	if handle == "" {
		respondError(w, http.StatusBadRequest, "missing_session_handle", "session_handle is required")
		return
	}

	order, err := h.orders.GetBySession(r.Context(), handle)
	if err != nil {
		handleOrderError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, convertOrder(order))
}

// GET /api/v1/orders/{order_id}
func (h *OrdersHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		respondError(w, http.StatusBadRequest, "missing_order_id", "order_id is required")
		return
	}

	order, err := h.orders.GetByID(r.Context(), orderID)
	if err != nil {
		handleOrderError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, convertOrder(order))
}

// GET /api/v1/orders/mine
//
// Zero orders is 200 with an empty list, never 404.
func (h *OrdersHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	buyerEmail := getBuyerEmailFromContext(r.Context())

	orders, err := h.orders.ListForBuyer(r.Context(), buyerEmail)
	if err != nil {
		handleOrderError(w, err)
		return
	}

	dtos := make([]OrderResponseDTO, 0, len(orders))
	for _, order := range orders {
		dtos = append(dtos, convertOrder(order))
	}

	respondJSON(w, http.StatusOK, OrdersListResponseDTO{Orders: dtos})
}

func handleOrderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		respondError(w, http.StatusNotFound, "session_not_found", "checkout session not found or expired")
	case errors.Is(err, service.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "order_not_found", "order not found")
	case errors.Is(err, service.ErrIncompleteSession):
		respondError(w, http.StatusBadGateway, "incomplete_session", "gateway returned an incomplete session")
	case errors.Is(err, service.ErrMaterializeUnavailable):
		respondError(w, http.StatusServiceUnavailable, "materialization_unavailable", "order not available yet, retry shortly")
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func convertOrder(o *domain.Order) OrderResponseDTO {
	items := make([]OrderLineDTO, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderLineDTO{
			Name:     item.Name,
			Quantity: item.Quantity,
			Amount:   item.Amount,
		})
	}

	return OrderResponseDTO{
		ID:                o.ID,
		SessionHandle:     o.SessionHandle,
		Items:             items,
		TotalAmount:       o.TotalAmount,
		Currency:          o.Currency,
		CreatedAt:         o.CreatedAt.Format(time.RFC3339),
		EstimatedDelivery: o.EstimatedDelivery.Format(time.RFC3339),
		ShippingAddress: AddressDTO{
			Line1:      o.ShippingAddress.Line1,
			Line2:      o.ShippingAddress.Line2,
			City:       o.ShippingAddress.City,
			State:      o.ShippingAddress.State,
			PostalCode: o.ShippingAddress.PostalCode,
			Country:    o.ShippingAddress.Country,
		},
		BuyerName:         o.BuyerName,
		BuyerEmail:        o.BuyerEmail,
		PaymentStatus:     o.PaymentStatus,
		FulfillmentStatus: o.FulfillmentStatusAt(time.Now()).String(),
	}
}
