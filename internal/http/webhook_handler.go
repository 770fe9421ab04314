package http

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/Kanikabudhiraja/GreenBasket-CarbonEmission-sub000/internal/gateway"
	"github.com/Kanikabudhiraja/GreenBasket-CarbonEmission-sub000/internal/service"
)

const maxWebhookBody = 1 << 20 // 1MB

type WebhookHandler struct {
	orders service.OrderService
	secret string
}

func NewWebhookHandler(orders service.OrderService, secret string) *WebhookHandler {
	return &WebhookHandler{orders: orders, secret: secret}
}

// POST /api/v1/webhook
//
// 400 only for verification failures. Everything verified gets 200:
// unknown event types are ignored on purpose, and materialization
// failures are acknowledged too since the session can still be
// materialized later by the buyer's poll or the gateway's redelivery.
func (h *WebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "failed to read request body")
		return
	}

	event, err := gateway.VerifyWebhook(body, r.Header.Get(gateway.SignatureHeader), h.secret)
	if err != nil {
		if errors.Is(err, gateway.ErrMissingSignature) || errors.Is(err, gateway.ErrInvalidSignature) {
			log.Printf("rejected webhook delivery: %v", err)
		} else {
			log.Printf("rejected malformed webhook payload: %v", err)
		}
		respondError(w, http.StatusBadRequest, "verification_failed", "webhook verification failed")
		return
	}

	switch event.Type {
	case gateway.EventCheckoutCompleted:
		h.handleCheckoutCompleted(r, event)
	default:
		// Recognized delivery, irrelevant event. Acknowledge and drop.
	}

	respondJSON(w, http.StatusOK, map[string]bool{"received": true})
}

func (h *WebhookHandler) handleCheckoutCompleted(r *http.Request, event *gateway.Event) {
	handle, err := event.SessionHandle()
	if err != nil {
		log.Printf("completed-checkout event %s has no usable session handle: %v", event.ID, err)
		return
	}

	if _, err := h.orders.GetBySession(r.Context(), handle); err != nil {
		// Still 200; the poll path or a redelivery finishes the job.
		log.Printf("webhook-triggered materialization for session %s failed: %v", handle, err)
	}
}
