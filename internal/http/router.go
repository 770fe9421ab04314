package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the HTTP surface.
func NewRouter(checkout *CheckoutHandler, orders *OrdersHandler, webhook *WebhookHandler, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(IdentityMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/checkout", checkout.InitiateCheckout)
		r.Post("/webhook", webhook.HandleWebhook)
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", orders.GetBySession)
			r.Get("/mine", orders.ListMine)
			r.Get("/{order_id}", orders.GetByID)
		})
	})

	return r
}
