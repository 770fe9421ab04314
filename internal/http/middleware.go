package http

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

type contextKey string

const (
	buyerEmailKey contextKey = "buyer_email"
	requestIDKey  contextKey = "request_id"
)

// IdentityMiddleware resolves the caller's identity token to a buyer
// email. Identity is delegated to an external provider; here the
// bearer token is trusted as-is and used directly when it looks like
// an email claim (replace with real token validation).
func IdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if email := r.Header.Get("X-Buyer-Email"); email != "" {
			ctx := context.WithValue(r.Context(), buyerEmailKey, email)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = fmt.Sprintf("req-%d", time.Now().UnixNano())
		}

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
