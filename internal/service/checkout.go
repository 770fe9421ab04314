package service

import (
	"context"
	"strings"

	"github.com/Kanikabudhiraja/GreenBasket-CarbonEmission-sub000/internal/domain"
	"github.com/Kanikabudhiraja/GreenBasket-CarbonEmission-sub000/internal/gateway"
)

type CheckoutService interface {
	Initiate(ctx context.Context, lines []domain.CartLine, buyerEmail, couponCode string) (string, error)
}

// CheckoutServiceImpl opens payment sessions for carts.
type CheckoutServiceImpl struct {
	gw        gateway.Gateway
	discounts *DiscountResolver
	baseURL   string
}

func NewCheckoutService(gw gateway.Gateway, discounts *DiscountResolver, publicBaseURL string) *CheckoutServiceImpl {
	return &CheckoutServiceImpl{
		gw:        gw,
		discounts: discounts,
		baseURL:   strings.TrimRight(publicBaseURL, "/"),
	}
}

// Initiate formats the cart, resolves an optional discount and opens a
// gateway session. Gateway rejections surface verbatim; they describe
// bad input and retrying would not help.
func (s *CheckoutServiceImpl) Initiate(ctx context.Context, lines []domain.CartLine, buyerEmail, couponCode string) (string, error) {
	items, err := BuildLineItems(lines)
	if err != nil {
		return "", err
	}

	discountID := s.discounts.Resolve(ctx, couponCode, lines)

	handle, err := s.gw.CreateCheckoutSession(ctx, gateway.SessionParams{
		LineItems:  items,
		BuyerEmail: buyerEmail,
		DiscountID: discountID,
		SuccessURL: s.baseURL + "/order-confirmation?session_handle={CHECKOUT_SESSION_HANDLE}",
		CancelURL:  s.baseURL + "/cart",
	})
	if err != nil {
		return "", &CheckoutFailedError{Cause: err}
	}
	return handle, nil
}
