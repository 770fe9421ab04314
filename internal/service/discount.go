package service

import (
	"context"
	"errors"
	"log"

	"github.com/Kanikabudhiraja/GreenBasket-CarbonEmission-sub000/internal/domain"
	"github.com/Kanikabudhiraja/GreenBasket-CarbonEmission-sub000/internal/gateway"
	"golang.org/x/sync/singleflight"
)

const (
	// PromoCode discounts the cart down to a nominal minimum charge.
	// Any other code is a no-op: coupon entry is advisory, never an
	// error.
	PromoCode = "CARBONZERO"

	promoDiscountID = "promo-carbonzero"

	// targetMinimumAmount is the final charge after the promo, in
	// minor currency units.
	targetMinimumAmount = 100
)

// DiscountResolver ensures the gateway-side discount object exists for
// a recognized coupon code, creating it on first use.
type DiscountResolver struct {
	gw  gateway.Gateway
	sfg singleflight.Group // one create-if-missing flight per discount id
}

func NewDiscountResolver(gw gateway.Gateway) *DiscountResolver {
	return &DiscountResolver{gw: gw}
}

// Resolve returns the gateway discount id to attach to the session, or
// "" when no discount applies. Gateway failures other than not-found
// are logged and checkout proceeds undiscounted.
func (r *DiscountResolver) Resolve(ctx context.Context, code string, lines []domain.CartLine) string {
	if code != PromoCode {
		return ""
	}

	amount := DiscountAmount(domain.Subtotal(lines))
	if amount <= 0 {
		return ""
	}

	v, err, _ := r.sfg.Do(promoDiscountID, func() (interface{}, error) {
		return r.ensureDiscount(ctx, amount)
	})
	if err != nil {
		log.Printf("discount resolution failed, proceeding without discount: %v", err)
		return ""
	}
	return v.(string)
}

// DiscountAmount computes how much to take off so the final charge is
// exactly the target minimum, floored at zero.
func DiscountAmount(subtotal int64) int64 {
	amount := subtotal - targetMinimumAmount
	if amount < 0 {
		return 0
	}
	return amount
}

func (r *DiscountResolver) ensureDiscount(ctx context.Context, amount int64) (string, error) {
	discount, err := r.gw.GetDiscount(ctx, promoDiscountID)
	if err == nil {
		return discount.ID, nil
	}
	if !errors.Is(err, gateway.ErrDiscountNotFound) {
		return "", err
	}

	created, err := r.gw.CreateDiscount(ctx, gateway.DiscountParams{
		ID:        promoDiscountID,
		AmountOff: amount,
		Currency:  defaultCurrency,
	})
	if err == nil {
		return created.ID, nil
	}

	// Another creator got there first; that is success, not failure.
	if errors.Is(err, gateway.ErrDiscountExists) {
		return promoDiscountID, nil
	}
	return "", err
}
