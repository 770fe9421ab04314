package domain

import "math"

// CartLine is one untrusted cart entry as submitted by the storefront
// client. Prices arrive in major currency units; everything downstream
// works in minor units.
type CartLine struct {
	ProductID   int64   `json:"product_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	ImageURL    string  `json:"image_url,omitempty"`
	Description string  `json:"description,omitempty"`
}

// EffectiveQuantity returns the quantity the gateway should see.
// Anything below 1 means the client omitted it.
func (l CartLine) EffectiveQuantity() int {
	if l.Quantity < 1 {
		return 1
	}
	return l.Quantity
}

// UnitAmount is the per-unit price in minor currency units.
func (l CartLine) UnitAmount() int64 {
	return int64(math.Round(l.Price * 100))
}

// Subtotal sums price*quantity over the cart, in minor currency units.
func Subtotal(lines []CartLine) int64 {
	var total int64
	for _, l := range lines {
		total += int64(math.Round(l.Price * float64(l.EffectiveQuantity()) * 100))
	}
	return total
}
