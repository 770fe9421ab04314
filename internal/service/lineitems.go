package service

import (
	"net/url"
	"strings"

	"github.com/Kanikabudhiraja/GreenBasket-CarbonEmission-sub000/internal/domain"
	"github.com/Kanikabudhiraja/GreenBasket-CarbonEmission-sub000/internal/gateway"
)

const defaultCurrency = "inr"

// BuildLineItems converts untrusted cart entries into gateway line
// items. Names fall back to "Product", blank descriptions are omitted,
// and image URLs are included only when absolute http(s); relative or
// malformed URLs never reach the gateway.
func BuildLineItems(lines []domain.CartLine) ([]gateway.LineItem, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]gateway.LineItem, 0, len(lines))
	for _, line := range lines {
		item := gateway.LineItem{
			Name:       line.Name,
			UnitAmount: line.UnitAmount(),
			Currency:   defaultCurrency,
			Quantity:   line.EffectiveQuantity(),
		}
		if item.Name == "" {
			item.Name = "Product"
		}
		if desc := strings.TrimSpace(line.Description); desc != "" {
			item.Description = desc
		}
		if img := sanitizeImageURL(line.ImageURL); img != "" {
			item.Images = []string{img}
		}
		items = append(items, item)
	}
	return items, nil
}

func sanitizeImageURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ""
	}
	return raw
}
