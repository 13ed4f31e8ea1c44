package catalog

import (
	"strings"

	"storefront/cart"

	"github.com/shopspring/decimal"
)

// Product is one catalog listing.
type Product struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"originalPrice,omitempty"`
	Images        []string        `json:"images,omitempty"`
}

var hundred = decimal.NewFromInt(100)

// DiscountPercent returns round((original − price) / original × 100), or 0
// when there is no original price above the selling price.
func DiscountPercent(p Product) int {
	if !p.OriginalPrice.IsPositive() || !p.OriginalPrice.GreaterThan(p.Price) {
		return 0
	}
	pct := p.OriginalPrice.Sub(p.Price).Div(p.OriginalPrice).Mul(hundred).Round(0)
	return int(pct.IntPart())
}

// CartItem builds the cart candidate for quantity units, snapshotting the
// current price.
func (p Product) CartItem(quantity int) cart.CartItem {
	if quantity < 1 {
		quantity = 1
	}
	var images []string
	if len(p.Images) > 0 {
		images = append([]string(nil), p.Images...)
	}
	return cart.CartItem{
		ID:       p.ID,
		Title:    p.Title,
		Price:    p.Price,
		Quantity: quantity,
		Images:   images,
	}
}

func (p Product) validate() *cart.CommandError {
	if err := cart.RequireNotBlank(p.ID, cart.ErrMsgItemIDRequired); err != nil {
		return err
	}
	if err := cart.RequireNotBlank(p.Title, cart.ErrMsgTitleRequired); err != nil {
		return err
	}
	return cart.RequireNonNegativePrice(p.Price, cart.ErrMsgPriceNegative)
}

func (p Product) normalize() Product {
	p.ID = strings.TrimSpace(p.ID)
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	return p
}
