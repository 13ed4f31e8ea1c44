package cart

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MaxImages is the number of image references a line keeps.
const MaxImages = 3

// CartItem is one line in the cart, keyed by the catalog product ID.
//
// Price is a snapshot taken when the line was added and never refreshed from
// the catalog afterwards.
type CartItem struct {
	ID       string
	Title    string
	Price    decimal.Decimal
	Quantity int
	Images   []string
}

// Subtotal returns Price × Quantity for the line.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Image returns the first image reference, or "" when the line has none.
func (i CartItem) Image() string {
	if len(i.Images) == 0 {
		return ""
	}
	return i.Images[0]
}

// clone returns a copy that shares no mutable storage with i.
func (i CartItem) clone() CartItem {
	if i.Images != nil {
		i.Images = append([]string(nil), i.Images...)
	}
	return i
}

// normalize trims identity fields, drops blank or surplus images and floors
// the quantity at one.
func (i CartItem) normalize() CartItem {
	i.ID = strings.TrimSpace(i.ID)
	i.Title = strings.TrimSpace(i.Title)
	if i.Quantity < 1 {
		i.Quantity = 1
	}

	var images []string
	for _, img := range i.Images {
		img = strings.TrimSpace(img)
		if img == "" {
			continue
		}
		images = append(images, img)
		if len(images) == MaxImages {
			break
		}
	}
	i.Images = images
	return i
}

// CloneItems deep-copies a slice of items.
func CloneItems(src []CartItem) []CartItem {
	out := make([]CartItem, len(src))
	for idx, it := range src {
		out[idx] = it.clone()
	}
	return out
}
