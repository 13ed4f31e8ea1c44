package cart

import "github.com/shopspring/decimal"

// CartState is an immutable snapshot of the store.
//
// Items and Open are orthogonal: item mutations never touch Open and SetOpen
// never touches Items.
type CartState struct {
	Items []CartItem
	Open  bool
}

// EmptyState returns a closed cart with no items.
func EmptyState() CartState {
	return CartState{Items: []CartItem{}}
}

// IsEmpty reports whether the cart holds no lines.
func (s CartState) IsEmpty() bool {
	return len(s.Items) == 0
}

// IndexOf returns the position of id in Items, or -1.
func (s CartState) IndexOf(id string) int {
	for idx := range s.Items {
		if s.Items[idx].ID == id {
			return idx
		}
	}
	return -1
}

// Find returns the line for id.
func (s CartState) Find(id string) (CartItem, bool) {
	idx := s.IndexOf(id)
	if idx < 0 {
		return CartItem{}, false
	}
	return s.Items[idx].clone(), true
}

// Contains reports whether a line with id exists.
func (s CartState) Contains(id string) bool {
	return s.IndexOf(id) >= 0
}

// TotalPrice is the sum of every line subtotal.
func (s CartState) TotalPrice() decimal.Decimal {
	return TotalPrice(s.Items)
}

// TotalItemCount is the sum of every line quantity.
func (s CartState) TotalItemCount() int {
	return TotalItemCount(s.Items)
}

// copyState detaches a snapshot from the store's internal slice.
func copyState(s CartState) CartState {
	return CartState{Items: CloneItems(s.Items), Open: s.Open}
}

// withItems returns a snapshot carrying a fresh item slice and the same flag.
func (s CartState) withItems(items []CartItem) CartState {
	return CartState{Items: items, Open: s.Open}
}
