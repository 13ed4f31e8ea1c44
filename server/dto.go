package server

import (
	"encoding/json"

	"storefront/cart"
	"storefront/catalog"

	"github.com/shopspring/decimal"
)

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// ItemView is one cart line as returned by the API.
type ItemView struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Price    json.Number `json:"price"`
	Quantity int         `json:"quantity"`
	Subtotal json.Number `json:"subtotal"`
	Image    string      `json:"image,omitempty"`
	Image2   string      `json:"image2,omitempty"`
	Image3   string      `json:"image3,omitempty"`
}

// CartView is the cart snapshot with its derived figures.
type CartView struct {
	Items                []ItemView  `json:"items"`
	Open                 bool        `json:"open"`
	TotalPrice           json.Number `json:"totalPrice"`
	TotalItemCount       int         `json:"totalItemCount"`
	AmountToFreeShipping json.Number `json:"amountToFreeShipping"`
	FreeShippingProgress json.Number `json:"freeShippingProgress"`
}

func newCartView(st cart.CartState, threshold decimal.Decimal) CartView {
	items := make([]ItemView, 0, len(st.Items))
	for _, it := range st.Items {
		v := ItemView{
			ID:       it.ID,
			Title:    it.Title,
			Price:    number(it.Price),
			Quantity: it.Quantity,
			Subtotal: number(cart.LineSubtotal(it)),
			Image:    it.Image(),
		}
		if len(it.Images) > 1 {
			v.Image2 = it.Images[1]
		}
		if len(it.Images) > 2 {
			v.Image3 = it.Images[2]
		}
		items = append(items, v)
	}
	return CartView{
		Items:                items,
		Open:                 st.Open,
		TotalPrice:           number(st.TotalPrice()),
		TotalItemCount:       st.TotalItemCount(),
		AmountToFreeShipping: number(cart.AmountToThreshold(st.Items, threshold)),
		FreeShippingProgress: number(cart.ThresholdProgress(st.Items, threshold)),
	}
}

// ProductView is a catalog entry as returned by the API.
type ProductView struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description,omitempty"`
	Price           json.Number `json:"price"`
	OriginalPrice   json.Number `json:"originalPrice,omitempty"`
	DiscountPercent int         `json:"discountPercent"`
	Images          []string    `json:"images,omitempty"`
	InCart          bool        `json:"inCart"`
	CartQuantity    int         `json:"cartQuantity"`
}

// newProductView flags p against the cart snapshot st.
func newProductView(p catalog.Product, st cart.CartState) ProductView {
	line, inCart := st.Find(p.ID)
	v := ProductView{
		ID:              p.ID,
		Title:           p.Title,
		Description:     p.Description,
		Price:           number(p.Price),
		DiscountPercent: catalog.DiscountPercent(p),
		Images:          p.Images,
		InCart:          inCart,
		CartQuantity:    line.Quantity,
	}
	if p.OriginalPrice.IsPositive() {
		v.OriginalPrice = number(p.OriginalPrice)
	}
	return v
}

// ProductPage is one "load more" window of the catalog.
type ProductPage struct {
	Products   []ProductView `json:"products"`
	Offset     int           `json:"offset"`
	NextOffset int           `json:"nextOffset"`
	Total      int           `json:"total"`
	HasMore    bool          `json:"hasMore"`
}

// AddItemRequest adds either a catalog product (ProductID set) or a fully
// described line.
type AddItemRequest struct {
	ProductID string      `json:"productId,omitempty"`
	ID        string      `json:"id,omitempty"`
	Title     string      `json:"title,omitempty"`
	Price     json.Number `json:"price,omitempty"`
	Quantity  int         `json:"quantity,omitempty"`
	Image     string      `json:"image,omitempty"`
	Image2    string      `json:"image2,omitempty"`
	Image3    string      `json:"image3,omitempty"`
}

// UpdateQuantityRequest replaces a line's quantity. Zero or less removes it.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SetOpenRequest toggles the cart panel.
type SetOpenRequest struct {
	Open bool `json:"open"`
}

// QuickOrderRequest orders a single product straight from its page.
type QuickOrderRequest struct {
	Quantity int `json:"quantity"`
}
