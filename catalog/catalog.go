// Package catalog holds the read-only product listing the cart is filled from.
package catalog

import (
	"fmt"

	"storefront/cart"

	"github.com/shopspring/decimal"
)

// DefaultPageSize is how many products one "load more" step reveals.
const DefaultPageSize = 8

// Catalog is an ordered, immutable set of products.
type Catalog struct {
	products []Product
	index    map[string]int
}

// New validates products and keeps them in the given order.
func New(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		index:    make(map[string]int, len(products)),
	}
	for idx, p := range products {
		p = p.normalize()
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("product %d: %w", idx+1, err)
		}
		if _, dup := c.index[p.ID]; dup {
			return nil, fmt.Errorf("product %d: duplicate id %q", idx+1, p.ID)
		}
		c.index[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New([]Product{
		{
			ID:          "1",
			Title:       "Diva Diya 1",
			Description: "Beautiful handcrafted diya for decoration",
			Price:       decimal.NewFromInt(120),
			Images:      []string{"/products/diya1.png"},
		},
		{
			ID:          "2",
			Title:       "Diva Diya 2",
			Description: "Elegant design for festivals and home decor",
			Price:       decimal.NewFromInt(150),
			Images:      []string{"/products/diya2.png"},
		},
	})
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// List returns every product in catalog order.
func (c *Catalog) List() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get looks up a product by id.
func (c *Catalog) Get(id string) (Product, bool) {
	idx, ok := c.index[id]
	if !ok {
		return Product{}, false
	}
	return c.products[idx], true
}

// Lookup is Get reporting a missing product as a NOT_FOUND command error.
func (c *Catalog) Lookup(id string) (Product, error) {
	p, ok := c.Get(id)
	if !ok {
		return Product{}, cart.NewNotFound(cart.ErrMsgProductNotFound)
	}
	return p, nil
}

// Page is one window of the listing.
type Page struct {
	Products   []Product `json:"products"`
	Offset     int       `json:"offset"`
	NextOffset int       `json:"nextOffset"`
	Total      int       `json:"total"`
	HasMore    bool      `json:"hasMore"`
}

// Page returns up to limit products starting at offset. A limit below one uses
// DefaultPageSize; offsets are clamped to the listing.
func (c *Catalog) Page(offset, limit int) Page {
	if limit < 1 {
		limit = DefaultPageSize
	}
	total := len(c.products)
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	products := make([]Product, end-offset)
	copy(products, c.products[offset:end])
	return Page{
		Products:   products,
		Offset:     offset,
		NextOffset: end,
		Total:      total,
		HasMore:    end < total,
	}
}
