// Package checkout turns a cart snapshot and the shopper's contact details into
// the chat message and deep link that hand the order to the store.
package checkout

import (
	"fmt"
	"strings"

	"storefront/cart"

	"github.com/shopspring/decimal"
)

const (
	DefaultStoreName = "Trinetram"
	DefaultHandle    = "919372340493"
	DefaultLinkBase  = "https://wa.me"
)

var (
	itemRule  = strings.Repeat("─", 20)
	closeRule = strings.Repeat("─", 8)
)

// Formatter renders order messages for one store.
type Formatter struct {
	StoreName string
	Handle    string
	LinkBase  string
}

// NewFormatter fills blank fields with the storefront defaults.
func NewFormatter(storeName, handle, linkBase string) Formatter {
	f := Formatter{
		StoreName: strings.TrimSpace(storeName),
		Handle:    strings.TrimSpace(handle),
		LinkBase:  strings.TrimRight(strings.TrimSpace(linkBase), "/"),
	}
	if f.StoreName == "" {
		f.StoreName = DefaultStoreName
	}
	if f.Handle == "" {
		f.Handle = DefaultHandle
	}
	if f.LinkBase == "" {
		f.LinkBase = DefaultLinkBase
	}
	return f
}

// Order is a rendered checkout ready to hand off.
type Order struct {
	Message string `json:"message"`
	Link    string `json:"link"`
}

// Format renders the order message. Contact fields are trimmed; a blank name,
// phone or address fails with *IncompleteContactError and nothing is rendered.
func (f Formatter) Format(items []cart.CartItem, contact Contact) (string, error) {
	if err := contact.Validate(); err != nil {
		return "", err
	}
	c := contact.trimmed()

	var b strings.Builder
	fmt.Fprintf(&b, "*%s - New Order*\n\n", f.StoreName)

	b.WriteString("*Customer Details:*\n")
	fmt.Fprintf(&b, "• Name: %s\n", c.Name)
	fmt.Fprintf(&b, "• Phone: %s\n", c.Phone)
	fmt.Fprintf(&b, "• Address: %s\n", c.Address)
	if c.Location != "" {
		if c.MapLink != "" {
			fmt.Fprintf(&b, "• Location: %s (%s)\n", c.Location, c.MapLink)
		} else {
			fmt.Fprintf(&b, "• Location: %s\n", c.Location)
		}
	}

	b.WriteString("\n*Order Items:*\n")
	b.WriteString(itemRule + "\n")
	for idx, it := range items {
		fmt.Fprintf(&b, "%d. Product: %s\n", idx+1, it.Title)
		fmt.Fprintf(&b, "   ID: %s\n", it.ID)
		fmt.Fprintf(&b, "   Price: ₹%s\n", it.Price.String())
		fmt.Fprintf(&b, "   Quantity: %d\n", it.Quantity)
		fmt.Fprintf(&b, "   Subtotal: ₹%s\n", cart.LineSubtotal(it).String())
		b.WriteString(itemRule + "\n")
	}

	fmt.Fprintf(&b, "*Total Amount:* ₹%s\n", cart.TotalPrice(items).String())
	b.WriteString(closeRule)
	return b.String(), nil
}

// Link builds the chat deep link carrying message as prefilled text.
func (f Formatter) Link(message string) string {
	return fmt.Sprintf("%s/%s?text=%s", f.LinkBase, f.Handle, EncodeURIComponent(message))
}

// Checkout renders the message and link for a cart. Contact problems are
// reported first; an empty cart is a failed precondition. The items are only
// read.
func (f Formatter) Checkout(items []cart.CartItem, contact Contact) (Order, error) {
	if err := contact.Validate(); err != nil {
		return Order{}, err
	}
	if err := cart.RequireNotEmpty(items, cart.ErrMsgCartEmpty); err != nil {
		return Order{}, err
	}

	msg, err := f.Format(items, contact)
	if err != nil {
		return Order{}, err
	}
	return Order{Message: msg, Link: f.Link(msg)}, nil
}

// QuickOrder renders the single-product message sent from a product page.
// Price is the line amount, unitPrice × quantity.
func (f Formatter) QuickOrder(title string, quantity int, unitPrice decimal.Decimal) string {
	if quantity < 1 {
		quantity = 1
	}
	amount := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	return fmt.Sprintf("Hi, I want to order:\n\nProduct: %s\nQuantity: %d\nPrice: ₹%s\n",
		strings.TrimSpace(title), quantity, amount.String())
}

// QuickOrderLink is QuickOrder wrapped in a deep link.
func (f Formatter) QuickOrderLink(title string, quantity int, unitPrice decimal.Decimal) Order {
	msg := f.QuickOrder(title, quantity, unitPrice)
	return Order{Message: msg, Link: f.Link(msg)}
}
