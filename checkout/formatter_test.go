package checkout

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"storefront/cart"

	"github.com/shopspring/decimal"
)

func diyas() []cart.CartItem {
	return []cart.CartItem{
		{ID: "1", Title: "Diva Diya 1", Price: decimal.NewFromInt(120), Quantity: 2},
		{ID: "2", Title: "Brass Lamp", Price: decimal.RequireFromString("149.50"), Quantity: 1},
	}
}

func TestFormat_ExactMessage(t *testing.T) {
	f := NewFormatter("", "", "")
	contact := Contact{Name: "Asha", Phone: "9999999999", Address: "12 MG Road"}

	got, err := f.Format(diyas(), contact)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "*Trinetram - New Order*\n\n" +
		"*Customer Details:*\n" +
		"• Name: Asha\n" +
		"• Phone: 9999999999\n" +
		"• Address: 12 MG Road\n" +
		"\n*Order Items:*\n" +
		"────────────────────\n" +
		"1. Product: Diva Diya 1\n" +
		"   ID: 1\n" +
		"   Price: ₹120\n" +
		"   Quantity: 2\n" +
		"   Subtotal: ₹240\n" +
		"────────────────────\n" +
		"2. Product: Brass Lamp\n" +
		"   ID: 2\n" +
		"   Price: ₹149.5\n" +
		"   Quantity: 1\n" +
		"   Subtotal: ₹149.5\n" +
		"────────────────────\n" +
		"*Total Amount:* ₹389.5\n" +
		"────────"

	if got != want {
		t.Errorf("message mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestFormat_LocationLine(t *testing.T) {
	f := NewFormatter("", "", "")
	base := Contact{Name: "A", Phone: "1", Address: "X"}

	cases := []struct {
		name     string
		location string
		mapLink  string
		want     string
		absent   bool
	}{
		{name: "none", absent: true},
		{name: "location only", location: "Pune", want: "• Location: Pune\n"},
		{name: "location with link", location: "Pune", mapLink: "https://maps.example/p", want: "• Location: Pune (https://maps.example/p)\n"},
		{name: "link without location", mapLink: "https://maps.example/p", absent: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := base
			c.Location = tc.location
			c.MapLink = tc.mapLink

			msg, err := f.Format(diyas(), c)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.absent {
				if strings.Contains(msg, "Location:") {
					t.Errorf("expected no location line, got %q", msg)
				}
				return
			}
			if !strings.Contains(msg, "• Address: X\n"+tc.want+"\n*Order Items:*") {
				t.Errorf("expected %q after the address line, got %q", tc.want, msg)
			}
		})
	}
}

func TestFormat_IncompleteContact(t *testing.T) {
	f := NewFormatter("", "", "")
	items := diyas()

	cases := []struct {
		name    string
		contact Contact
		missing []string
	}{
		{"blank name", Contact{Name: "", Phone: "9999999999", Address: "X"}, []string{"name"}},
		{"whitespace phone", Contact{Name: "A", Phone: "   ", Address: "X"}, []string{"phone"}},
		{"everything blank", Contact{}, []string{"name", "phone", "address"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg, err := f.Format(items, tc.contact)
			if msg != "" {
				t.Errorf("expected no message, got %q", msg)
			}
			if !errors.Is(err, ErrIncompleteContact) {
				t.Fatalf("expected ErrIncompleteContact, got %v", err)
			}
			var icErr *IncompleteContactError
			if !errors.As(err, &icErr) {
				t.Fatalf("expected *IncompleteContactError, got %T", err)
			}
			if strings.Join(icErr.Missing, ",") != strings.Join(tc.missing, ",") {
				t.Errorf("expected missing %v, got %v", tc.missing, icErr.Missing)
			}
		})
	}

	if items[0].Quantity != 2 || len(items) != 2 {
		t.Error("expected items untouched by a failed format")
	}
}

func TestFormat_TrimsContact(t *testing.T) {
	msg, err := NewFormatter("", "", "").Format(diyas(), Contact{Name: "  Asha ", Phone: "1", Address: "X\t"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(msg, "• Name: Asha\n") || !strings.Contains(msg, "• Address: X\n") {
		t.Errorf("expected trimmed contact fields, got %q", msg)
	}
}

func TestFormat_CustomStoreName(t *testing.T) {
	msg, err := NewFormatter("Diya House", "", "").Format(diyas(), Contact{Name: "A", Phone: "1", Address: "X"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(msg, "*Diya House - New Order*\n\n") {
		t.Errorf("unexpected header: %q", msg)
	}
}

func TestLink_RoundTripsMessage(t *testing.T) {
	f := NewFormatter("", "", "")
	msg, _ := f.Format(diyas(), Contact{Name: "A & B", Phone: "+91 99", Address: "Flat #4, (rear)"})

	link := f.Link(msg)
	prefix := "https://wa.me/919372340493?text="
	if !strings.HasPrefix(link, prefix) {
		t.Fatalf("unexpected link prefix: %s", link)
	}

	encoded := strings.TrimPrefix(link, prefix)
	if strings.ContainsAny(encoded, " +&#\n") {
		t.Errorf("expected fully encoded text, got %q", encoded)
	}
	decoded, err := url.PathUnescape(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded != msg {
		t.Errorf("decoded text differs from message\n got: %q\nwant: %q", decoded, msg)
	}
}

func TestLink_CustomBase(t *testing.T) {
	f := NewFormatter("", "15550001111", "https://chat.example.com/")
	if got := f.Link("hi there"); got != "https://chat.example.com/15550001111?text=hi%20there" {
		t.Errorf("unexpected link %s", got)
	}
}

func TestEncodeURIComponent(t *testing.T) {
	cases := map[string]string{
		"hello world":  "hello%20world",
		"a+b":          "a%2Bb",
		"it's (ok)!*~": "it's%20(ok)!*~",
		"₹120":         "%E2%82%B9120",
		"x\ny":         "x%0Ay",
		"a/b?c=d&e":    "a%2Fb%3Fc%3Dd%26e",
	}
	for in, want := range cases {
		if got := EncodeURIComponent(in); got != want {
			t.Errorf("EncodeURIComponent(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCheckout(t *testing.T) {
	f := NewFormatter("", "", "")
	contact := Contact{Name: "A", Phone: "1", Address: "X"}

	order, err := f.Checkout(diyas(), contact)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Link != f.Link(order.Message) {
		t.Error("expected link to carry the message")
	}

	_, err = f.Checkout(nil, contact)
	var cmdErr *cart.CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Code != cart.StatusFailedPrecondition {
		t.Fatalf("expected FAILED_PRECONDITION for empty cart, got %v", err)
	}
	if cmdErr.Message != cart.ErrMsgCartEmpty {
		t.Errorf("expected %q, got %q", cart.ErrMsgCartEmpty, cmdErr.Message)
	}

	_, err = f.Checkout(nil, Contact{})
	if !errors.Is(err, ErrIncompleteContact) {
		t.Errorf("expected contact error to win over empty cart, got %v", err)
	}
}

func TestQuickOrder(t *testing.T) {
	f := NewFormatter("", "", "")

	got := f.QuickOrder("Diva Diya 1", 3, decimal.NewFromInt(120))
	want := "Hi, I want to order:\n\nProduct: Diva Diya 1\nQuantity: 3\nPrice: ₹360\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if got := f.QuickOrder("Lamp", 0, decimal.NewFromInt(50)); !strings.Contains(got, "Quantity: 1\nPrice: ₹50\n") {
		t.Errorf("expected quantity floored to 1, got %q", got)
	}

	order := f.QuickOrderLink("Lamp", 1, decimal.NewFromInt(50))
	if !strings.HasPrefix(order.Link, "https://wa.me/919372340493?text=Hi%2C%20I%20want%20to%20order") {
		t.Errorf("unexpected link %s", order.Link)
	}
}

func TestScenarioC(t *testing.T) {
	store := cart.NewStore(t.Context(), nil, nil)
	_ = store.AddItem(t.Context(), cart.CartItem{ID: "1", Title: "Diya", Price: decimal.NewFromInt(120), Quantity: 1})
	before := store.Query()

	_, err := NewFormatter("", "", "").Checkout(store.Items(), Contact{Name: "", Phone: "9999999999", Address: "X"})

	if !errors.Is(err, ErrIncompleteContact) {
		t.Fatalf("expected IncompleteContact, got %v", err)
	}
	after := store.Query()
	if len(after.Items) != len(before.Items) || !after.TotalPrice().Equal(before.TotalPrice()) {
		t.Error("expected cart unchanged after a rejected checkout")
	}
}
