package main

import (
	"fmt"
	"io"
	"strings"

	"storefront/checkout"
	"storefront/server"
)

// ANSI color codes
const (
	green  = "\033[92m"
	yellow = "\033[93m"
	cyan   = "\033[96m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	reset  = "\033[0m"
)

type style struct {
	green, yellow, cyan, bold, dim, reset string
}

func newStyle(color bool) style {
	if !color {
		return style{}
	}
	return style{green: green, yellow: yellow, cyan: cyan, bold: bold, dim: dim, reset: reset}
}

func renderCart(w io.Writer, v server.CartView, s style) {
	rule := strings.Repeat("─", 40)
	fmt.Fprintf(w, "%s%s%s\n", s.bold, rule, s.reset)
	if len(v.Items) == 0 {
		fmt.Fprintf(w, "%sYour cart is empty%s\n", s.dim, s.reset)
		fmt.Fprintf(w, "%s%s%s\n", s.bold, rule, s.reset)
		return
	}

	for _, it := range v.Items {
		fmt.Fprintf(w, "%s%s%s %s[%s]%s\n", s.bold, it.Title, s.reset, s.dim, it.ID, s.reset)
		fmt.Fprintf(w, "  %dx ₹%s = %s₹%s%s\n", it.Quantity, it.Price, s.yellow, it.Subtotal, s.reset)
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%sitems:%s %d\n", s.dim, s.reset, v.TotalItemCount)
	fmt.Fprintf(w, "%stotal:%s %s₹%s%s\n", s.dim, s.reset, s.bold, v.TotalPrice, s.reset)
	if v.AmountToFreeShipping.String() == "0" {
		fmt.Fprintf(w, "%sFree shipping unlocked%s\n", s.green, s.reset)
	} else {
		fmt.Fprintf(w, "%sAdd ₹%s more for free shipping (%s%%)%s\n",
			s.cyan, v.AmountToFreeShipping, v.FreeShippingProgress, s.reset)
	}
	fmt.Fprintf(w, "%s%s%s\n", s.bold, rule, s.reset)
}

func renderProducts(w io.Writer, page server.ProductPage, s style) {
	for _, p := range page.Products {
		marker := ""
		if p.InCart {
			marker = fmt.Sprintf(" %s(in cart)%s", s.green, s.reset)
		}
		fmt.Fprintf(w, "%s[%s]%s %s%s%s ₹%s", s.dim, p.ID, s.reset, s.bold, p.Title, s.reset, p.Price)
		if p.DiscountPercent > 0 {
			fmt.Fprintf(w, " %s₹%s -%d%%%s", s.dim, p.OriginalPrice, p.DiscountPercent, s.reset)
		}
		fmt.Fprintf(w, "%s\n", marker)
	}
	if page.HasMore {
		fmt.Fprintf(w, "%smore: --offset %d%s\n", s.dim, page.NextOffset, s.reset)
	}
}

func renderOrder(w io.Writer, order checkout.Order) {
	fmt.Fprintln(w, order.Message)
	fmt.Fprintln(w)
	fmt.Fprintln(w, order.Link)
}
