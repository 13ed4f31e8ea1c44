package cart

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// TotalPrice returns Σ price × quantity over items.
func TotalPrice(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// TotalItemCount returns Σ quantity over items.
func TotalItemCount(items []CartItem) int {
	count := 0
	for _, it := range items {
		count += it.Quantity
	}
	return count
}

// LineSubtotal returns price × quantity for a single line.
func LineSubtotal(item CartItem) decimal.Decimal {
	return item.Subtotal()
}

// AmountToThreshold returns how much more must be spent to reach threshold,
// never less than zero.
func AmountToThreshold(items []CartItem, threshold decimal.Decimal) decimal.Decimal {
	remaining := threshold.Sub(TotalPrice(items))
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// ThresholdProgress returns the cart total as a percentage of threshold,
// capped at 100. A non-positive threshold counts as already reached.
func ThresholdProgress(items []CartItem, threshold decimal.Decimal) decimal.Decimal {
	if !threshold.IsPositive() {
		return hundred
	}
	pct := TotalPrice(items).Div(threshold).Mul(hundred)
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct.Round(2)
}
