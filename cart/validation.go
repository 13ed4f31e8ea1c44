package cart

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RequireNotBlank checks that a field holds something other than whitespace.
func RequireNotBlank(field, errMsg string) *CommandError {
	if strings.TrimSpace(field) == "" {
		return NewInvalidArgument(errMsg)
	}
	return nil
}

// RequirePositive checks that a value is greater than zero.
func RequirePositive(value int, errMsg string) *CommandError {
	if value <= 0 {
		return NewInvalidArgument(errMsg)
	}
	return nil
}

// RequireNonNegativePrice checks that a price is zero or greater.
func RequireNonNegativePrice(value decimal.Decimal, errMsg string) *CommandError {
	if value.IsNegative() {
		return NewInvalidArgument(errMsg)
	}
	return nil
}

// RequireNotEmpty checks that a slice has at least one element.
func RequireNotEmpty[T any](items []T, errMsg string) *CommandError {
	if len(items) == 0 {
		return NewFailedPrecondition(errMsg)
	}
	return nil
}

// ValidateCandidate checks the fields a new cart line must carry.
func ValidateCandidate(item CartItem) *CommandError {
	if err := RequireNotBlank(item.ID, ErrMsgItemIDRequired); err != nil {
		return err
	}
	if err := RequireNotBlank(item.Title, ErrMsgTitleRequired); err != nil {
		return err
	}
	return RequireNonNegativePrice(item.Price, ErrMsgPriceNegative)
}
