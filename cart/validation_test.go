package cart

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRequireNotBlank_PassesWhenNonBlank(t *testing.T) {
	if err := RequireNotBlank("value", "error"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestRequireNotBlank_FailsOnWhitespace(t *testing.T) {
	for _, v := range []string{"", " ", "\t\n"} {
		err := RequireNotBlank(v, "field required")
		if err == nil {
			t.Fatalf("expected error for %q, got nil", v)
		}
		if err.Code != StatusInvalidArgument {
			t.Errorf("expected InvalidArgument, got %v", err.Code)
		}
	}
}

func TestRequirePositive(t *testing.T) {
	if err := RequirePositive(1, "error"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	for _, v := range []int{0, -1} {
		err := RequirePositive(v, ErrMsgQuantityPositive)
		if err == nil {
			t.Fatalf("expected error for %d, got nil", v)
		}
		if err.Message != ErrMsgQuantityPositive {
			t.Errorf("expected %q, got %q", ErrMsgQuantityPositive, err.Message)
		}
	}
}

func TestRequireNonNegativePrice(t *testing.T) {
	if err := RequireNonNegativePrice(decimal.Zero, "error"); err != nil {
		t.Errorf("expected nil for zero, got %v", err)
	}
	if err := RequireNonNegativePrice(decimal.RequireFromString("-0.01"), "negative"); err == nil {
		t.Error("expected error for negative price")
	}
}

func TestRequireNotEmpty(t *testing.T) {
	err := RequireNotEmpty([]CartItem{}, ErrMsgCartEmpty)
	if err == nil {
		t.Fatal("expected error for empty slice")
	}
	if err.Code != StatusFailedPrecondition {
		t.Errorf("expected FAILED_PRECONDITION, got %s", err.Code)
	}
	if err := RequireNotEmpty([]int{1}, ErrMsgCartEmpty); err != nil {
		t.Errorf("expected nil for non-empty slice, got %v", err)
	}
}

func TestValidateCandidate(t *testing.T) {
	ok := CartItem{ID: "1", Title: "Diya", Price: decimal.Zero}
	if err := ValidateCandidate(ok); err != nil {
		t.Errorf("expected zero-priced item to be valid, got %v", err)
	}

	err := ValidateCandidate(CartItem{ID: "1", Title: "\t"})
	if err == nil || err.Message != ErrMsgTitleRequired {
		t.Errorf("expected %q, got %v", ErrMsgTitleRequired, err)
	}

	err = ValidateCandidate(CartItem{Title: "Diya"})
	if err == nil || err.Message != ErrMsgItemIDRequired {
		t.Errorf("expected %q, got %v", ErrMsgItemIDRequired, err)
	}
}
