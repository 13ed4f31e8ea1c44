package cart

// StatusCode represents the category of a rejected cart command.
type StatusCode int

const (
	StatusInvalidArgument StatusCode = iota
	StatusFailedPrecondition
	StatusNotFound
)

// Error message constants for the cart domain.
const (
	ErrMsgItemIDRequired   = "Item ID is required"
	ErrMsgTitleRequired    = "Item title is required"
	ErrMsgPriceNegative    = "Price cannot be negative"
	ErrMsgQuantityPositive = "Quantity must be positive"
	ErrMsgCartEmpty        = "Cart is empty"
	ErrMsgProductNotFound  = "Product not found"
	ErrMsgPriceInvalid     = "Price must be a number"
)

func (s StatusCode) String() string {
	switch s {
	case StatusInvalidArgument:
		return "INVALID_ARGUMENT"
	case StatusFailedPrecondition:
		return "FAILED_PRECONDITION"
	case StatusNotFound:
		return "NOT_FOUND"
	default:
		return "UNKNOWN"
	}
}

// CommandError is returned when a cart command is rejected before touching state.
type CommandError struct {
	Code    StatusCode
	Message string
}

func (e *CommandError) Error() string {
	return e.Message
}

// NewInvalidArgument creates a CommandError for invalid input.
func NewInvalidArgument(message string) *CommandError {
	return &CommandError{Code: StatusInvalidArgument, Message: message}
}

// NewFailedPrecondition creates a CommandError for violated preconditions.
func NewFailedPrecondition(message string) *CommandError {
	return &CommandError{Code: StatusFailedPrecondition, Message: message}
}

// NewNotFound creates a CommandError for a missing referenced entity.
func NewNotFound(message string) *CommandError {
	return &CommandError{Code: StatusNotFound, Message: message}
}
