package server

import (
	"errors"

	"storefront/cart"
	"storefront/checkout"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// MapCommandError converts domain errors to gRPC status errors.
// Errors that already carry a status pass through; anything else is Internal.
func MapCommandError(err error) error {
	if err == nil {
		return nil
	}

	var cmdErr *cart.CommandError
	if errors.As(err, &cmdErr) {
		switch cmdErr.Code {
		case cart.StatusInvalidArgument:
			return status.Error(codes.InvalidArgument, cmdErr.Message)
		case cart.StatusFailedPrecondition:
			return status.Error(codes.FailedPrecondition, cmdErr.Message)
		case cart.StatusNotFound:
			return status.Error(codes.NotFound, cmdErr.Message)
		}
	}

	var contactErr *checkout.IncompleteContactError
	if errors.As(err, &contactErr) {
		return status.Error(codes.InvalidArgument, contactErr.Error())
	}

	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Errorf(codes.Internal, "internal error: %v", err)
}
