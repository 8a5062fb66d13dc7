package datatypes

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hugr-lab/datatypes/interchange"
	"github.com/hugr-lab/datatypes/types"
)

// ToStatus converts an error from this module into a gRPC status error for
// services exposing the type layer over Flight or plain gRPC.
// Errors that already carry a status are returned unchanged; nil stays nil.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(Code(err), err.Error())
}

// Code maps an error to the gRPC code matching its kind.
func Code(err error) codes.Code {
	switch {
	case err == nil:
		return codes.OK
	case errors.Is(err, types.ErrInternal):
		// may wrap a more specific kind; the invariant violation wins
		return codes.Internal
	case errors.Is(err, types.ErrNotFound):
		return codes.NotFound
	case errors.Is(err, types.ErrInvalidRegistration),
		errors.Is(err, types.ErrTypeMismatch),
		errors.Is(err, interchange.ErrMalformed),
		errors.Is(err, ErrInvalidConfig):
		return codes.InvalidArgument
	case errors.Is(err, types.ErrValueTooLarge):
		return codes.OutOfRange
	case errors.Is(err, types.ErrUnimplemented):
		return codes.Unimplemented
	case errors.Is(err, ErrAlreadyBuilt):
		return codes.FailedPrecondition
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	default:
		return codes.Internal
	}
}
