package datatypes

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hugr-lab/datatypes/interchange"
	"github.com/hugr-lab/datatypes/types"
)

// TestCode tests the mapping of error kinds onto gRPC codes.
func TestCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"nil", nil, codes.OK},
		{"not found", types.NewError(types.ErrNotFound, "logical type", "x", "not registered"), codes.NotFound},
		{"registration", types.NewError(types.ErrInvalidRegistration, "logical type", "Int64", "native"), codes.InvalidArgument},
		{"mismatch", fmt.Errorf("field %q: %w", "a", types.ErrTypeMismatch), codes.InvalidArgument},
		{"malformed", fmt.Errorf("%w: empty message", interchange.ErrMalformed), codes.InvalidArgument},
		{"too large", types.ErrValueTooLarge, codes.OutOfRange},
		{"unimplemented", types.ErrUnimplemented, codes.Unimplemented},
		{"internal wins", types.WrapError(types.ErrInternal, "physical scalar", "x", types.ErrUnimplemented), codes.Internal},
		{"already built", ErrAlreadyBuilt, codes.FailedPrecondition},
		{"canceled", context.Canceled, codes.Canceled},
		{"other", errors.New("boom"), codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Code(tt.err); got != tt.want {
				t.Errorf("Code(%v) = %s, want %s", tt.err, got, tt.want)
			}
		})
	}
}

func TestToStatus(t *testing.T) {
	if ToStatus(nil) != nil {
		t.Error("Expected nil for nil error")
	}

	err := ToStatus(types.NewError(types.ErrNotFound, "logical type", "geo", "not registered"))
	st, ok := status.FromError(err)
	if !ok {
		t.Fatalf("Expected status error, got %v", err)
	}
	if st.Code() != codes.NotFound {
		t.Errorf("Expected NotFound, got %s", st.Code())
	}
	if st.Message() != `not found: logical type "geo": not registered` {
		t.Errorf("Unexpected message %q", st.Message())
	}

	existing := status.Error(codes.Aborted, "aborted")
	if got := ToStatus(existing); got != existing {
		t.Errorf("Expected status errors to pass through, got %v", got)
	}
}
