// Package recovery guards calls into user-provided extension code
// (orderings, printers, casts) so a panic surfaces as an ErrInternal error
// instead of crashing the caller.
package recovery

import (
	"log/slog"
	"runtime/debug"

	"github.com/hugr-lab/datatypes/types"
)

// RecoverToValue runs fn and converts a panic into an ErrInternal error
// naming operation. On panic the zero value is returned.
//
// Example:
//
//	cmp, err := recovery.RecoverToValue(logger, "Comparator", func() (types.Comparator, error) {
//	    return ordering.NewComparator(lt, arr, opts)
//	})
func RecoverToValue[T any](logger *slog.Logger, operation string, fn func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			result = zero
			err = panicError(logger, operation, r)
		}
	}()

	return fn()
}

func panicError(logger *slog.Logger, operation string, r any) error {
	logger.Error("Panic recovered",
		"operation", operation,
		"panic", r,
		"stack", string(debug.Stack()),
	)
	return types.NewError(types.ErrInternal, "operation", operation, "panicked: %v", r)
}
