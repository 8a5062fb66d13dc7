package datatypes

import (
	"errors"
	"log/slog"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hugr-lab/datatypes/registry"
	"github.com/hugr-lab/datatypes/types"
)

// Config contains configuration for a TypeSystem.
type Config struct {
	// Registry holds the extension types known to the system.
	// OPTIONAL: If nil, an empty MemoryRegistry is created.
	Registry registry.Registry

	// Allocator for Arrow memory used by snapshots.
	// OPTIONAL: Uses memory.DefaultAllocator if nil.
	Allocator memory.Allocator

	// Logger for internal logging.
	// OPTIONAL: Uses slog.Default() if nil.
	// Note: If LogLevel is specified, a new logger will be created with that level.
	Logger *slog.Logger

	// LogLevel sets the logging level.
	// OPTIONAL: If nil, the logger is used as configured.
	// If Logger is also provided, LogLevel is ignored.
	LogLevel *slog.Level

	// Preload lists extension types registered at construction.
	// OPTIONAL. Native types are rejected with ErrInvalidConfig.
	Preload []types.LogicalType

	// MaxMessageSize bounds decompressed interchange messages in bytes.
	// OPTIONAL: If 0, interchange.DefaultMaxMessageSize is used.
	MaxMessageSize uint64
}

// Standard errors returned by the datatypes package.
var (
	// ErrInvalidConfig indicates Config validation failed.
	ErrInvalidConfig = errors.New("invalid type system config")

	// ErrAlreadyBuilt indicates a RegistryBuilder was reused after Build.
	ErrAlreadyBuilt = errors.New("registry already built")
)
