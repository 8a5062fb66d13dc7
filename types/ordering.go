package types

import (
	"github.com/apache/arrow-go/v18/arrow"
)

// SortOptions controls the direction of a sort and the placement of nulls.
type SortOptions struct {
	Descending bool
	NullsFirst bool
}

// Comparator orders two rows of the array it was created for.
// It returns a negative number, zero or a positive number as row i sorts
// before, together with or after row j. Comparators are pure and may be
// called concurrently.
type Comparator func(i, j int) int

// CustomOrdering supplies a semantic total order for a logical type whose
// order differs from the natural order of its storage.
type CustomOrdering interface {
	// OrderingID is a stable identifier used for plan equality and caching.
	OrderingID() string

	// Comparator returns a comparator over the rows of arr.
	Comparator(arr arrow.Array, opts SortOptions) (Comparator, error)
}

// SortOrdering is either the natural order of the storage type or a custom
// ordering.
type SortOrdering struct {
	custom CustomOrdering
}

// DefaultOrdering returns the natural ordering.
func DefaultOrdering() SortOrdering { return SortOrdering{} }

// CustomSortOrdering returns an ordering backed by c.
func CustomSortOrdering(c CustomOrdering) SortOrdering { return SortOrdering{custom: c} }

// IsDefault reports whether o is the natural ordering.
func (o SortOrdering) IsDefault() bool { return o.custom == nil }

// Custom returns the custom ordering, or nil.
func (o SortOrdering) Custom() CustomOrdering { return o.custom }

// ID returns "default" or the custom ordering id.
func (o SortOrdering) ID() string {
	if o.custom == nil {
		return "default"
	}
	return o.custom.OrderingID()
}

// Equal compares orderings by id.
func (o SortOrdering) Equal(other SortOrdering) bool {
	return o.ID() == other.ID()
}
