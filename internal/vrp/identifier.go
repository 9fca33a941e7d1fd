package vrp

import "context"

// Allocator hands out the monotonically increasing integer ids solvers
// require. The read-max-then-increment strategy is not atomic: without a
// transactional guarantee or unique constraint in the backing store,
// concurrent allocation against the same collection can produce duplicates.
// Serializing allocation is the persistence layer's responsibility.
type Allocator interface {
	// Next returns the next free optimizer id for a project's collection.
	Next(ctx context.Context) (int64, error)
}

// NextOptimizerID computes the successor of the highest id seen so far.
// A max of 0 (empty collection) yields 1.
func NextOptimizerID(maxExisting int64) int64 {
	if maxExisting < 0 {
		return 1
	}
	return maxExisting + 1
}
