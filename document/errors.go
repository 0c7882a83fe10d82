package document

import "errors"

var (
	// ErrInvalidSplitBoundary is returned when a split is requested outside
	// a node's range or inside an atomic length-1 fragment. This is a
	// programming error, not a recoverable condition.
	ErrInvalidSplitBoundary = errors.New("invalid split boundary")

	// ErrOrphanedNode is returned when a tree walk needs to re-attach a node
	// whose parent slot is gone. It indicates a prior invariant violation
	// and is never retried.
	ErrOrphanedNode = errors.New("orphaned node")
)
