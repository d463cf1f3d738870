package memory

import (
	"fmt"

	"github.com/containerd/errdefs"
)

// Allocation-shape errors are ordinary results returned to the immediate
// caller; none of them aborts the process. Each sentinel wraps the matching
// errdefs class so API boundaries can classify them without importing this
// package's vocabulary.
var (
	// ErrInvalidRange indicates a requested sub-range is empty or exceeds
	// the parent region's bounds.
	ErrInvalidRange = fmt.Errorf("sub-range is empty or out of bounds: %w", errdefs.ErrInvalidArgument)

	// ErrOverlap indicates a requested sub-range intersects a live child.
	// The caller should pick another range or use Alloc.
	ErrOverlap = fmt.Errorf("sub-range overlaps a live sub-region: %w", errdefs.ErrConflict)

	// ErrOutOfSpace indicates no gap of sufficient size exists for an
	// allocation.
	ErrOutOfSpace = fmt.Errorf("not enough space: %w", errdefs.ErrResourceExhausted)

	// ErrNotAllocated indicates an exact-match range removal found no
	// entry, which means the region was released through an aliasing path.
	ErrNotAllocated = fmt.Errorf("no sub-region allocated at the given range: %w", errdefs.ErrNotFound)

	// ErrAlreadyClosed indicates a region was closed twice.
	ErrAlreadyClosed = fmt.Errorf("memory region has already been closed: %w", errdefs.ErrFailedPrecondition)
)
