package memreg

import (
	"github.com/rdmakit/memreg/internal/rangeset"
	"github.com/rdmakit/memreg/pkg/memory"
)

// Slice carves the explicit byte range rng, relative to r's own address
// space, out of r. It fails with memory.ErrInvalidRange if rng is empty or
// out of bounds and with memory.ErrOverlap if rng intersects a live
// sub-region; on failure r is unchanged. Slicing a closed region fails with
// memory.ErrAlreadyClosed. The liveness check, overlap check and range
// insertion happen in one critical section, so concurrent Slice and Close
// calls can never both succeed against the same view.
func (r *Region) Slice(rng memory.Range) (*Region, error) {
	if err := r.sub.Insert(rng); err != nil {
		return nil, err
	}
	return r.newChild(rng), nil
}

// Alloc carves out the lowest-addressed free gap of layout.Size bytes
// (first-fit). Alignment is advisory: the allocator is byte-granular, and
// callers needing stricter placement use OccupiedRanges plus Slice. It
// fails with memory.ErrOutOfSpace when no interior or tail gap is large
// enough, and with memory.ErrAlreadyClosed on a closed region. The scan and
// the insertion share one critical section.
func (r *Region) Alloc(layout memory.Layout) (*Region, error) {
	rng, err := r.sub.Reserve(layout.Size)
	if err != nil {
		return nil, err
	}
	return r.newChild(rng), nil
}

// newChild assumes rng was already inserted into r.sub.
func (r *Region) newChild(rng memory.Range) *Region {
	kind := KindLocalNode
	if !r.IsLocal() {
		kind = KindRemoteNode
	}
	return &Region{
		addr:   r.addr + rng.Start,
		length: rng.Len(),
		key:    r.key,
		kind:   kind,
		parent: r,
		root:   r.rootOrSelf(),
		sub:    rangeset.New(rng.Len()),
	}
}
