// Package rangeset tracks the disjoint half-open byte ranges currently
// carved out of one region. Every mutation runs under a single lock
// acquisition: in particular the overlap check and the insert are one
// critical section, so two concurrent callers can never both validate
// against a stale view and insert conflicting ranges.
package rangeset

import (
	"sort"
	"sync"

	"github.com/samber/lo"

	"github.com/rdmakit/memreg/pkg/memory"
)

// Set is the occupied-range bookkeeping for one region. Ranges are kept
// pairwise disjoint and sorted in ascending order by start offset. The
// owning region's lifecycle is tracked here too: sealing the set and
// mutating it are serialized by the same mutex, so a region can never be
// destroyed between a liveness check and the insert that depends on it.
type Set struct {
	mu     sync.Mutex
	limit  uint64
	sealed bool
	ranges []memory.Range
}

// New returns an empty Set covering [0, limit).
func New(limit uint64) *Set {
	return &Set{limit: limit}
}

// Insert adds r to the set. It fails with memory.ErrInvalidRange if r is
// empty or exceeds the limit, and with memory.ErrOverlap if r intersects a
// live entry. On failure the set is unchanged.
func (s *Set) Insert(r memory.Range) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(r)
}

func (s *Set) insertLocked(r memory.Range) error {
	if s.sealed {
		return memory.ErrAlreadyClosed
	}
	if !r.IsValid() || r.End > s.limit {
		return memory.ErrInvalidRange
	}
	if lo.SomeBy(s.ranges, r.Overlaps) {
		return memory.ErrOverlap
	}
	s.ranges = append(s.ranges, r)
	sort.Slice(s.ranges, func(i, j int) bool {
		return s.ranges[i].Start < s.ranges[j].Start
	})
	return nil
}

// Reserve finds the lowest-address gap of at least size bytes (first-fit)
// and inserts it in the same critical section as the scan. It fails with
// memory.ErrInvalidRange for a zero size and memory.ErrOutOfSpace when no
// interior or tail gap is large enough.
func (s *Set) Reserve(size uint64) (memory.Range, error) {
	if size == 0 {
		return memory.Range{}, memory.ErrInvalidRange
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sealed {
		return memory.Range{}, memory.ErrAlreadyClosed
	}

	// Gap sizes are computed by subtraction so a near-max size request
	// cannot wrap the cursor arithmetic.
	var cursor uint64
	for _, occupied := range s.ranges {
		if size <= occupied.Start-cursor {
			break
		}
		cursor = occupied.End
	}
	if size > s.limit-cursor {
		return memory.Range{}, memory.ErrOutOfSpace
	}

	r := memory.Range{Start: cursor, End: cursor + size}
	if err := s.insertLocked(r); err != nil {
		return memory.Range{}, err
	}
	return r, nil
}

// Remove deletes the entry exactly matching r. This is the only legal path
// for retiring a range; a miss means the owner was released through an
// aliasing path and is reported as memory.ErrNotAllocated.
func (s *Set) Remove(r memory.Range) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sealed {
		return memory.ErrAlreadyClosed
	}

	for i, occupied := range s.ranges {
		if occupied == r {
			s.ranges = append(s.ranges[:i], s.ranges[i+1:]...)
			return nil
		}
	}
	return memory.ErrNotAllocated
}

// Seal closes the set to further mutation, in the same critical section as
// the emptiness check. It returns memory.ErrAlreadyClosed if the set is
// already sealed. A non-empty set is not sealed; the number of live ranges
// is returned so the owner can act on them.
func (s *Set) Seal() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sealed {
		return 0, memory.ErrAlreadyClosed
	}
	if n := len(s.ranges); n != 0 {
		return n, nil
	}
	s.sealed = true
	return 0, nil
}

// Unseal reopens a sealed set. It is for owners whose release failed after
// sealing, so the region stays usable and the release can be retried.
func (s *Set) Unseal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sealed = false
}

// Empty reports whether no ranges are live.
func (s *Set) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ranges) == 0
}

// Len returns the number of live ranges.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ranges)
}

// Ranges returns a copy of the live ranges in ascending start order.
// Callers wanting a placement policy other than first-fit scan this.
func (s *Set) Ranges() []memory.Range {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]memory.Range, len(s.ranges))
	copy(out, s.ranges)
	return out
}
