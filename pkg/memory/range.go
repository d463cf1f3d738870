package memory

import "fmt"

// Range is a half-open byte range [Start, End) relative to some region's
// own address space.
type Range struct {
	Start uint64
	End   uint64
}

// Len returns the number of bytes covered by the range.
func (r Range) Len() uint64 {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// IsValid reports whether the range is non-empty and well ordered.
func (r Range) IsValid() bool {
	return r.Start < r.End
}

// Overlaps reports whether the range shares at least one byte with other.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}
