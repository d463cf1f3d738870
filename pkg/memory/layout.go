package memory

import "github.com/pkg/errors"

// Layout is a size and alignment request for a buffer or sub-allocation.
// Alignment is honored when allocating a root's backing buffer; for
// sub-allocation it is advisory, since the first-fit allocator is
// byte-granular.
type Layout struct {
	Size  uint64
	Align uint64
}

// NewLayout validates and builds a Layout. Size must be non-zero and align
// must be a power of two (zero means no alignment requirement).
func NewLayout(size, align uint64) (Layout, error) {
	if size == 0 {
		return Layout{}, errors.Wrap(ErrInvalidRange, "layout size must be non-zero")
	}
	if align&(align-1) != 0 {
		return Layout{}, errors.Wrapf(ErrInvalidRange, "layout alignment %d is not a power of two", align)
	}
	if align == 0 {
		align = 1
	}
	return Layout{Size: size, Align: align}, nil
}

// LayoutOf returns a Layout for size bytes with no alignment requirement.
func LayoutOf(size uint64) Layout {
	return Layout{Size: size, Align: 1}
}
