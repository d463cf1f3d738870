// Package buffer allocates the zero-filled backing buffers that local root
// regions register with the hardware. On linux buffers are anonymous
// private mappings, which gives page alignment for free; elsewhere a heap
// block is over-allocated and offset to honor the requested alignment.
package buffer

import (
	"unsafe"

	"github.com/pkg/errors"

	"github.com/rdmakit/memreg/pkg/memory"
)

var ErrAlreadyFreed = errors.New("backing buffer has already been freed")

// Buffer is an exclusively owned backing allocation. It must be freed
// exactly once, after the hardware registration covering it is gone.
type Buffer struct {
	data    []byte
	release func() error
	freed   bool
}

// Allocate returns a zero-filled buffer of layout.Size bytes whose base
// address is aligned to layout.Align.
func Allocate(layout memory.Layout) (*Buffer, error) {
	if layout.Size == 0 {
		return nil, errors.Wrap(memory.ErrInvalidRange, "cannot allocate a zero-length buffer")
	}
	return allocate(layout)
}

// Addr returns the base address of the buffer.
func (b *Buffer) Addr() uintptr {
	return uintptr(unsafe.Pointer(&b.data[0]))
}

// Size returns the buffer length in bytes.
func (b *Buffer) Size() uint64 {
	return uint64(len(b.data))
}

// Bytes returns the buffer contents.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Free releases the allocation. Freeing twice returns ErrAlreadyFreed.
func (b *Buffer) Free() error {
	if b.freed {
		return ErrAlreadyFreed
	}
	b.freed = true
	if b.release != nil {
		return b.release()
	}
	return nil
}

// alignmentOf normalizes a layout alignment: zero means none.
func alignmentOf(layout memory.Layout) uint64 {
	if layout.Align == 0 {
		return 1
	}
	return layout.Align
}

func base(b []byte) uintptr {
	return uintptr(unsafe.Pointer(&b[0]))
}

// alignedOffset returns how many bytes past addr the first align-aligned
// address lies.
func alignedOffset(addr uintptr, align uint64) uint64 {
	rem := uint64(addr) & (align - 1)
	if rem == 0 {
		return 0
	}
	return align - rem
}
