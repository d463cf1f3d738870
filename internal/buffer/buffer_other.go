//go:build !linux

package buffer

import (
	"github.com/rdmakit/memreg/pkg/memory"
)

func allocate(layout memory.Layout) (*Buffer, error) {
	align := alignmentOf(layout)

	// Over-allocate and offset; the raw block stays referenced by the
	// release closure so the aligned window cannot outlive it.
	raw := make([]byte, layout.Size+align-1)
	off := alignedOffset(base(raw), align)
	return &Buffer{
		data:    raw[off : off+layout.Size],
		release: func() error { _ = raw; return nil },
	}, nil
}
