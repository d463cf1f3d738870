//go:build linux

package buffer

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/rdmakit/memreg/pkg/memory"
)

func allocate(layout memory.Layout) (*Buffer, error) {
	align := alignmentOf(layout)
	pageSize := uint64(unix.Getpagesize())

	// mmap gives page alignment; only over-map for larger requests.
	slack := uint64(0)
	if align > pageSize {
		slack = align
	}

	raw, err := unix.Mmap(-1, 0, int(layout.Size+slack),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to map %d-byte anonymous buffer", layout.Size)
	}

	off := alignedOffset(base(raw), align)
	return &Buffer{
		data: raw[off : off+layout.Size],
		release: func() error {
			return errors.Wrap(unix.Munmap(raw), "failed to unmap backing buffer")
		},
	}, nil
}
