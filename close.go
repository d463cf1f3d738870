package memreg

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"

	"github.com/rdmakit/memreg/internal/log"
	"github.com/rdmakit/memreg/internal/logfields"
	"github.com/rdmakit/memreg/internal/oc"
	"github.com/rdmakit/memreg/pkg/memory"
)

// Close destroys the region. Closing a node removes its byte range from the
// parent's bookkeeping; closing a local root deregisters the hardware
// mapping exactly once and frees the backing buffer; closing a remote root
// releases nothing. A second Close returns memory.ErrAlreadyClosed. If the
// release itself fails, the region stays open so the failure is not
// silently half-applied.
//
// Closing a region that still has live sub-regions is a logic defect in the
// caller, not a runtime condition: continuing could deregister memory still
// referenced by a live window, so Close panics instead of recovering. The
// seal and the live-children check share the bookkeeping lock, so Close can
// never interleave with a concurrent Slice or Alloc on the same region.
func (r *Region) Close() error {
	n, err := r.sub.Seal()
	if err != nil {
		return err
	}
	if n != 0 {
		panic(fmt.Sprintf("memreg: %s region closed with %d live sub-regions", r.kind, n))
	}

	switch r.kind {
	case KindLocalRoot:
		return r.deregister()
	case KindRemoteRoot:
		// Imported descriptors hold no local resources.
		return nil
	default:
		offset := r.addr - r.parent.addr
		rng := memory.Range{Start: offset, End: offset + r.length}
		if err := r.parent.sub.Remove(rng); err != nil {
			r.sub.Unseal()
			return errors.Wrapf(err, "failed to release sub-region %s", rng)
		}
		return nil
	}
}

func (r *Region) deregister() (err error) {
	ctx, span := trace.StartSpan(context.Background(), "memreg::Region::deregister")
	defer span.End()
	defer func() { oc.SetSpanStatus(span, err) }()
	span.AddAttributes(
		trace.Int64Attribute(logfields.Length, int64(r.length)),
		trace.Int64Attribute(logfields.Handle, int64(r.mr.Handle)))

	if err := r.pd.DeregisterMemory(ctx, r.mr); err != nil {
		r.sub.Unseal()
		return errors.Wrap(err, "failed to deregister memory region")
	}
	if err := r.buf.Free(); err != nil {
		return errors.Wrap(err, "failed to release backing buffer")
	}
	log.S(ctx, logrus.Fields{
		logfields.Address: r.addr,
		logfields.Length:  r.length,
	}).Debug("deregistered memory region")
	return nil
}
