package memreg

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"

	"github.com/rdmakit/memreg/internal/buffer"
	"github.com/rdmakit/memreg/internal/log"
	"github.com/rdmakit/memreg/internal/logfields"
	"github.com/rdmakit/memreg/internal/oc"
	"github.com/rdmakit/memreg/internal/rangeset"
	"github.com/rdmakit/memreg/pkg/memory"
	"github.com/rdmakit/memreg/pkg/verbs"
)

// Register allocates a zero-filled backing buffer described by layout,
// registers it with the hardware through pd, and returns the owning local
// root region. It requests the default access flags: local write plus
// remote write, read and atomic.
func Register(ctx context.Context, pd *verbs.ProtectionDomain, layout memory.Layout) (*Region, error) {
	return RegisterAccess(ctx, pd, layout, verbs.DefaultAccess)
}

// RegisterAccess is Register with caller-chosen access flags. Registration
// failures are returned wrapped and are not retried; the parameters are
// caller-controlled, so a blind retry cannot help.
func RegisterAccess(ctx context.Context, pd *verbs.ProtectionDomain, layout memory.Layout, access verbs.Access) (_ *Region, err error) {
	ctx, span := trace.StartSpan(ctx, "memreg::RegisterAccess")
	defer span.End()
	defer func() { oc.SetSpanStatus(span, err) }()
	span.AddAttributes(
		trace.Int64Attribute(logfields.Length, int64(layout.Size)),
		trace.Int64Attribute(logfields.Access, int64(access)))

	buf, err := buffer.Allocate(layout)
	if err != nil {
		return nil, errors.Wrap(err, "failed to allocate backing buffer")
	}
	mr, err := pd.RegisterMemory(ctx, buf.Addr(), buf.Size(), access)
	if err != nil {
		_ = buf.Free()
		return nil, errors.Wrapf(err, "failed to register %d-byte memory region", buf.Size())
	}

	r := &Region{
		addr:   uint64(buf.Addr()),
		length: buf.Size(),
		key:    mr.LKey,
		kind:   KindLocalRoot,
		mr:     mr,
		pd:     pd,
		buf:    buf,
		sub:    rangeset.New(buf.Size()),
	}
	span.AddAttributes(trace.StringAttribute(logfields.Region, log.Format(ctx, r.RemoteMR())))
	log.S(ctx, logrus.Fields{
		logfields.Address:   r.addr,
		logfields.Length:    r.length,
		logfields.LocalKey:  mr.LKey,
		logfields.RemoteKey: mr.RKey,
	}).Debug("registered memory region")
	return r, nil
}

// ImportRemote builds a remote root region from a descriptor received from
// a peer. The result is not backed by any local allocation, but can be
// sliced like any other region to hand out disjoint remote windows.
func ImportRemote(desc memory.RemoteDescriptor) *Region {
	return &Region{
		addr:   desc.Addr,
		length: desc.Len,
		key:    desc.RKey,
		kind:   KindRemoteRoot,
		sub:    rangeset.New(desc.Len),
	}
}
