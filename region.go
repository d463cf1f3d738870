package memreg

import (
	"github.com/rdmakit/memreg/internal/buffer"
	"github.com/rdmakit/memreg/internal/rangeset"
	"github.com/rdmakit/memreg/pkg/memory"
	"github.com/rdmakit/memreg/pkg/verbs"
)

// Kind identifies where a region sits in the ownership hierarchy and
// whether its memory is locally or remotely owned. It never changes after
// construction.
type Kind uint8

const (
	// KindLocalRoot owns the backing buffer and the hardware registration
	// handle. Only local roots are ever deregistered.
	KindLocalRoot Kind = iota
	// KindLocalNode is a sub-window of a local root or another local node.
	// It owns no hardware resource itself.
	KindLocalNode
	// KindRemoteRoot is an imported peer descriptor. It is not backed by
	// any local allocation and needs no teardown.
	KindRemoteRoot
	// KindRemoteNode is a sub-window of a remote root or node.
	KindRemoteNode
)

func (k Kind) String() string {
	switch k {
	case KindLocalRoot:
		return "local-root"
	case KindLocalNode:
		return "local-node"
	case KindRemoteRoot:
		return "remote-root"
	case KindRemoteNode:
		return "remote-node"
	default:
		return "invalid"
	}
}

// Region is one window of registered memory, local or remote, root or
// sub-region. Regions form a tree: nodes hold strong references to their
// immediate parent (keeping it alive) and to the ultimate root (for O(1)
// key and buffer lookups); parents never reference child objects, only the
// byte ranges they occupy.
type Region struct {
	addr   uint64
	length uint64
	// key is the root's local key for local trees and the remote key for
	// remote trees; it propagates unchanged to every descendant.
	key  uint32
	kind Kind

	// Local-root-only hardware ownership.
	mr  verbs.MR
	pd  *verbs.ProtectionDomain
	buf *buffer.Buffer

	// Node-only references up the tree.
	parent *Region
	root   *Region

	// sub tracks the disjoint ranges currently carved out of this region,
	// relative to its own address space, and seals on Close. Its mutex is
	// the one lock serializing this region's bookkeeping and lifecycle.
	sub *rangeset.Set
}

var (
	_ memory.Memory       = (*Region)(nil)
	_ memory.LocalMemory  = (*Region)(nil)
	_ memory.RemoteMemory = (*Region)(nil)
)

// Address returns the absolute base address of the region.
func (r *Region) Address() uint64 {
	return r.addr
}

// Length returns the region size in bytes.
func (r *Region) Length() uint64 {
	return r.length
}

// Kind returns the region's kind.
func (r *Region) Kind() Kind {
	return r.kind
}

// IsLocal reports whether the region describes locally owned memory.
func (r *Region) IsLocal() bool {
	return r.kind == KindLocalRoot || r.kind == KindLocalNode
}

// IsNode reports whether the region is a sub-region rather than a root.
func (r *Region) IsNode() bool {
	return r.kind == KindLocalNode || r.kind == KindRemoteNode
}

// LocalKey returns the key authorizing local hardware access. Asking a
// remote region for a local key is a logic defect and panics.
func (r *Region) LocalKey() uint32 {
	if !r.IsLocal() {
		panic("memreg: local key requested for a remote memory region")
	}
	return r.key
}

// RemoteKey returns the key a peer must present to access the region.
func (r *Region) RemoteKey() uint32 {
	if r.IsLocal() {
		return r.rootOrSelf().mr.RKey
	}
	return r.key
}

// RemoteMR snapshots the region as a wire-transmissible descriptor. The
// descriptor is self-contained and does not extend the region's lifetime.
func (r *Region) RemoteMR() memory.RemoteDescriptor {
	return memory.RemoteDescriptor{
		Addr: r.addr,
		Len:  r.length,
		RKey: r.RemoteKey(),
	}
}

// Bytes returns the window of the root's backing buffer covered by this
// region. Remote regions have no local bytes and panic.
func (r *Region) Bytes() []byte {
	if !r.IsLocal() {
		panic("memreg: byte access requested for a remote memory region")
	}
	root := r.rootOrSelf()
	off := r.addr - root.addr
	return root.buf.Bytes()[off : off+r.length]
}

// OccupiedRanges returns a copy of the sub-ranges currently carved out of
// the region, in ascending start order. Callers wanting a placement policy
// other than first-fit can scan this and use Slice directly.
func (r *Region) OccupiedRanges() []memory.Range {
	return r.sub.Ranges()
}

func (r *Region) rootOrSelf() *Region {
	if r.root != nil {
		return r.root
	}
	return r
}
