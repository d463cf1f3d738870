// Package memory defines the capability interfaces and wire types shared by
// every memory region in this module, local or remote. The region hierarchy
// in the root package and the hardware seam in pkg/verbs are both written
// against these contracts.
package memory

const (
	KiB uint64 = 1024
	MiB uint64 = 1024 * KiB
	GiB uint64 = 1024 * MiB
)

// Memory is anything with an address and a length: a registered local
// buffer, a sub-window of one, or an imported remote descriptor.
type Memory interface {
	// Address returns the absolute base address of the window.
	Address() uint64
	// Length returns the size of the window in bytes.
	Length() uint64
}

// LocalMemory is memory the local host can access directly. The local key
// authorizes the hardware to use the region in local work requests.
type LocalMemory interface {
	Memory
	LocalKey() uint32
}

// RemoteMemory is memory a peer may address over the fabric. The remote key
// authorizes remote read/write/atomic verbs against the region.
type RemoteMemory interface {
	Memory
	RemoteKey() uint32
}
