// Package verbs is the seam between the region hierarchy and the RDMA
// hardware layer. It defines the access-flag vocabulary, the opaque handles
// returned by memory registration, and the Provider interface a hardware
// backend (or the in-package simulated backend) implements. The core treats
// every handle as opaque and guarantees exactly one matching deregistration
// per registration.
package verbs

import (
	"context"

	"github.com/pkg/errors"
)

// Access is the registration access-flag bitset. Values match the ibverbs
// IBV_ACCESS_* constants so a cgo-backed provider can pass them through.
type Access uint32

const (
	AccessLocalWrite Access = 1 << iota
	AccessRemoteWrite
	AccessRemoteRead
	AccessRemoteAtomic
)

// DefaultAccess is the flag set requested by the convenience root
// constructor: local write plus remote write, read and atomic.
const DefaultAccess = AccessLocalWrite | AccessRemoteWrite | AccessRemoteRead | AccessRemoteAtomic

// PD is an opaque protection-domain handle issued by a Provider.
type PD uintptr

// MR is a hardware memory registration: the opaque handle required for
// deregistration plus the two keys issued by the hardware.
type MR struct {
	Handle uintptr
	LKey   uint32
	RKey   uint32
}

var (
	ErrUnknownPD  = errors.New("unknown protection domain")
	ErrUnknownMR  = errors.New("unknown memory registration")
	ErrZeroLength = errors.New("cannot register a zero-length buffer")
)

// Provider abstracts the verbs operations the region hierarchy consumes.
// Connection establishment, queue pairs and completion polling live in the
// transport layer and are deliberately absent here.
type Provider interface {
	AllocPD(ctx context.Context) (PD, error)
	DeallocPD(ctx context.Context, pd PD) error

	// RegMR registers length bytes at addr with the given access flags.
	// The returned MR must be released with exactly one DeregMR call.
	RegMR(ctx context.Context, pd PD, addr uintptr, length uint64, access Access) (MR, error)
	DeregMR(ctx context.Context, mr MR) error
}

// ProtectionDomain pairs a Provider with one of its protection domains.
// All registrations for a region tree go through a single domain.
type ProtectionDomain struct {
	provider Provider
	pd       PD
}

// NewProtectionDomain allocates a protection domain from the provider.
func NewProtectionDomain(ctx context.Context, p Provider) (*ProtectionDomain, error) {
	pd, err := p.AllocPD(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to allocate protection domain")
	}
	return &ProtectionDomain{provider: p, pd: pd}, nil
}

// RegisterMemory registers length bytes at addr within this domain.
func (d *ProtectionDomain) RegisterMemory(ctx context.Context, addr uintptr, length uint64, access Access) (MR, error) {
	return d.provider.RegMR(ctx, d.pd, addr, length, access)
}

// DeregisterMemory releases a registration previously returned by
// RegisterMemory.
func (d *ProtectionDomain) DeregisterMemory(ctx context.Context, mr MR) error {
	return d.provider.DeregMR(ctx, mr)
}

// Close deallocates the protection domain. All registrations in the domain
// must already be deregistered.
func (d *ProtectionDomain) Close(ctx context.Context) error {
	return d.provider.DeallocPD(ctx, d.pd)
}
