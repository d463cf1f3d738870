package verbs

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// SimProvider is an in-memory verbs backend for development and testing.
// It issues monotonically increasing handles and keys, tracks live
// protection domains and registrations, and rejects mismatched teardown,
// so lifecycle bugs surface without RDMA hardware.
type SimProvider struct {
	mu         sync.Mutex
	nextPD     PD
	nextHandle uintptr
	nextKey    uint32
	pds        map[PD]struct{}
	mrs        map[uintptr]simMR
}

type simMR struct {
	pd     PD
	addr   uintptr
	length uint64
	access Access
}

// NewSimProvider returns an empty simulated backend.
func NewSimProvider() *SimProvider {
	return &SimProvider{
		pds: make(map[PD]struct{}),
		mrs: make(map[uintptr]simMR),
	}
}

func (s *SimProvider) AllocPD(_ context.Context) (PD, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextPD++
	s.pds[s.nextPD] = struct{}{}
	return s.nextPD, nil
}

func (s *SimProvider) DeallocPD(_ context.Context, pd PD) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pds[pd]; !ok {
		return ErrUnknownPD
	}
	for h, mr := range s.mrs {
		if mr.pd == pd {
			return errors.Errorf("protection domain %d still holds registration %d", pd, h)
		}
	}
	delete(s.pds, pd)
	return nil
}

func (s *SimProvider) RegMR(_ context.Context, pd PD, addr uintptr, length uint64, access Access) (MR, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pds[pd]; !ok {
		return MR{}, ErrUnknownPD
	}
	if length == 0 {
		return MR{}, ErrZeroLength
	}
	s.nextHandle++
	// Distinct lkey and rkey per registration, mirroring real hardware.
	lkey := s.nextKey + 1
	rkey := s.nextKey + 2
	s.nextKey += 2
	s.mrs[s.nextHandle] = simMR{pd: pd, addr: addr, length: length, access: access}
	return MR{Handle: s.nextHandle, LKey: lkey, RKey: rkey}, nil
}

func (s *SimProvider) DeregMR(_ context.Context, mr MR) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.mrs[mr.Handle]; !ok {
		return ErrUnknownMR
	}
	delete(s.mrs, mr.Handle)
	return nil
}

// LiveRegistrations returns the number of registrations not yet
// deregistered, across all protection domains.
func (s *SimProvider) LiveRegistrations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.mrs)
}

var _ Provider = (*SimProvider)(nil)
