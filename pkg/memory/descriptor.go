package memory

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// descriptorSize is the fixed wire size of a RemoteDescriptor: two 64-bit
// fields followed by one 32-bit field.
const descriptorSize = 8 + 8 + 4

// RemoteDescriptor is the flat, wire-transmissible triple a peer needs to
// address a region over the fabric. It is a pure snapshot, self-contained
// and independent of the originating region's lifetime; framing and
// transport are the caller's concern.
type RemoteDescriptor struct {
	Addr uint64 `json:"addr"`
	Len  uint64 `json:"len"`
	RKey uint32 `json:"rkey"`
}

// Address returns the remote base address.
func (d RemoteDescriptor) Address() uint64 { return d.Addr }

// Length returns the remote window size in bytes.
func (d RemoteDescriptor) Length() uint64 { return d.Len }

// RemoteKey returns the key authorizing remote access.
func (d RemoteDescriptor) RemoteKey() uint32 { return d.RKey }

var _ RemoteMemory = RemoteDescriptor{}

// MarshalBinary encodes the descriptor as 20 little-endian bytes in field
// order addr, len, rkey.
func (d RemoteDescriptor) MarshalBinary() ([]byte, error) {
	b := make([]byte, descriptorSize)
	binary.LittleEndian.PutUint64(b[0:8], d.Addr)
	binary.LittleEndian.PutUint64(b[8:16], d.Len)
	binary.LittleEndian.PutUint32(b[16:20], d.RKey)
	return b, nil
}

// UnmarshalBinary decodes a descriptor produced by MarshalBinary.
func (d *RemoteDescriptor) UnmarshalBinary(b []byte) error {
	if len(b) != descriptorSize {
		return errors.Errorf("remote descriptor must be %d bytes, got %d", descriptorSize, len(b))
	}
	d.Addr = binary.LittleEndian.Uint64(b[0:8])
	d.Len = binary.LittleEndian.Uint64(b[8:16])
	d.RKey = binary.LittleEndian.Uint32(b[16:20])
	return nil
}
