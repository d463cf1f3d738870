// Package memreg manages memory regions registered with an RDMA-capable
// network interface. A hardware-registered buffer becomes a local root
// region; Slice and Alloc carve it into independently lived, non-overlapping
// sub-regions that can be handed to concurrent callers, used for local
// access, or exported to a peer as a flat remote descriptor. Each region
// tracks the ranges currently carved out of it, so overlapping allocations
// are impossible and a root can only be released once every descendant is
// gone.
//
// The hardware itself is reached through the pkg/verbs seam; device
// bring-up, queue pairs and the wire transport are external collaborators.
package memreg
