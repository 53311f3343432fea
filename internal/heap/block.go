// Package heap implements the segregated free-list allocator core: the
// Block Index, Heap, Allocation Map and origin-based coalescer that
// simulate a fixed virtual address space.
package heap

// Block is a half-open address interval [Address, Address+Size).
//
// A free Block (held by a BlockIndex) never carries a payload; an
// allocated Block (held by an AllocationMap) always does. Payload is sized
// to the caller's request, never to the enclosing size class.
type Block struct {
	Address uint64
	Size    uint64
	Payload []byte
}

// End returns the first address past this block.
func (b *Block) End() uint64 {
	return b.Address + b.Size
}

// Covers reports whether a lies within [Address, Address+Size).
func (b *Block) Covers(a uint64) bool {
	return a >= b.Address && a < b.End()
}
