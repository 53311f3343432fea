package heap

import "sort"

// AllocationMap is the address-ordered sequence of currently-allocated
// Blocks, each carrying its own payload buffer. It exclusively owns its
// Blocks and their payloads.
type AllocationMap struct {
	blocks []*Block
}

// NewAllocationMap returns an empty AllocationMap.
func NewAllocationMap() *AllocationMap {
	return &AllocationMap{}
}

// Blocks returns the allocated blocks in address order. Callers must not
// mutate the returned slice.
func (am *AllocationMap) Blocks() []*Block { return am.blocks }

// Insert adds b in address order.
func (am *AllocationMap) Insert(b *Block) {
	i := sort.Search(len(am.blocks), func(i int) bool {
		return am.blocks[i].Address >= b.Address
	})
	am.blocks = append(am.blocks, nil)
	copy(am.blocks[i+1:], am.blocks[i:])
	am.blocks[i] = b
}

// Lookup returns the allocated block whose base address is exactly a, or
// nil if none.
func (am *AllocationMap) Lookup(a uint64) *Block {
	i := sort.Search(len(am.blocks), func(i int) bool {
		return am.blocks[i].Address >= a
	})
	if i < len(am.blocks) && am.blocks[i].Address == a {
		return am.blocks[i]
	}
	return nil
}

// Remove deletes the block at base address a and returns it, or nil if
// none was found.
func (am *AllocationMap) Remove(a uint64) *Block {
	i := sort.Search(len(am.blocks), func(i int) bool {
		return am.blocks[i].Address >= a
	})
	if i >= len(am.blocks) || am.blocks[i].Address != a {
		return nil
	}
	b := am.blocks[i]
	am.blocks = append(am.blocks[:i], am.blocks[i+1:]...)
	return b
}

// floorIndex returns the index of the last block with Address <= a, or
// -1 if every block's address exceeds a.
func (am *AllocationMap) floorIndex(a uint64) int {
	i := sort.Search(len(am.blocks), func(i int) bool {
		return am.blocks[i].Address > a
	}) - 1
	return i
}
