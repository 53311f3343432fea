package heap

import "sort"

// BlockIndex is an address-ordered collection of free Blocks that all
// share the same ClassSize. It is never stored in a Heap while empty.
type BlockIndex struct {
	ClassSize uint64
	blocks    []*Block
}

// NewBlockIndex creates a BlockIndex for classSize, seeded with blocks
// (which must already be address-sorted and of size classSize).
func NewBlockIndex(classSize uint64, blocks []*Block) *BlockIndex {
	return &BlockIndex{ClassSize: classSize, blocks: blocks}
}

// Len returns the number of free blocks held by this index.
func (bi *BlockIndex) Len() int { return len(bi.blocks) }

// Empty reports whether the index holds no blocks.
func (bi *BlockIndex) Empty() bool { return len(bi.blocks) == 0 }

// Head returns the lowest-address block in the index, or nil if empty.
func (bi *BlockIndex) Head() *Block {
	if len(bi.blocks) == 0 {
		return nil
	}
	return bi.blocks[0]
}

// Blocks returns the index's blocks in address order. Callers must not
// mutate the returned slice.
func (bi *BlockIndex) Blocks() []*Block { return bi.blocks }

// Insert adds b in address order. b.Size must equal bi.ClassSize.
func (bi *BlockIndex) Insert(b *Block) {
	i := sort.Search(len(bi.blocks), func(i int) bool {
		return bi.blocks[i].Address >= b.Address
	})
	bi.blocks = append(bi.blocks, nil)
	copy(bi.blocks[i+1:], bi.blocks[i:])
	bi.blocks[i] = b
}

// RemoveHead removes and returns the lowest-address block.
func (bi *BlockIndex) RemoveHead() *Block {
	if len(bi.blocks) == 0 {
		return nil
	}
	b := bi.blocks[0]
	bi.blocks = bi.blocks[1:]
	return b
}

// Remove deletes b (matched by address) from the index. Reports whether
// a matching block was found.
func (bi *BlockIndex) Remove(b *Block) bool {
	i := sort.Search(len(bi.blocks), func(i int) bool {
		return bi.blocks[i].Address >= b.Address
	})
	if i >= len(bi.blocks) || bi.blocks[i].Address != b.Address {
		return false
	}
	bi.blocks = append(bi.blocks[:i], bi.blocks[i+1:]...)
	return true
}
