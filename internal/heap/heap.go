package heap

import "sort"

// FreeMode selects whether Free coalesces released blocks with their
// siblings (FreeCoalescing) or simply returns them to the heap as-is
// (FreeNaive).
type FreeMode int

const (
	FreeNaive FreeMode = iota
	FreeCoalescing
)

// Heap is the size-ordered collection of Block Indices plus the eager
// counters surfaced by DUMP_MEMORY. It owns its Block Indices exclusively.
type Heap struct {
	BaseAddress   uint64
	ClassCount    int      // N, as given to Init
	BytesPerClass uint64   // B, as given to Init
	FreeMode      FreeMode

	indices []*BlockIndex // ordered ascending by ClassSize, unique ClassSize

	totalBytes          uint64
	allocatedBytes      uint64
	freeBytes           uint64
	freeBlockCount      int
	allocatedBlockCount int
	mallocCalls         int
	freeCalls           int
	fragmentationEvents int
}

// Init constructs a Heap with classCount Block Indices of class sizes
// 8, 16, 32, ..., 8*2^(classCount-1), each populated with
// bytesPerClass/classSize blocks striped at
// baseAddress + i*bytesPerClass + k*classSize.
func Init(baseAddress uint64, classCount int, bytesPerClass uint64, mode FreeMode) *Heap {
	h := &Heap{
		BaseAddress:   baseAddress,
		ClassCount:    classCount,
		BytesPerClass: bytesPerClass,
		FreeMode:      mode,
		indices:       make([]*BlockIndex, 0, classCount),
		totalBytes:    uint64(classCount) * bytesPerClass,
	}

	for i := 0; i < classCount; i++ {
		classSize := uint64(8) << uint(i)
		count := int(bytesPerClass / classSize)
		stripeStart := baseAddress + uint64(i)*bytesPerClass

		blocks := make([]*Block, count)
		for k := 0; k < count; k++ {
			blocks[k] = &Block{
				Address: stripeStart + uint64(k)*classSize,
				Size:    classSize,
			}
		}

		h.indices = append(h.indices, NewBlockIndex(classSize, blocks))
		h.freeBlockCount += count
	}

	h.freeBytes = h.totalBytes
	return h
}

// TotalBytes, AllocatedBytes, FreeBytes, FreeBlockCount,
// AllocatedBlockCount, MallocCalls, FreeCalls and FragmentationEvents
// expose the heap's running counters for the dump sink.
func (h *Heap) TotalBytes() uint64          { return h.totalBytes }
func (h *Heap) AllocatedBytes() uint64      { return h.allocatedBytes }
func (h *Heap) FreeBytes() uint64           { return h.freeBytes }
func (h *Heap) FreeBlockCount() int         { return h.freeBlockCount }
func (h *Heap) AllocatedBlockCount() int    { return h.allocatedBlockCount }
func (h *Heap) MallocCalls() int            { return h.mallocCalls }
func (h *Heap) FreeCalls() int              { return h.freeCalls }
func (h *Heap) FragmentationEvents() int    { return h.fragmentationEvents }

// Indices returns the Block Indices in ascending class-size order.
// Callers must not mutate the returned slice.
func (h *Heap) Indices() []*BlockIndex { return h.indices }

// classPosition returns the index of the first Block Index whose
// ClassSize is large enough to satisfy size, and whether that index's
// ClassSize exactly matches size.
func (h *Heap) classPosition(size uint64) (pos int, exact bool) {
	pos = sort.Search(len(h.indices), func(i int) bool {
		return h.indices[i].ClassSize >= size
	})
	exact = pos < len(h.indices) && h.indices[pos].ClassSize == size
	return pos, exact
}

// removeIndexAt deletes the Block Index at position pos (it must already
// be empty).
func (h *Heap) removeIndexAt(pos int) {
	h.indices = append(h.indices[:pos], h.indices[pos+1:]...)
}

// insertIndexAt splices a brand new Block Index into position pos.
func (h *Heap) insertIndexAt(pos int, bi *BlockIndex) {
	h.indices = append(h.indices, nil)
	copy(h.indices[pos+1:], h.indices[pos:])
	h.indices[pos] = bi
}

// InsertFree splices r into an existing same-size Block Index, or
// creates a new one at the correct ordered position.
func (h *Heap) InsertFree(r *Block) {
	pos, exact := h.classPosition(r.Size)
	if exact {
		h.indices[pos].Insert(r)
	} else {
		h.insertIndexAt(pos, NewBlockIndex(r.Size, []*Block{r}))
	}
	h.freeBlockCount++
}

// removeFree deletes q from whichever Block Index holds it, removing
// the Block Index itself if it becomes empty. Reports whether found.
func (h *Heap) removeFree(q *Block) bool {
	pos, exact := h.classPosition(q.Size)
	if !exact {
		return false
	}
	bi := h.indices[pos]
	if !bi.Remove(q) {
		return false
	}
	if bi.Empty() {
		h.removeIndexAt(pos)
	}
	h.freeBlockCount--
	return true
}
