package heap

import "github.com/sflheap/sflheap/internal/sflerrors"

// Malloc allocates n bytes from the smallest sufficient class,
// fragmenting the residual back into the heap. On success it returns the
// address of the new allocation.
func (h *Heap) Malloc(am *AllocationMap, n uint64) (uint64, error) {
	pos, _ := h.classPosition(n)
	if pos >= len(h.indices) {
		return 0, sflerrors.OutOfMemory(n)
	}

	bi := h.indices[pos]
	p := bi.RemoveHead()
	if bi.Empty() {
		h.removeIndexAt(pos)
	}
	h.freeBlockCount--

	q := &Block{Address: p.Address, Size: n, Payload: make([]byte, n)}
	am.Insert(q)

	h.allocatedBytes += n
	h.freeBytes -= n
	h.allocatedBlockCount++
	h.mallocCalls++

	if p.Size != n {
		r := &Block{Address: p.Address + n, Size: p.Size - n}
		h.InsertFree(r)
		h.fragmentationEvents++
	}

	return q.Address, nil
}

// Free releases the allocated block whose base address is exactly a,
// optionally coalescing it with adjacent siblings before returning it to
// the heap.
func (h *Heap) Free(am *AllocationMap, a uint64) error {
	p := am.Remove(a)
	if p == nil {
		return sflerrors.InvalidFree(a)
	}
	p.Payload = nil

	h.freeCalls++
	h.allocatedBlockCount--
	h.freeBytes += p.Size
	h.allocatedBytes -= p.Size

	if h.FreeMode == FreeCoalescing {
		h.coalesce(p)
	}

	h.InsertFree(p)
	return nil
}
