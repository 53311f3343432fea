package heap

// coalesce merges p with any free sibling that is physically adjacent,
// sweeping the heap for left neighbours until none remain, then for right
// neighbours until none remain. p is kept out of the heap
// throughout; the caller inserts it once this returns.
func (h *Heap) coalesce(p *Block) {
	h.mergeDirection(p, true)
	h.mergeDirection(p, false)
}

// mergeDirection sweeps every free block currently in the heap looking
// for siblings adjacent to p on the requested side, merging each one
// found into p. left=true merges blocks ending where p begins; left=false
// merges blocks beginning where p ends.
func (h *Heap) mergeDirection(p *Block, left bool) {
	for {
		q := h.findAdjacentSibling(p, left)
		if q == nil {
			return
		}
		h.removeFree(q)
		if left {
			p.Address = q.Address
		}
		p.Size += q.Size
	}
}

func (h *Heap) findAdjacentSibling(p *Block, left bool) *Block {
	for _, bi := range h.indices {
		for _, q := range bi.Blocks() {
			if left {
				if q.End() == p.Address && h.siblings(p.Address, q.Address) {
					return q
				}
			} else {
				if p.End() == q.Address && h.siblings(p.Address, q.Address) {
					return q
				}
			}
		}
	}
	return nil
}
