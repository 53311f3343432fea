package heap

import "github.com/sflheap/sflheap/internal/sflerrors"

// span is one block's share of a READ/WRITE range.
type span struct {
	block  *Block
	offset uint64 // offset within block.Payload where this span starts
	length uint64
}

// coverageWalk validates that [a, a+n) is covered by consecutive
// Allocation Map entries with no gap, the first of which starts exactly
// at a: a range that begins inside a block, rather than at its base
// address, faults. It returns, in address order, the spans describing how
// the range decomposes across blocks.
func coverageWalk(am *AllocationMap, a, n uint64) ([]span, error) {
	if n == 0 {
		return nil, nil
	}

	idx := am.floorIndex(a)
	blocks := am.Blocks()

	var spans []span
	cursor := a
	remaining := n

	// If the floor block doesn't cover a, advance to the next block
	// (the first with Address > a).
	i := idx
	if i < 0 || blocks[i].End() <= a {
		i = idx + 1
	}

	for remaining > 0 {
		if i >= len(blocks) || blocks[i].Address != cursor {
			return nil, sflerrors.SegmentationFault(a, n)
		}
		b := blocks[i]
		fromOffset := cursor - b.Address
		avail := b.Size - fromOffset
		take := avail
		if take > remaining {
			take = remaining
		}
		spans = append(spans, span{block: b, offset: fromOffset, length: take})
		cursor += take
		remaining -= take
		i++
	}

	return spans, nil
}

// Read validates the entire [a, a+n) range before emitting any bytes,
// then returns the concatenated payload bytes.
func (h *Heap) Read(am *AllocationMap, a, n uint64) ([]byte, error) {
	spans, err := coverageWalk(am, a, n)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, n)
	for _, s := range spans {
		out = append(out, s.block.Payload[s.offset:s.offset+s.length]...)
	}
	return out, nil
}

// Write truncates n to len(data) if shorter, then validates the write in
// full (dry run) before any payload is mutated, so a failing write never
// leaves a partial mutation behind.
func (h *Heap) Write(am *AllocationMap, a uint64, data []byte, n uint64) error {
	if n > uint64(len(data)) {
		n = uint64(len(data))
	}

	spans, err := coverageWalk(am, a, n)
	if err != nil {
		return err
	}

	written := uint64(0)
	for _, s := range spans {
		copy(s.block.Payload[s.offset:s.offset+s.length], data[written:written+s.length])
		written += s.length
	}
	return nil
}
