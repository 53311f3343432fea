package heap

// origin returns the home-class index of address a: which
// bytesPerClass-byte stripe of the heap a falls in.
func origin(a, baseAddress, bytesPerClass uint64) uint64 {
	return (a - baseAddress) / bytesPerClass
}

// offset returns the index, within its home class's stripe, of the
// initial block address a descends from.
func offset(a, baseAddress, bytesPerClass uint64) uint64 {
	home := origin(a, baseAddress, bytesPerClass)
	rem := (a - baseAddress) % bytesPerClass
	return rem >> (3 + home)
}

// siblings reports whether a and b are fragments descended from the same
// initial block: same home-class stripe and same parent-block offset
// within it.
func (h *Heap) siblings(a, b uint64) bool {
	return origin(a, h.BaseAddress, h.BytesPerClass) == origin(b, h.BaseAddress, h.BytesPerClass) &&
		offset(a, h.BaseAddress, h.BytesPerClass) == offset(b, h.BaseAddress, h.BytesPerClass)
}
