package heap

import "testing"

func TestSiblingsWithinSameOriginalBlock(t *testing.T) {
	h := Init(0x1000, 4, 128, FreeCoalescing)

	// Class-64 stripe (origin index 3) spans [0x1180, 0x1200); its two
	// original blocks are [0x1180,0x11C0) and [0x11C0,0x1200).
	if !h.siblings(0x1180, 0x1190) {
		t.Error("addresses within the same 64-byte original block should be siblings")
	}
	if h.siblings(0x1180, 0x11C0) {
		t.Error("addresses in different original blocks of the same stripe must not be siblings")
	}
	if h.siblings(0x1180, 0x1000) {
		t.Error("addresses in different home-class stripes must not be siblings")
	}
}

func TestOriginOffsetArithmetic(t *testing.T) {
	base, bpc := uint64(0x1000), uint64(128)

	if got := origin(0x1000, base, bpc); got != 0 {
		t.Errorf("origin(0x1000) = %d, want 0", got)
	}
	if got := origin(0x1180, base, bpc); got != 3 {
		t.Errorf("origin(0x1180) = %d, want 3", got)
	}
	if got := offset(0x1180, base, bpc); got != 0 {
		t.Errorf("offset(0x1180) = %d, want 0", got)
	}
	if got := offset(0x11C0, base, bpc); got != 1 {
		t.Errorf("offset(0x11C0) = %d, want 1", got)
	}
}
