// Package engine is the collaborator layer between the textual request
// stream (internal/command) and the allocator core (internal/heap): it
// owns one heap's lifecycle, formats DUMP_MEMORY, and sequences the
// fault-then-dump-then-terminate behaviour required of READ/WRITE
// faults.
package engine

import (
	"fmt"
	"strings"

	"github.com/sflheap/sflheap/internal/command"
	"github.com/sflheap/sflheap/internal/heap"
	"github.com/sflheap/sflheap/internal/sflerrors"
)

// Engine drives one simulated heap end to end, one command.Command
// request at a time.
type Engine struct {
	h    *heap.Heap
	am   *heap.AllocationMap
	done bool // set once DESTROY_HEAP or a fatal fault has terminated the run
}

// New returns an Engine with no heap yet constructed; INIT_HEAP must be
// the first accepted command.
func New() *Engine {
	return &Engine{}
}

// Done reports whether the engine has terminated (DESTROY_HEAP or a
// fatal segmentation fault).
func (e *Engine) Done() bool { return e.done }

// Result is what running one command produced: text to emit to the
// output sink (possibly empty), and whether that text represents a fatal
// fault (in which case the caller must stop feeding further commands).
type Result struct {
	Output string
	Fatal  bool
}

// Execute runs one parsed command against the engine's state.
func (e *Engine) Execute(cmd command.Command) Result {
	switch cmd.Op {
	case command.OpUnknown:
		return Result{}

	case command.OpInitHeap:
		mode := heap.FreeNaive
		if cmd.Coalescing {
			mode = heap.FreeCoalescing
		}
		e.h = heap.Init(cmd.BaseAddress, cmd.ClassCount, cmd.BytesPerClass, mode)
		e.am = heap.NewAllocationMap()
		return Result{}

	case command.OpMalloc:
		if _, err := e.h.Malloc(e.am, cmd.Size); err != nil {
			return Result{Output: faultText(err) + "\n"}
		}
		return Result{}

	case command.OpFree:
		if err := e.h.Free(e.am, cmd.Address); err != nil {
			return Result{Output: faultText(err) + "\n"}
		}
		return Result{}

	case command.OpRead:
		data, err := e.h.Read(e.am, cmd.Address, cmd.N)
		if err != nil {
			return e.fault(err)
		}
		return Result{Output: string(data) + "\n"}

	case command.OpWrite:
		if err := e.h.Write(e.am, cmd.Address, cmd.Literal, cmd.N); err != nil {
			return e.fault(err)
		}
		return Result{}

	case command.OpDumpMemory:
		return Result{Output: e.Dump()}

	case command.OpDestroyHeap:
		e.done = true
		return Result{}

	default:
		return Result{}
	}
}

// faultText extracts the user-facing message literal from err rather
// than wrapping it in the StandardError's [CATEGORY:CODE] prefix.
func faultText(err error) string {
	if se, ok := err.(*sflerrors.StandardError); ok {
		return se.Message
	}
	return err.Error()
}

// fault sequences the engine's fatal behaviour: fault line, then a full
// dump, then termination.
func (e *Engine) fault(err error) Result {
	e.done = true
	var b strings.Builder
	b.WriteString(faultText(err))
	b.WriteString("\n")
	b.WriteString(e.Dump())
	return Result{Output: b.String(), Fatal: true}
}

// Dump renders the canonical DUMP_MEMORY text, byte-for-byte.
func (e *Engine) Dump() string {
	var b strings.Builder
	b.WriteString("+++++DUMP+++++\n")
	fmt.Fprintf(&b, "Total memory: %d bytes\n", e.h.TotalBytes())
	fmt.Fprintf(&b, "Total allocated memory: %d bytes\n", e.h.AllocatedBytes())
	fmt.Fprintf(&b, "Total free memory: %d bytes\n", e.h.FreeBytes())
	fmt.Fprintf(&b, "Free blocks: %d\n", e.h.FreeBlockCount())
	fmt.Fprintf(&b, "Number of allocated blocks: %d\n", e.h.AllocatedBlockCount())
	fmt.Fprintf(&b, "Number of malloc calls: %d\n", e.h.MallocCalls())
	fmt.Fprintf(&b, "Number of fragmentations: %d\n", e.h.FragmentationEvents())
	fmt.Fprintf(&b, "Number of free calls: %d\n", e.h.FreeCalls())

	for _, bi := range e.h.Indices() {
		fmt.Fprintf(&b, "Blocks with %d bytes - %d free block(s) :", bi.ClassSize, bi.Len())
		for _, blk := range bi.Blocks() {
			fmt.Fprintf(&b, " 0x%x", blk.Address)
		}
		b.WriteString("\n")
	}

	b.WriteString("Allocated blocks :")
	for _, blk := range e.am.Blocks() {
		fmt.Fprintf(&b, " (0x%x - %d)", blk.Address, blk.Size)
	}
	b.WriteString("\n-----DUMP-----\n")

	return b.String()
}
