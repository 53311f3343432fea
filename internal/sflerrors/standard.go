// Package sflerrors provides the standardized error taxonomy used to
// report allocator faults without relying on string matching.
package sflerrors

import "fmt"

// Category distinguishes the kinds of error the allocator can report.
type Category string

const (
	CategoryMemory     Category = "MEMORY"
	CategoryBounds     Category = "BOUNDS"
	CategoryValidation Category = "VALIDATION"
	CategorySystem     Category = "SYSTEM"
)

// StandardError is a consistently-formatted error carrying a category, a
// machine-readable code, a human message and whether the fault is fatal.
type StandardError struct {
	Category Category
	Code     string
	Message  string
	Fatal    bool
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
}

func newError(category Category, code, message string, fatal bool) *StandardError {
	return &StandardError{Category: category, Code: code, Message: message, Fatal: fatal}
}

// OutOfMemory reports that a malloc request of n bytes found no
// sufficient class in the heap. Non-fatal.
func OutOfMemory(n uint64) *StandardError {
	return newError(CategoryMemory, "OUT_OF_MEMORY", "Out of memory", false)
}

// InvalidFree reports a free request on an address absent from the
// Allocation Map. Non-fatal.
func InvalidFree(address uint64) *StandardError {
	return newError(CategoryMemory, "INVALID_FREE", "Invalid free", false)
}

// SegmentationFault reports a read or write on a range starting at
// address and extending n bytes that is not fully covered by allocated
// blocks. Fatal.
func SegmentationFault(address, n uint64) *StandardError {
	return newError(CategoryBounds, "SEGFAULT", "Segmentation fault (core dumped)", true)
}

// IsFatal reports whether err (if a *StandardError) is a fatal fault.
func IsFatal(err error) bool {
	se, ok := err.(*StandardError)
	return ok && se.Fatal
}
