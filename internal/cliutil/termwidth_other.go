//go:build !unix

package cliutil

// TermWidth always reports failure on non-unix platforms, so
// WrapForDisplay leaves output unwrapped there.
func TermWidth() (width int, ok bool) {
	return 0, false
}
