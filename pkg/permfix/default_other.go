//go:build !windows
// +build !windows

package permfix

// Default returns the backend for this build target: POSIX mode bits on
// everything that is not Windows.
func Default() Fixer {
	return &ModeFixer{}
}
