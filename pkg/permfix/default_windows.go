//go:build windows
// +build windows

package permfix

// Default returns the backend for this build target: the icacls ACL
// sequence on Windows.
func Default() Fixer {
	return NewACLFixer(nil)
}
