//go:build windows
// +build windows

package launcher

import "os"

// startResizeWatcher is a no-op on Windows: SIGWINCH does not exist there,
// and referencing it would break the Windows build. Initial PTY sizing is
// handled at launch.
func startResizeWatcher(_ *os.File) {}
