// Package launcher runs the external ssh client for a selected host. The
// session is already over by the time this runs: launching is a terminal
// action, and the subprocess owns the terminal until it exits.
package launcher

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/creack/pty"
	"golang.org/x/term"
)

// Launch execs `binary host` under a PTY and blocks until it exits,
// returning the subprocess exit status.
//
// The PTY is seeded with the current terminal size and kept in sync on
// resize (no-op on Windows, which has no SIGWINCH). Stdin is switched to
// raw mode for the duration so keystrokes pass through unmangled.
func Launch(binary, host string) (int, error) {
	if host == "" {
		return -1, fmt.Errorf("launch: empty host name")
	}
	if binary == "" {
		binary = "ssh"
	}

	cmd := exec.Command(binary, host)
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return -1, fmt.Errorf("launch %s %s: pty start: %w", binary, host, err)
	}
	defer func() { _ = ptmx.Close() }()

	// Seed PTY size from stdout; without this some environments end up
	// with a 0x0 PTY on the remote side, which breaks full-screen apps.
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if cols, rows, sizeErr := term.GetSize(int(os.Stdout.Fd())); sizeErr == nil && rows > 0 && cols > 0 {
			_ = pty.Setsize(ptmx, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
		}
	}
	startResizeWatcher(ptmx)

	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		oldState, sErr := term.MakeRaw(fd)
		if sErr == nil {
			defer func() { _ = term.Restore(fd, oldState) }()
		}
	}

	go func() {
		_, _ = io.Copy(ptmx, os.Stdin)
	}()
	_, _ = io.Copy(os.Stdout, ptmx)

	if err := cmd.Wait(); err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return ee.ExitCode(), nil
		}
		return -1, fmt.Errorf("launch %s %s: %w", binary, host, err)
	}
	return 0, nil
}
