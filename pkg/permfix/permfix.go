// Package permfix tightens filesystem permissions on credential files (ssh
// identity files) so the external ssh client will accept them.
//
// The capability is abstracted behind Fixer because the operations are
// inherently platform-specific: on Windows the ACL model requires an icacls
// command sequence, while POSIX systems only need mode bits. The default
// backend for the build target is selected via build tags.
package permfix

import (
	"fmt"
	"strings"
)

// Fixer tightens permissions on a single credential file path.
//
// On failure the returned Report still carries every step attempted so far,
// including captured output, so the caller can surface diagnostics.
type Fixer interface {
	Tighten(path string) (Report, error)
}

// StepResult records the outcome of one permission operation.
type StepResult struct {
	// Desc is a short human-readable description of the operation.
	Desc string
	// Argv is the external command executed, empty for native operations.
	Argv []string
	// ExitCode is the process exit status; 0 means success. Native
	// operations report 0 or 1.
	ExitCode int
	Stdout   string
	Stderr   string
}

// Report is the aggregate outcome of a permission-tightening sequence.
type Report struct {
	Path  string
	Steps []StepResult
}

// Ok reports whether every executed step succeeded.
func (r Report) Ok() bool {
	for _, s := range r.Steps {
		if s.ExitCode != 0 {
			return false
		}
	}
	return len(r.Steps) > 0
}

// Summary renders a one-line result suitable for a status banner.
func (r Report) Summary() string {
	if len(r.Steps) == 0 {
		return "no permission steps ran"
	}
	last := r.Steps[len(r.Steps)-1]
	if last.ExitCode != 0 {
		detail := strings.TrimSpace(last.Stderr)
		if detail == "" {
			detail = strings.TrimSpace(last.Stdout)
		}
		if detail != "" {
			detail = ": " + firstLine(detail)
		}
		return fmt.Sprintf("permissions failed at step %d (%s)%s", len(r.Steps), last.Desc, detail)
	}
	return fmt.Sprintf("permissions tightened (%d steps)", len(r.Steps))
}

// Output returns the combined transcript of every attempted step.
func (r Report) Output() string {
	var b strings.Builder
	for i, s := range r.Steps {
		fmt.Fprintf(&b, "[%d] %s (exit %d)\n", i+1, s.Desc, s.ExitCode)
		if out := strings.TrimSpace(s.Stdout); out != "" {
			b.WriteString(out)
			b.WriteByte('\n')
		}
		if errOut := strings.TrimSpace(s.Stderr); errOut != "" {
			b.WriteString(errOut)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
