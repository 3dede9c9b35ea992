package permfix

import (
	"fmt"
	"os"
)

// ModeFixer is the POSIX backend: no external tool, just mode bits. The
// result is the same owner-read-only outcome the ACL sequence produces on
// Windows, reported in the same Report shape.
type ModeFixer struct {
	// Mode applied to the credential file; defaults to 0400.
	Mode os.FileMode
}

// Tighten stats the file and chmods it to owner read-only.
func (f *ModeFixer) Tighten(path string) (Report, error) {
	mode := f.Mode
	if mode == 0 {
		mode = 0o400
	}
	rep := Report{Path: path}

	if _, err := os.Stat(path); err != nil {
		rep.Steps = append(rep.Steps, StepResult{
			Desc:     "stat " + path,
			ExitCode: 1,
			Stderr:   err.Error(),
		})
		return rep, fmt.Errorf("tighten %s: %w", path, err)
	}
	rep.Steps = append(rep.Steps, StepResult{Desc: "stat " + path})

	if err := os.Chmod(path, mode); err != nil {
		rep.Steps = append(rep.Steps, StepResult{
			Desc:     fmt.Sprintf("chmod %04o", mode),
			ExitCode: 1,
			Stderr:   err.Error(),
		})
		return rep, fmt.Errorf("tighten %s: %w", path, err)
	}
	rep.Steps = append(rep.Steps, StepResult{Desc: fmt.Sprintf("chmod %04o", mode)})

	return rep, nil
}
