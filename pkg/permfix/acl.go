package permfix

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
)

// Runner executes one external command and captures its outcome. It exists
// so the ACL sequence can be exercised in tests without icacls installed.
type Runner interface {
	Run(name string, args ...string) (exitCode int, stdout, stderr string, err error)
}

type execRunner struct{}

func (execRunner) Run(name string, args ...string) (int, string, string, error) {
	cmd := exec.Command(name, args...)
	var out, errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut

	err := cmd.Run()
	exit := 0
	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			exit = ee.ExitCode()
			err = nil
		} else {
			// The command never ran (e.g. binary not found).
			exit = -1
		}
	}
	return exit, out.String(), errOut.String(), err
}

// ACLFixer tightens permissions through the Windows icacls tool: reset
// inherited rules, strip the broad built-in group grants, then grant the
// invoking user read-only access. Steps run strictly in order and the first
// non-success exit aborts the remainder.
type ACLFixer struct {
	runner   Runner
	username func() (string, error)
}

// NewACLFixer returns an ACLFixer. A nil runner uses os/exec.
func NewACLFixer(r Runner) *ACLFixer {
	if r == nil {
		r = execRunner{}
	}
	return &ACLFixer{runner: r, username: currentUsername}
}

type aclStep struct {
	desc string
	argv []string
}

func aclSteps(path, username string) []aclStep {
	return []aclStep{
		{"reset inheritance", []string{"icacls", path, "/inheritance:r"}},
		{"remove Everyone", []string{"icacls", path, "/remove:g", "Everyone"}},
		{"remove BUILTIN\\Users", []string{"icacls", path, "/remove:g", `BUILTIN\Users`}},
		{"remove Authenticated Users", []string{"icacls", path, "/remove:g", `NT AUTHORITY\Authenticated Users`}},
		{"grant " + username + " read-only", []string{"icacls", path, "/grant:r", username + ":R"}},
	}
}

// Tighten runs the icacls sequence against path.
func (f *ACLFixer) Tighten(path string) (Report, error) {
	rep := Report{Path: path}

	username, err := f.username()
	if err != nil {
		return rep, fmt.Errorf("tighten %s: resolve current user: %w", path, err)
	}

	for _, st := range aclSteps(path, username) {
		exit, stdout, stderr, runErr := f.runner.Run(st.argv[0], st.argv[1:]...)
		if runErr != nil {
			exit = -1
			if stderr == "" {
				stderr = runErr.Error()
			}
		}
		rep.Steps = append(rep.Steps, StepResult{
			Desc:     st.desc,
			Argv:     st.argv,
			ExitCode: exit,
			Stdout:   stdout,
			Stderr:   stderr,
		})
		if exit != 0 {
			return rep, fmt.Errorf("tighten %s: %s exited %d", path, st.desc, exit)
		}
	}
	return rep, nil
}

// currentUsername resolves the invoking user for the grant step. Domain
// qualifiers are stripped; icacls accepts the bare account name.
func currentUsername() (string, error) {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return filepath.Base(u.Username), nil
	}
	for _, env := range []string{"USERNAME", "USER"} {
		if v := os.Getenv(env); v != "" {
			return v, nil
		}
	}
	return "", errors.New("current user unknown")
}
