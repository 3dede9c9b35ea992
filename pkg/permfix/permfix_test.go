package permfix

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeRunner scripts the outcome of each command in call order.
type fakeRunner struct {
	results []fakeResult
	calls   [][]string
}

type fakeResult struct {
	exit   int
	stdout string
	stderr string
}

func (f *fakeRunner) Run(name string, args ...string) (int, string, string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	i := len(f.calls) - 1
	if i >= len(f.results) {
		return 0, "", "", nil
	}
	r := f.results[i]
	return r.exit, r.stdout, r.stderr, nil
}

func newACLFixerForTest(r Runner) *ACLFixer {
	f := NewACLFixer(r)
	f.username = func() (string, error) { return "tester", nil }
	return f
}

func TestACLFixer_AllStepsSucceed(t *testing.T) {
	runner := &fakeRunner{results: []fakeResult{
		{stdout: "processed file"},
		{}, {}, {},
		{stdout: "granted"},
	}}
	f := newACLFixerForTest(runner)

	rep, err := f.Tighten(`C:\keys\id_ed25519`)
	if err != nil {
		t.Fatalf("tighten: %v", err)
	}
	if !rep.Ok() {
		t.Fatalf("expected success report, got %q", rep.Summary())
	}
	if len(rep.Steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(rep.Steps))
	}
	if len(runner.calls) != 5 {
		t.Fatalf("expected 5 commands, got %d", len(runner.calls))
	}

	// Fixed operation order: reset, remove x3, grant.
	if got := runner.calls[0]; got[2] != "/inheritance:r" {
		t.Fatalf("expected inheritance reset first, got %v", got)
	}
	last := runner.calls[4]
	if last[2] != "/grant:r" || last[3] != "tester:R" {
		t.Fatalf("expected read-only grant to current user last, got %v", last)
	}
}

func TestACLFixer_ThirdStepFailureAbortsSequence(t *testing.T) {
	runner := &fakeRunner{results: []fakeResult{
		{stdout: "ok one"},
		{stdout: "ok two"},
		{exit: 5, stderr: "access denied"},
		{}, {},
	}}
	f := newACLFixerForTest(runner)

	rep, err := f.Tighten(`C:\keys\id_rsa`)
	if err == nil {
		t.Fatalf("expected error when a step fails")
	}
	if len(runner.calls) != 3 {
		t.Fatalf("expected sequence to abort before step 4, ran %d commands", len(runner.calls))
	}
	if len(rep.Steps) != 3 {
		t.Fatalf("expected report to carry all 3 attempted steps, got %d", len(rep.Steps))
	}

	out := rep.Output()
	for _, want := range []string{"ok one", "ok two", "access denied"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected combined output to include %q, got %q", want, out)
		}
	}
	if rep.Ok() {
		t.Fatalf("expected failure report")
	}
	if !strings.Contains(rep.Summary(), "step 3") {
		t.Fatalf("expected summary to name the failing step, got %q", rep.Summary())
	}
}

func TestModeFixer_TightensToOwnerReadOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "id_test")
	if err := os.WriteFile(path, []byte("key material"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	rep, err := (&ModeFixer{}).Tighten(path)
	if err != nil {
		t.Fatalf("tighten: %v", err)
	}
	if !rep.Ok() {
		t.Fatalf("expected success report, got %q", rep.Summary())
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o400 {
		t.Fatalf("expected mode 0400, got %04o", info.Mode().Perm())
	}
}

func TestModeFixer_MissingFileFails(t *testing.T) {
	rep, err := (&ModeFixer{}).Tighten(filepath.Join(t.TempDir(), "absent"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if rep.Ok() {
		t.Fatalf("expected failure report")
	}
	if len(rep.Steps) != 1 {
		t.Fatalf("expected the failed stat step in the report, got %d steps", len(rep.Steps))
	}
}
