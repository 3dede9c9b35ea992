package profile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileYieldsEmptyStore(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "nope", "config"))
	if s.Len() != 0 {
		t.Fatalf("expected empty store for missing file, got %d profiles", s.Len())
	}
}

func TestStore_ReplaceAppendAt(t *testing.T) {
	s := Load(writeConfig(t, "Host a\n\nHost b\n\n"))
	if s.Len() != 2 {
		t.Fatalf("expected 2 profiles, got %d", s.Len())
	}

	p, ok := s.At(1)
	if !ok || p.Name != "b" {
		t.Fatalf("expected profile b at index 1, got %#v ok=%v", p, ok)
	}
	if _, ok := s.At(2); ok {
		t.Fatalf("expected At out of range to report false")
	}

	p.User = strp("admin")
	if err := s.Replace(1, p); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := s.Replace(7, p); err == nil {
		t.Fatalf("expected replace out of range to fail")
	}

	idx := s.Append(Profile{Name: "c"})
	if idx != 2 || s.Len() != 3 {
		t.Fatalf("expected append at index 2, got idx=%d len=%d", idx, s.Len())
	}
}

func TestPersist_WritesFullSequence(t *testing.T) {
	path := writeConfig(t, "Host a\n    User old\n\n")
	s := Load(path)

	p, _ := s.At(0)
	p.User = strp("new")
	if err := s.Replace(0, p); err != nil {
		t.Fatalf("replace: %v", err)
	}
	s.Append(Profile{Name: "b", HostName: strp("10.0.0.2")})

	if err := s.Persist(); err != nil {
		t.Fatalf("persist: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := "Host a\n    User new\n\nHost b\n    HostName 10.0.0.2\n\n"
	if string(data) != want {
		t.Fatalf("persisted contents mismatch:\ngot:  %q\nwant: %q", string(data), want)
	}

	// Previous contents are kept as a sibling backup.
	bak, err := os.ReadFile(path + ".bak")
	if err != nil {
		t.Fatalf("expected backup file: %v", err)
	}
	if string(bak) != "Host a\n    User old\n\n" {
		t.Fatalf("backup contents mismatch: %q", string(bak))
	}
}

func TestPersist_RoundTripPreservesOrder(t *testing.T) {
	path := writeConfig(t, "Host z\n\nHost a\n    Port 2200\n\n")
	s := Load(path)
	if err := s.Persist(); err != nil {
		t.Fatalf("persist: %v", err)
	}

	again := Load(path)
	if again.Len() != 2 {
		t.Fatalf("expected 2 profiles after reload, got %d", again.Len())
	}
	first, _ := again.At(0)
	second, _ := again.At(1)
	if first.Name != "z" || second.Name != "a" {
		t.Fatalf("expected order z,a after reload, got %s,%s", first.Name, second.Name)
	}
	if second.Port == nil || *second.Port != "2200" {
		t.Fatalf("expected Port to survive reload, got %#v", second.Port)
	}
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}
