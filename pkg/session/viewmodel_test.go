package session

import (
	"testing"

	"sshedit/pkg/profile"
)

func TestBuildViewModel_BrowsingRows(t *testing.T) {
	store := hosts("web", "db")
	store.profiles[0].HostName = strp("10.0.0.5")
	s := newTestSession(store)
	s.HandleKey(Key{Kind: KeyDown})

	vm := BuildViewModel(s)
	if vm.Mode != ModeBrowsing {
		t.Fatalf("expected Browsing mode")
	}
	if len(vm.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(vm.Rows))
	}
	if vm.Rows[0].Label != "web (10.0.0.5)" {
		t.Fatalf("expected hostname in label, got %q", vm.Rows[0].Label)
	}
	if vm.Rows[1].Label != "db" {
		t.Fatalf("expected bare name label, got %q", vm.Rows[1].Label)
	}
	if vm.Rows[0].Selected || !vm.Rows[1].Selected {
		t.Fatalf("expected only row 1 selected")
	}
	if len(vm.Form) != 0 {
		t.Fatalf("expected no form while browsing")
	}
}

func TestBuildViewModel_EmptyStore(t *testing.T) {
	vm := BuildViewModel(newTestSession(hosts()))
	if len(vm.Rows) != 0 {
		t.Fatalf("expected zero rows for empty store, got %d", len(vm.Rows))
	}
}

func TestBuildViewModel_EditingForm(t *testing.T) {
	store := hosts("web")
	store.profiles[0].User = strp("ops")
	s := newTestSession(store)
	s.HandleKey(Key{Kind: KeyEdit})
	s.HandleKey(Key{Kind: KeyNextField})

	vm := BuildViewModel(s)
	if vm.Mode != ModeEditing {
		t.Fatalf("expected Editing mode")
	}
	if len(vm.Form) != len(profile.Fields()) {
		t.Fatalf("expected %d form fields, got %d", len(profile.Fields()), len(vm.Form))
	}
	if vm.Form[0].Label != "Name" || vm.Form[0].Value != "web" {
		t.Fatalf("unexpected first form field: %#v", vm.Form[0])
	}
	if vm.Form[2].Label != "User" || vm.Form[2].Value != "ops" {
		t.Fatalf("unexpected user form field: %#v", vm.Form[2])
	}
	for i, f := range vm.Form {
		want := i == 1
		if f.Focused != want {
			t.Fatalf("expected only field 1 focused, field %d focused=%v", i, f.Focused)
		}
	}
	// Absent fields render as empty values.
	if vm.Form[3].Value != "" {
		t.Fatalf("expected absent Port to render empty, got %q", vm.Form[3].Value)
	}
}

func TestBuildViewModel_StatusPassedThrough(t *testing.T) {
	s := newTestSession(hosts("a"))
	s.status = "saved"
	vm := BuildViewModel(s)
	if vm.Status != "saved" {
		t.Fatalf("expected status passthrough, got %q", vm.Status)
	}
}
