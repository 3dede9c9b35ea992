package session

import "sshedit/pkg/profile"

// ViewModel is the renderable description of the session. It is produced by
// a pure projection over the session and store; the renderer consumes it
// and feeds nothing back except the key-event stream.
type ViewModel struct {
	Mode Mode

	// Rows is the host list in display order. Empty when the store is
	// empty; renderers show their own placeholder in that case.
	Rows []Row

	// Form is populated only in Editing mode, one entry per editable
	// field in fixed order.
	Form []FormField

	// Status is the transient banner text, empty when none.
	Status string
}

// Row is one host list entry.
type Row struct {
	Label    string
	Selected bool
}

// FormField is one line of the editing form.
type FormField struct {
	Label   string
	Value   string
	Focused bool
}

// BuildViewModel projects the current session and store state into a
// ViewModel. It never mutates anything and never indexes into an empty
// store.
func BuildViewModel(s *Session) ViewModel {
	vm := ViewModel{
		Mode:   s.Mode(),
		Status: s.Status(),
	}

	for i, p := range s.Store().Profiles() {
		label := p.Name
		if hn, ok := p.Get(profile.FieldHostName); ok && hn != "" {
			label += " (" + hn + ")"
		}
		vm.Rows = append(vm.Rows, Row{
			Label:    label,
			Selected: i == s.Selected(),
		})
	}

	if s.Mode() == ModeEditing {
		buf := s.Buffer()
		for i, f := range profile.Fields() {
			v, _ := buf.Get(f)
			vm.Form = append(vm.Form, FormField{
				Label:   f.Label(),
				Value:   v,
				Focused: i == s.FieldCursor(),
			})
		}
	}

	return vm
}
