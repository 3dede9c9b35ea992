package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the terminal bindings for both modes. Editing-mode rune
// input is handled separately: any printable key that matches no binding is
// typed into the focused field.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Edit     key.Binding
	New      key.Binding
	Connect  key.Binding
	FixPerms key.Binding
	Quit     key.Binding

	NextField key.Binding
	PrevField key.Binding
	Commit    key.Binding
	Cancel    key.Binding
	Backspace key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new host"),
		),
		Connect: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "connect"),
		),
		FixPerms: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fix key perms"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),

		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Commit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "delete char"),
		),
	}
}

// browseHelp is the binding set shown under the host list.
func (k keyMap) browseHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Edit, k.New, k.Connect, k.FixPerms, k.Quit}
}

// editHelp is the binding set shown under the form.
func (k keyMap) editHelp() []key.Binding {
	return []key.Binding{k.NextField, k.PrevField, k.Commit, k.Cancel}
}
