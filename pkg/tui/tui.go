// Package tui is the Bubble Tea frontend for the editor session. It decodes
// terminal key presses into the session's abstract key events, and renders
// the session's view model; all editor behavior lives in pkg/session.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sshedit/pkg/session"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	cursorStyle   = lipgloss.NewStyle().Bold(true)
	labelStyle    = lipgloss.NewStyle().Width(14)
	focusedStyle  = lipgloss.NewStyle().Bold(true).Underline(true).Width(14)
	statusStyle   = lipgloss.NewStyle().Italic(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	emptyStyle    = lipgloss.NewStyle().Faint(true).Padding(1, 2)
)

// Model wraps the editor session for Bubble Tea.
type Model struct {
	sess       *session.Session
	keys       keyMap
	configPath string

	width  int
	height int

	// Connect carries the host chosen for launch, set when the program
	// quits with a connect effect. Read by main after Run returns.
	Connect string
}

// NewModel builds the TUI model. configPath is shown in the title bar only.
func NewModel(sess *session.Session, configPath string) Model {
	return Model{
		sess:       sess,
		keys:       defaultKeyMap(),
		configPath: configPath,
	}
}

// Run drives the TUI to completion and returns the host to connect to, if
// any ("" means the user quit).
func Run(sess *session.Session, configPath string) (string, error) {
	p := tea.NewProgram(NewModel(sess, configPath), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("tui: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return "", nil
	}
	return m.Connect, nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		k, ok := m.translate(msg)
		if !ok {
			return m, nil
		}
		eff := m.sess.HandleKey(k)
		switch eff.Kind {
		case session.EffectQuit:
			return m, tea.Quit
		case session.EffectConnect:
			m.Connect = eff.Host
			return m, tea.Quit
		}
		return m, nil
	}
	return m, nil
}

// translate maps one terminal key press to the session's abstract event.
// The mode decides the mapping: while editing, unbound printable keys are
// typed into the focused field.
func (m Model) translate(msg tea.KeyMsg) (session.Key, bool) {
	if m.sess.Mode() == session.ModeEditing {
		switch {
		case key.Matches(msg, m.keys.Cancel):
			return session.Key{Kind: session.KeyCancel}, true
		case key.Matches(msg, m.keys.Commit):
			return session.Key{Kind: session.KeyCommit}, true
		case key.Matches(msg, m.keys.NextField):
			return session.Key{Kind: session.KeyNextField}, true
		case key.Matches(msg, m.keys.PrevField):
			return session.Key{Kind: session.KeyPrevField}, true
		case key.Matches(msg, m.keys.Backspace):
			return session.Key{Kind: session.KeyBackspace}, true
		}
		if msg.Type == tea.KeyRunes && !msg.Alt {
			runes := msg.Runes
			if len(runes) == 1 {
				return session.Key{Kind: session.KeyRune, Rune: runes[0]}, true
			}
		}
		if msg.Type == tea.KeySpace {
			return session.Key{Kind: session.KeyRune, Rune: ' '}, true
		}
		return session.Key{}, false
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		return session.Key{Kind: session.KeyUp}, true
	case key.Matches(msg, m.keys.Down):
		return session.Key{Kind: session.KeyDown}, true
	case key.Matches(msg, m.keys.Edit):
		return session.Key{Kind: session.KeyEdit}, true
	case key.Matches(msg, m.keys.New):
		return session.Key{Kind: session.KeyNew}, true
	case key.Matches(msg, m.keys.Connect):
		return session.Key{Kind: session.KeyConnect}, true
	case key.Matches(msg, m.keys.FixPerms):
		return session.Key{Kind: session.KeyFixPerms}, true
	case key.Matches(msg, m.keys.Quit):
		return session.Key{Kind: session.KeyQuit}, true
	}
	return session.Key{}, false
}

func (m Model) View() string {
	vm := session.BuildViewModel(m.sess)

	var b strings.Builder
	b.WriteString(titleStyle.Render("SSH Hosts ("+m.configPath+")") + "\n\n")

	if vm.Mode == session.ModeEditing {
		m.renderForm(&b, vm)
	} else {
		m.renderList(&b, vm)
	}

	if vm.Status != "" {
		b.WriteString("\n" + statusStyle.Render(vm.Status) + "\n")
	}

	bindings := m.keys.browseHelp()
	if vm.Mode == session.ModeEditing {
		bindings = m.keys.editHelp()
	}
	b.WriteString("\n" + helpStyle.Render(renderHelp(bindings)))
	return b.String()
}

func (m Model) renderList(b *strings.Builder, vm session.ViewModel) {
	if len(vm.Rows) == 0 {
		b.WriteString(emptyStyle.Render("No hosts found. Press n to create one.") + "\n")
		return
	}
	for _, row := range vm.Rows {
		if row.Selected {
			b.WriteString(cursorStyle.Render("→ ") + selectedStyle.Render(row.Label) + "\n")
		} else {
			b.WriteString("  " + row.Label + "\n")
		}
	}
}

func (m Model) renderForm(b *strings.Builder, vm session.ViewModel) {
	for _, f := range vm.Form {
		label := labelStyle.Render(f.Label)
		value := f.Value
		if f.Focused {
			label = focusedStyle.Render(f.Label)
			value += cursorStyle.Render("▏")
		}
		b.WriteString(label + " " + value + "\n")
	}
}

func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}
