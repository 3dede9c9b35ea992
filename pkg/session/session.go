// Package session implements the interactive editor state machine: the
// Browsing/Editing mode transitions, field navigation, key-repeat
// debouncing, and the save/cancel protocol over a profile store.
//
// The package consumes an abstract stream of key events and produces an
// abstract view model; terminal decoding and rendering live in the TUI
// frontend. Everything here is synchronous: one event is fully processed,
// including any blocking permission-fix call, before the next is read.
package session

import (
	"strings"
	"time"

	"sshedit/pkg/permfix"
	"sshedit/pkg/profile"
)

// KeyKind enumerates the abstract editor key events.
type KeyKind int

const (
	KeyUp KeyKind = iota
	KeyDown
	KeyEdit
	KeyNew
	KeyConnect
	KeyFixPerms
	KeyQuit
	KeyNextField
	KeyPrevField
	KeyBackspace
	KeyCommit
	KeyCancel
	KeyRune
)

// Key is one input event. Rune is meaningful only for KeyRune.
type Key struct {
	Kind KeyKind
	Rune rune
}

// Mode is the editor's interaction mode.
type Mode int

const (
	ModeBrowsing Mode = iota
	ModeEditing
)

// EffectKind classifies what the event loop must do after a key is handled.
type EffectKind int

const (
	// EffectNone: keep reading events.
	EffectNone EffectKind = iota
	// EffectQuit: end the session cleanly.
	EffectQuit
	// EffectConnect: end the session and hand Host to the connection
	// launcher. Launching is terminal regardless of the subprocess result.
	EffectConnect
)

// Effect is the outward result of handling one key.
type Effect struct {
	Kind EffectKind
	Host string
}

// targetNew marks an edit buffer destined for Append rather than Replace.
const targetNew = -1

// defaultNewName seeds the name field of a freshly created entry.
const defaultNewName = "new-host"

// DefaultDebounce is the key-repeat suppression window used when the
// settings file does not override it. Terminal/OS quirks can deliver bursts
// of duplicate key events; anything tighter than this window is noise, not
// deliberate repetition.
const DefaultDebounce = 150 * time.Millisecond

// Store is the slice of profile.Store behavior the session needs. The
// session is its sole mutator for the lifetime of the process.
type Store interface {
	Len() int
	Profiles() []profile.Profile
	At(i int) (profile.Profile, bool)
	Replace(i int, p profile.Profile) error
	Append(p profile.Profile) int
	Persist() error
}

// Session is the editor state machine. It owns the transient edit buffer
// and the debounce baseline; the store remains the single source of truth
// for committed profiles.
type Session struct {
	store Store
	fixer permfix.Fixer

	mode     Mode
	selected int

	buffer      profile.Profile
	fieldCursor int
	target      int

	status string

	window      time.Duration
	lastKey     Key
	lastKeyTime time.Time
	hasLastKey  bool
	now         func() time.Time
}

// New creates a session in Browsing mode over the given store. A zero
// window disables debouncing.
func New(store Store, fixer permfix.Fixer, window time.Duration) *Session {
	return &Session{
		store:  store,
		fixer:  fixer,
		window: window,
		now:    time.Now,
	}
}

// Mode returns the current interaction mode.
func (s *Session) Mode() Mode { return s.mode }

// Selected returns the browsing cursor index. It is only meaningful when
// the store is non-empty; callers must handle the empty case and never
// index with it blindly.
func (s *Session) Selected() int { return s.selected }

// Status returns the transient status banner text, empty when none.
func (s *Session) Status() string { return s.status }

// Store returns the profile store the session mutates.
func (s *Session) Store() Store { return s.store }

// Buffer returns the pending edit buffer. Meaningful only in Editing mode.
func (s *Session) Buffer() profile.Profile { return s.buffer }

// FieldCursor returns the focused field index within profile.Fields().
func (s *Session) FieldCursor() int { return s.fieldCursor }

// Current returns the profile under the browsing cursor.
func (s *Session) Current() (profile.Profile, bool) {
	return s.store.At(s.selected)
}

// HandleKey runs one key event through debounce and, if admitted, the mode
// transition table. It returns the effect the event loop must honor.
func (s *Session) HandleKey(k Key) Effect {
	if !s.admit(k) {
		return Effect{Kind: EffectNone}
	}
	switch s.mode {
	case ModeEditing:
		return s.handleEditing(k)
	default:
		return s.handleBrowsing(k)
	}
}

// admit applies key-repeat debouncing: a key identical to the previously
// admitted one, arriving within the window, is dropped. Dropped keys do not
// update the baseline, so a burst of duplicates collapses to its first
// event rather than sliding the window forward.
func (s *Session) admit(k Key) bool {
	now := s.now()
	if s.hasLastKey && k == s.lastKey && now.Sub(s.lastKeyTime) < s.window {
		return false
	}
	s.lastKey = k
	s.lastKeyTime = now
	s.hasLastKey = true
	return true
}

func (s *Session) handleBrowsing(k Key) Effect {
	switch k.Kind {
	case KeyDown:
		if n := s.store.Len(); n > 0 {
			s.selected = (s.selected + 1) % n
		}
	case KeyUp:
		if n := s.store.Len(); n > 0 {
			s.selected = (s.selected - 1 + n) % n
		}
	case KeyEdit:
		if p, ok := s.store.At(s.selected); ok {
			s.beginEdit(p, s.selected)
		}
	case KeyNew:
		s.beginEdit(profile.Profile{Name: defaultNewName}, targetNew)
	case KeyConnect:
		if p, ok := s.store.At(s.selected); ok {
			return Effect{Kind: EffectConnect, Host: p.Name}
		}
	case KeyFixPerms:
		s.fixPermissions()
	case KeyQuit:
		return Effect{Kind: EffectQuit}
	}
	return Effect{Kind: EffectNone}
}

func (s *Session) handleEditing(k Key) Effect {
	switch k.Kind {
	case KeyCancel:
		// Discard the buffer wholesale; the store was never touched.
		s.buffer = profile.Profile{}
		s.mode = ModeBrowsing
		s.status = ""
	case KeyCommit:
		s.commit()
	case KeyNextField:
		s.fieldCursor = (s.fieldCursor + 1) % len(profile.Fields())
	case KeyPrevField:
		n := len(profile.Fields())
		s.fieldCursor = (s.fieldCursor - 1 + n) % n
	case KeyBackspace:
		f := profile.Fields()[s.fieldCursor]
		v, _ := s.buffer.Get(f)
		if r := []rune(v); len(r) > 0 {
			v = string(r[:len(r)-1])
		}
		// Absent fields materialize as empty here: the user started
		// editing them, so they are now part of the entry.
		s.buffer.Set(f, v)
	case KeyRune:
		f := profile.Fields()[s.fieldCursor]
		v, _ := s.buffer.Get(f)
		s.buffer.Set(f, v+string(k.Rune))
	}
	return Effect{Kind: EffectNone}
}

// beginEdit enters Editing mode with a value copy of p. Starting an edit is
// a mode change, so any stale status banner is cleared.
func (s *Session) beginEdit(p profile.Profile, target int) {
	s.buffer = p
	s.fieldCursor = 0
	s.target = target
	s.mode = ModeEditing
	s.status = ""
}

// commit applies the buffer to the store and persists the full sequence.
// The in-memory edit always lands even when the write fails; the failure is
// surfaced on the status banner instead of being swallowed.
func (s *Session) commit() {
	if strings.TrimSpace(s.buffer.Name) == "" {
		// A profile without a name can never round-trip; refuse the
		// commit and keep the user in the form.
		s.status = "name must not be empty"
		return
	}

	if s.target == targetNew {
		s.selected = s.store.Append(s.buffer)
	} else if err := s.store.Replace(s.target, s.buffer); err != nil {
		s.status = "save failed: " + err.Error()
		s.mode = ModeBrowsing
		return
	}

	s.status = ""
	if err := s.store.Persist(); err != nil {
		s.status = "save failed: " + err.Error()
	}
	s.buffer = profile.Profile{}
	s.mode = ModeBrowsing
}

// fixPermissions runs the platform permission sequence against the current
// profile's identity file, blocking until it completes, and surfaces the
// aggregate result as the status banner. Hosts without an identity file are
// left alone.
func (s *Session) fixPermissions() {
	p, ok := s.store.At(s.selected)
	if !ok || s.fixer == nil {
		return
	}
	path, set := p.Get(profile.FieldIdentityFile)
	if !set || strings.TrimSpace(path) == "" {
		return
	}
	// The report names the failing step itself; the error adds nothing
	// the banner needs.
	rep, _ := s.fixer.Tighten(strings.TrimSpace(path))
	s.status = rep.Summary()
}
