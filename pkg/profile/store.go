package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Store owns the in-memory ordered Profile sequence for a session.
//
// Order is significant: it is file order and display order, and it survives
// a parse -> edit -> serialize round trip. The store is owned exclusively by
// the running session; nothing else mutates it concurrently.
type Store struct {
	path     string
	profiles []Profile
}

// Load reads and parses the config file at path. An unreadable or missing
// file is not fatal: the tool stays usable to create new entries, so the
// store simply starts empty in that case.
func Load(path string) *Store {
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	s.profiles = Parse(string(data))
	return s
}

// Path returns the config file path this store persists to.
func (s *Store) Path() string { return s.path }

// Len returns the number of profiles.
func (s *Store) Len() int { return len(s.profiles) }

// Profiles returns a copy of the profile sequence in display order.
func (s *Store) Profiles() []Profile {
	return append([]Profile(nil), s.profiles...)
}

// At returns the profile at index i.
func (s *Store) At(i int) (Profile, bool) {
	if i < 0 || i >= len(s.profiles) {
		return Profile{}, false
	}
	return s.profiles[i], true
}

// Replace overwrites the profile at index i.
func (s *Store) Replace(i int, p Profile) error {
	if i < 0 || i >= len(s.profiles) {
		return fmt.Errorf("replace profile: index %d out of range", i)
	}
	s.profiles[i] = p
	return nil
}

// Append adds a profile at the end and returns its index.
func (s *Store) Append(p Profile) int {
	s.profiles = append(s.profiles, p)
	return len(s.profiles) - 1
}

// Persist serializes the full current sequence and writes it to the config
// path. Partial or selective writes are not supported.
//
// The write goes through a sibling tmp file and rename, with a best-effort
// .bak copy of the previous contents, so an interrupted save cannot leave a
// truncated config behind.
func (s *Store) Persist() error {
	if s.path == "" {
		return errors.New("persist: no config path set")
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("persist: create dir %s: %w", dir, err)
	}

	if data, err := os.ReadFile(s.path); err == nil {
		_ = os.WriteFile(s.path+".bak", data, 0o600)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(Serialize(s.profiles)), 0o600); err != nil {
		return fmt.Errorf("persist: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("persist: replace %s: %w", s.path, err)
	}
	return nil
}
