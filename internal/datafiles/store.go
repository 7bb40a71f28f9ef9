// Package datafiles manages the one piece of state tes3mpctl persists for
// itself: where the user's Morrowind "Data Files" folder lives.
package datafiles

import (
	"os"
	"path/filepath"
	"strings"
)

// MarkerFile proves a directory is a real Data Files folder. Everything here
// validates against it before trusting a path.
const MarkerFile = "Morrowind.esm"

const prefFileName = "data_location.txt"

// Store persists the data-files location as a single plain-text path under
// the tool's config directory.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at configDir.
func NewStore(configDir string) *Store {
	return &Store{dir: configDir}
}

// PathFile returns the location of the preference file itself.
func (s *Store) PathFile() string {
	return filepath.Join(s.dir, prefFileName)
}

// Save remembers where the user said their Morrowind files are. An existing
// preference is overwritten.
func (s *Store) Save(path string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.PathFile(), []byte(path), 0o644)
}

// Load recalls the stored location. ok is false when no preference exists.
func (s *Store) Load() (path string, ok bool) {
	data, err := os.ReadFile(s.PathFile())
	if err != nil {
		return "", false
	}
	path = strings.TrimSpace(string(data))
	if path == "" {
		return "", false
	}
	return path, true
}

// LoadPresent recalls the stored location and additionally requires the
// directory to still exist on disk.
func (s *Store) LoadPresent() (string, bool) {
	path, ok := s.Load()
	if !ok {
		return "", false
	}
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// Validate reports whether dir contains Morrowind.esm.
func Validate(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, MarkerFile))
	return err == nil
}
