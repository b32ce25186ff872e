package frecency

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultStorePath returns the default rankings path: ~/.frecd/frecency.json
func DefaultStorePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".frecd", "frecency.json"), nil
}

// document is the on-disk shape. The decay parameter is config-supplied
// and deliberately not part of the file.
type document struct {
	Entries map[string]Entry `json:"entries"`
}

// Save writes the entries to the store's path. The document is written to
// a temp file in the same directory and renamed over the target, so a
// crash mid-write never leaves a corrupt or partial file behind. Output
// is compact JSON; an empty store still writes a valid empty document.
func (s *Store) Save() error {
	data, err := json.Marshal(document{Entries: s.entries})
	if err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".frecency-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename over %s: %w", s.path, err)
	}
	return nil
}

// Load replaces the entry set from the file at the store's path.
// A missing file is not an error — the store starts empty, which is the
// normal first run. A malformed file is surfaced to the caller, who
// decides whether to discard it (this is cache data, not a primary store).
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.entries = make(map[string]Entry)
		s.revision++
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", s.path, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse %s: %w", s.path, err)
	}
	if doc.Entries == nil {
		doc.Entries = make(map[string]Entry)
	}

	s.entries = doc.Entries
	s.revision++
	return nil
}
