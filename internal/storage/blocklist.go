package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// blocklistFile is the on-disk shape: exact names under "blocklist",
// wildcard patterns under "patterns".
type blocklistFile struct {
	Blocklist []string `json:"blocklist"`
	Patterns  []string `json:"patterns"`
}

// BlocklistStore persists the company blocklist as a JSON file. Appends
// rewrite the whole file; entries are never removed.
type BlocklistStore struct {
	mu   sync.Mutex
	path string
}

func NewBlocklistStore(path string) *BlocklistStore {
	return &BlocklistStore{path: path}
}

// Load reads the current entries. A missing file yields empty lists, not an
// error.
func (s *BlocklistStore) Load() (blocked, patterns []string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("could not read blocklist file: %w", err)
	}

	var file blocklistFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("could not parse blocklist file: %w", err)
	}
	return file.Blocklist, file.Patterns, nil
}

// Append adds one exact company entry and rewrites the file, preserving
// existing patterns.
func (s *BlocklistStore) Append(company string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var file blocklistFile
	if data, err := os.ReadFile(s.path); err == nil {
		if err := json.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("could not parse blocklist file: %w", err)
		}
	}

	file.Blocklist = append(file.Blocklist, company)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("could not create blocklist dir: %w", err)
	}
	data, err := json.MarshalIndent(file, "", "    ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("could not write blocklist file: %w", err)
	}
	return nil
}
