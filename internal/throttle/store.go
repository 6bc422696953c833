package throttle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persists the throttle state as a small JSON file, one per
// client, the way the browser kept it in localStorage.
type FileStore struct {
	Path string
}

// NewFileStore creates a FileStore at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the state; a missing file is an empty state, not an error.
func (fs *FileStore) Load() (State, error) {
	data, err := os.ReadFile(fs.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, nil
		}
		return State{}, fmt.Errorf("read throttle state: %w", err)
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		// corrupt state must not brick login; start over
		return State{}, nil
	}
	return s, nil
}

// Save writes the state, creating the parent directory if needed.
func (fs *FileStore) Save(s State) error {
	if dir := filepath.Dir(fs.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode throttle state: %w", err)
	}
	if err := os.WriteFile(fs.Path, data, 0o600); err != nil {
		return fmt.Errorf("write throttle state: %w", err)
	}
	return nil
}

// Clear removes the persisted state. A missing file is fine.
func (fs *FileStore) Clear() error {
	if err := os.Remove(fs.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear throttle state: %w", err)
	}
	return nil
}
