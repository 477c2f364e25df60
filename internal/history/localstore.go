package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jalennorris/taskplan/internal/models"
)

const historyFileName = "user_history.json"

// persistedState is the on-disk shape: the bounded history plus the
// recent-ideas list.
type persistedState struct {
	History     models.UserHistory `json:"history"`
	RecentIdeas []string           `json:"recentIdeas"`
}

// filePersister stores the history blob as a single JSON file under the
// user data dir, the device key-value store equivalent.
type filePersister struct {
	path string
}

func newFilePersister(dataDir string) *filePersister {
	return &filePersister{path: filepath.Join(dataDir, historyFileName)}
}

// load reads the persisted state. A missing file is a normal first run and
// yields empty state with no error.
func (p *filePersister) load() (persistedState, error) {
	var state persistedState
	data, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return state, nil
		}
		return state, fmt.Errorf("failed to read history file: %w", err)
	}
	if err := json.Unmarshal(data, &state); err != nil {
		// A corrupt file is replaced on the next save.
		return persistedState{}, fmt.Errorf("failed to parse history file: %w", err)
	}
	return state, nil
}

// save writes the state atomically: temp file in the same directory, then
// rename over the target.
func (p *filePersister) save(state persistedState) error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p.path), historyFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, p.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace history file: %w", err)
	}
	return nil
}
