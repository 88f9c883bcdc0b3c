package indexer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const stateFile = "state.json"

// IndexState records which post versions are in the semantic index and
// which embedding model produced them.
type IndexState struct {
	Model       string            `json:"model"`
	PostHashes  map[string]string `json:"post_hashes"`
	LastUpdated time.Time         `json:"last_updated"`
}

// LoadState reads state.json from the index directory. A missing file
// yields an empty state.
func LoadState(dir string) (*IndexState, error) {
	data, err := os.ReadFile(filepath.Join(dir, stateFile))
	if err != nil {
		if os.IsNotExist(err) {
			return &IndexState{PostHashes: make(map[string]string)}, nil
		}
		return nil, err
	}

	var state IndexState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	if state.PostHashes == nil {
		state.PostHashes = make(map[string]string)
	}
	return &state, nil
}

// SaveState writes state.json into the index directory.
func (s *IndexState) SaveState(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	s.LastUpdated = time.Now()
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, stateFile), data, 0o644)
}

// IsChanged reports whether slug is missing from the state or was indexed
// with different content.
func (s *IndexState) IsChanged(slug, contentHash string) bool {
	stored, ok := s.PostHashes[slug]
	return !ok || stored != contentHash
}

// Empty reports whether nothing has been indexed yet.
func (s *IndexState) Empty() bool {
	return len(s.PostHashes) == 0
}
