// Package store persists the budget document as a single JSON file and
// keeps a SQLite archive of completed periods for fast history queries.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/glidepath/internal/model"
	"github.com/theirongolddev/glidepath/internal/reconcile"
)

// FileStore reads and writes the budget document at a fixed path.
type FileStore struct {
	path string
}

// NewFileStore returns a store for the given document path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the document path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads, validates, and migrates the budget document. A missing file
// is "no data yet" and returns (nil, nil); a malformed or invalid document
// is an error, never handed to the engine.
func (s *FileStore) Load() (*model.BudgetConfig, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading budget file: %w", err)
	}

	var cfg model.BudgetConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing budget file %s: %w", s.path, err)
	}

	cfg.ApplyDefaults()
	reconcile.Migrate(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("budget file %s: %w", s.path, err)
	}
	return &cfg, nil
}

// Save writes the document atomically: marshal, write a sibling temp file,
// rename over the original. The in-memory copy stays authoritative, so a
// failed save is reported and simply retried on the next one.
func (s *FileStore) Save(cfg *model.BudgetConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding budget: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating budget dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing budget file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing budget file: %w", err)
	}
	return nil
}
