package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrStoreEmpty is returned by Store.Load when nothing has been persisted yet
var ErrStoreEmpty = errors.New("registry store is empty")

// Store persists whole registry snapshots
type Store interface {
	// Load returns the persisted companies in registry order, or ErrStoreEmpty
	Load(ctx context.Context) ([]Company, error)

	// Save replaces the persisted snapshot with companies
	Save(ctx context.Context, companies []Company) error
}

// FileStore keeps the snapshot as an indented JSON array (corpCodes.json)
type FileStore struct {
	path string
}

// NewFileStore creates a JSON file store at path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the snapshot file
func (s *FileStore) Load(ctx context.Context) ([]Company, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrStoreEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("open registry file: %w", err)
	}
	defer f.Close()

	var companies []Company
	if err := json.NewDecoder(f).Decode(&companies); err != nil {
		return nil, fmt.Errorf("decode registry file %s: %w", s.path, err)
	}

	return companies, nil
}

// Save writes the snapshot through a temp file and rename so readers never see a torn file
func (s *FileStore) Save(ctx context.Context, companies []Company) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".corpcodes-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after rename

	if err := WriteJSON(tmp, companies); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace registry file: %w", err)
	}
	return nil
}
