package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fadedpez/neonroyal/pkg/entities"
)

// FileRepository stores the profile as a single JSON document
type FileRepository struct {
	path string
	mu   sync.Mutex
}

// NewFileRepository creates a file store at path. The file is created on
// first save.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

// Path returns the location of the JSON document
func (r *FileRepository) Path() string {
	return r.path
}

// Load reads and decodes the profile
func (r *FileRepository) Load(ctx context.Context) (*entities.PlayerLedger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var ledger entities.PlayerLedger
	if err := json.Unmarshal(data, &ledger); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptProfile, err)
	}

	return &ledger, nil
}

// Save writes the profile to a temp file and renames it into place so a
// crash mid-write never leaves a truncated document
func (r *FileRepository) Save(ctx context.Context, ledger *entities.PlayerLedger) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(ledger, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".profile-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write profile: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync profile: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close profile: %w", err)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("failed to replace profile: %w", err)
	}

	return nil
}

func (r *FileRepository) Close() error {
	return nil
}
