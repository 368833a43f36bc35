package profile

import (
	"context"
	"sync"

	"github.com/fadedpez/neonroyal/pkg/entities"
)

// MemoryRepository keeps the profile in process memory
type MemoryRepository struct {
	mu     sync.RWMutex
	ledger *entities.PlayerLedger
	saves  int
}

// NewMemoryRepository creates an empty in-memory profile store
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Load returns a copy of the stored profile
func (r *MemoryRepository) Load(ctx context.Context) (*entities.PlayerLedger, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.ledger == nil {
		return nil, ErrProfileNotFound
	}
	return r.ledger.Clone(), nil
}

// Save stores a copy so later mutations by the caller are not visible
func (r *MemoryRepository) Save(ctx context.Context, ledger *entities.PlayerLedger) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ledger = ledger.Clone()
	r.saves++
	return nil
}

// Saves returns how many times Save has been called
func (r *MemoryRepository) Saves() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}

func (r *MemoryRepository) Close() error {
	return nil
}
