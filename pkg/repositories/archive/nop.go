package archive

import (
	"context"
	"time"

	"github.com/fadedpez/neonroyal/pkg/entities"
)

// Nop discards everything. It is used when no archive is configured.
type Nop struct{}

func (Nop) Record(ctx context.Context, entry *entities.HistoryEntry) error { return nil }

func (Nop) Recent(ctx context.Context, limit int) ([]entities.HistoryEntry, error) {
	return nil, nil
}

func (Nop) Prune(ctx context.Context, cutoff time.Time) (int64, error) { return 0, nil }

func (Nop) Close() error { return nil }
