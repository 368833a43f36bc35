// Package archive keeps every settled round beyond the ledger's bounded
// history.
package archive

import (
	"context"
	"time"

	"github.com/fadedpez/neonroyal/pkg/entities"
)

// Archive is an append-mostly log of settled rounds
//
//go:generate mockgen -source=$GOFILE -destination=mock/mock.go -package=mock_archive
type Archive interface {
	// Record stores one settled round, keyed by its id
	Record(ctx context.Context, entry *entities.HistoryEntry) error

	// Recent returns up to limit rounds, newest first
	Recent(ctx context.Context, limit int) ([]entities.HistoryEntry, error)

	// Prune drops rounds settled before cutoff and reports how many went
	Prune(ctx context.Context, cutoff time.Time) (int64, error)

	Close() error
}
