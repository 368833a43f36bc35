// Package profile persists the single local player profile.
package profile

import (
	"context"
	"errors"

	"github.com/fadedpez/neonroyal/pkg/entities"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrCorruptProfile  = errors.New("profile is corrupt")
)

// Repository loads and saves the whole ledger as one unit
//
//go:generate mockgen -source=$GOFILE -destination=mock/mock.go -package=mock_profile
type Repository interface {
	// Load returns ErrProfileNotFound when nothing has been saved yet and an
	// error wrapping ErrCorruptProfile when stored data cannot be decoded
	Load(ctx context.Context) (*entities.PlayerLedger, error)

	// Save replaces the stored profile
	Save(ctx context.Context, ledger *entities.PlayerLedger) error

	Close() error
}
