// Package round holds the wager lifecycle every game engine shares.
package round

import (
	"context"
	"errors"
	"sync"

	"github.com/fadedpez/neonroyal/internal/types"
	"github.com/fadedpez/neonroyal/pkg/entities"
)

var (
	ErrRoundInProgress = errors.New("round already in progress")
	ErrNoRound         = errors.New("no round in progress")
)

// State is where a round is in its lifecycle
type State string

const (
	StateIdle       State = "IDLE"
	StateInProgress State = "IN_PROGRESS"
	StateResolved   State = "RESOLVED"
)

// Round tracks one engine's wager from acceptance to settlement. A resolved
// round behaves like an idle one for the purposes of starting the next.
type Round struct {
	mu     sync.Mutex
	game   entities.GameType
	wallet Wallet
	state  State
	wager  int64
}

// New creates an idle round for game
func New(game entities.GameType, wallet Wallet) *Round {
	return &Round{
		game:   game,
		wallet: wallet,
		state:  StateIdle,
	}
}

// Begin places the wager with the wallet and moves to IN_PROGRESS. Nothing
// changes if the wallet rejects the wager.
func (r *Round) Begin(ctx context.Context, wager int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateInProgress {
		return types.WrapError(types.ErrRoundInProgress, string(r.game)+" round already in progress", ErrRoundInProgress)
	}

	if err := r.wallet.PlaceWager(ctx, wager); err != nil {
		return err
	}

	r.state = StateInProgress
	r.wager = wager
	return nil
}

// Settle hands the payout to the wallet and resolves the round
func (r *Round) Settle(ctx context.Context, payout int64, narration string) (*entities.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateInProgress {
		return nil, types.WrapError(types.ErrInvalidAction, "no "+string(r.game)+" round to settle", ErrNoRound)
	}

	entry, err := r.wallet.SettleRound(ctx, r.game, payout, narration)
	if err != nil {
		return nil, err
	}

	r.state = StateResolved
	return entry, nil
}

// State returns the current lifecycle state
func (r *Round) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// InProgress reports whether a wager is open
func (r *Round) InProgress() bool {
	return r.State() == StateInProgress
}

// Wager is the stake of the current or most recent round
func (r *Round) Wager() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.wager
}

// Game is the game this round belongs to
func (r *Round) Game() entities.GameType {
	return r.game
}

// RequireInProgress returns an INVALID_ACTION error unless a wager is open.
// Multi-step engines call it before every mid-round action.
func (r *Round) RequireInProgress(action string) error {
	if !r.InProgress() {
		return types.WrapError(types.ErrInvalidAction, "cannot "+action+": no "+string(r.game)+" round in progress", ErrNoRound)
	}
	return nil
}
