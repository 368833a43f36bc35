package round

import (
	"context"

	"github.com/fadedpez/neonroyal/pkg/entities"
)

// Wallet is the part of the ledger a game engine needs: debit a wager up
// front, then settle the round with whatever came back.
//
//go:generate mockgen -source=$GOFILE -destination=mock/mock.go -package=mock_round
type Wallet interface {
	PlaceWager(ctx context.Context, amount int64) error
	SettleRound(ctx context.Context, game entities.GameType, payout int64, narration string) (*entities.HistoryEntry, error)
}
