// Package coinflip implements a single heads-or-tails call.
package coinflip

import (
	"context"
	"fmt"
	"strings"

	"github.com/fadedpez/neonroyal/internal/types"
	"github.com/fadedpez/neonroyal/pkg/bonus"
	"github.com/fadedpez/neonroyal/pkg/entities"
	"github.com/fadedpez/neonroyal/pkg/rng"
	"github.com/fadedpez/neonroyal/pkg/services/round"
)

type Side string

const (
	Heads Side = "HEADS"
	Tails Side = "TAILS"
)

// ParseSide accepts heads/tails in any case, or h/t
func ParseSide(s string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HEADS", "H":
		return Heads, nil
	case "TAILS", "T":
		return Tails, nil
	}
	return "", types.NewGameError(types.ErrInvalidArgument, fmt.Sprintf("pick HEADS or TAILS, got %q", s))
}

// Land turns one draw into a side: the upper half of [0,1) is heads
func Land(draw float64) Side {
	if draw >= 0.5 {
		return Heads
	}
	return Tails
}

// Flip is the outcome of one toss
type Flip struct {
	Pick      Side
	Landed    Side
	Payout    int64
	Narration string
	Entry     *entities.HistoryEntry
}

type Engine struct {
	round *round.Round
	src   rng.Source
}

func NewEngine(wallet round.Wallet, src rng.Source) *Engine {
	return &Engine{
		round: round.New(entities.GameCoinFlip, wallet),
		src:   src,
	}
}

// Flip stakes the wager on pick and tosses the coin
func (e *Engine) Flip(ctx context.Context, wager int64, pick Side, tc entities.TimeContext) (*Flip, error) {
	if pick != Heads && pick != Tails {
		return nil, types.NewGameError(types.ErrInvalidArgument, fmt.Sprintf("unknown side %q", pick))
	}

	if err := e.round.Begin(ctx, wager); err != nil {
		return nil, err
	}

	landed := Land(e.src.Float64())

	var payout int64
	var narration string
	if landed == pick {
		payout = bonus.Payout(tc, wager, bonus.GameMultiplier(entities.GameCoinFlip, tc))
		narration = fmt.Sprintf("It's %s! You won $%d!", landed, payout)
	} else {
		narration = fmt.Sprintf("Hard luck. It landed on %s.", landed)
	}

	entry, err := e.round.Settle(ctx, payout, narration)
	if err != nil {
		return nil, err
	}

	return &Flip{Pick: pick, Landed: landed, Payout: payout, Narration: narration, Entry: entry}, nil
}
