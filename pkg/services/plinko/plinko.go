// Package plinko implements the peg board drop: a left/right random walk
// bucketed into a U-shaped multiplier table.
package plinko

import (
	"context"
	"fmt"

	"github.com/fadedpez/neonroyal/pkg/bonus"
	"github.com/fadedpez/neonroyal/pkg/entities"
	"github.com/fadedpez/neonroyal/pkg/rng"
	"github.com/fadedpez/neonroyal/pkg/services/round"
	"github.com/shopspring/decimal"
)

const (
	Rows   = 7
	StartX = 50
	Step   = 5
)

// Buckets are the landing multipliers, left to right
var Buckets = []decimal.Decimal{
	decimal.NewFromInt(5),
	decimal.NewFromInt(2),
	decimal.RequireFromString("0.5"),
	decimal.RequireFromString("0.2"),
	decimal.RequireFromString("0.2"),
	decimal.RequireFromString("0.5"),
	decimal.NewFromInt(2),
	decimal.NewFromInt(5),
}

const (
	minX = StartX - Rows*Step
	maxX = StartX + Rows*Step
)

// Bucket maps a final x position onto an index into Buckets
func Bucket(x int) int {
	idx := (x - minX) * len(Buckets) / (maxX - minX)
	if idx < 0 {
		return 0
	}
	if idx >= len(Buckets) {
		return len(Buckets) - 1
	}
	return idx
}

// Drop is the outcome of one ball
type Drop struct {
	Path       []int // x after each row, starting at StartX
	Bucket     int
	Multiplier decimal.Decimal
	Payout     int64
	Narration  string
	Entry      *entities.HistoryEntry
}

type Engine struct {
	round *round.Round
	src   rng.Source
}

func NewEngine(wallet round.Wallet, src rng.Source) *Engine {
	return &Engine{
		round: round.New(entities.GamePlinko, wallet),
		src:   src,
	}
}

// Drop stakes the wager and lets the ball fall through every row
func (e *Engine) Drop(ctx context.Context, wager int64, tc entities.TimeContext) (*Drop, error) {
	if err := e.round.Begin(ctx, wager); err != nil {
		return nil, err
	}

	x := StartX
	path := make([]int, 0, Rows+1)
	path = append(path, x)
	for row := 0; row < Rows; row++ {
		if rng.Chance(e.src, 0.5) {
			x -= Step
		} else {
			x += Step
		}
		path = append(path, x)
	}

	bucket := Bucket(x)
	multiplier := Buckets[bucket]
	payout := bonus.Payout(tc, wager, multiplier)
	narration := fmt.Sprintf("Ball landed in %sx slot! Won $%d.", multiplier, payout)

	entry, err := e.round.Settle(ctx, payout, narration)
	if err != nil {
		return nil, err
	}

	return &Drop{
		Path:       path,
		Bucket:     bucket,
		Multiplier: multiplier,
		Payout:     payout,
		Narration:  narration,
		Entry:      entry,
	}, nil
}
