// Package roulette implements a single-zero wheel with straight-up bets.
package roulette

import (
	"context"
	"fmt"

	"github.com/fadedpez/neonroyal/internal/types"
	"github.com/fadedpez/neonroyal/pkg/bonus"
	"github.com/fadedpez/neonroyal/pkg/entities"
	"github.com/fadedpez/neonroyal/pkg/rng"
	"github.com/fadedpez/neonroyal/pkg/services/round"
)

const (
	MinNumber = 0
	MaxNumber = 36
)

// Wheel is the European pocket order, clockwise from zero
var Wheel = [37]int{
	0, 32, 15, 19, 4, 21, 2, 25, 17, 34, 6, 27, 13, 36, 11, 30, 8, 23, 10,
	5, 24, 16, 33, 1, 20, 14, 31, 9, 22, 18, 29, 7, 28, 12, 35, 3, 26,
}

var redNumbers = map[int]bool{
	32: true, 19: true, 21: true, 25: true, 34: true, 27: true, 36: true, 30: true, 23: true,
	5: true, 16: true, 1: true, 14: true, 9: true, 18: true, 7: true, 12: true, 3: true,
}

type Color string

const (
	Green Color = "GREEN"
	Red   Color = "RED"
	Black Color = "BLACK"
)

// ColorOf returns the pocket color of n
func ColorOf(n int) Color {
	switch {
	case n == 0:
		return Green
	case redNumbers[n]:
		return Red
	default:
		return Black
	}
}

// Spin is the outcome of one spin
type Spin struct {
	Pick      int
	Pocket    int // index into Wheel
	Number    int
	Color     Color
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
		round: round.New(entities.GameRoulette, wallet),
		src:   src,
	}
}

// Spin places a straight-up bet on pick and spins the wheel
func (e *Engine) Spin(ctx context.Context, wager int64, pick int, tc entities.TimeContext) (*Spin, error) {
	if pick < MinNumber || pick > MaxNumber {
		return nil, types.NewGameError(types.ErrInvalidArgument, fmt.Sprintf("roulette bets are on 0-36, got %d", pick))
	}

	if err := e.round.Begin(ctx, wager); err != nil {
		return nil, err
	}

	pocket := rng.Intn(e.src, len(Wheel))
	number := Wheel[pocket]
	color := ColorOf(number)

	var payout int64
	var narration string
	if number == pick {
		payout = bonus.Payout(tc, wager, bonus.GameMultiplier(entities.GameRoulette, tc))
		narration = fmt.Sprintf("UNBELIEVABLE! Number %d hit! You won $%d!", number, payout)
	} else {
		narration = fmt.Sprintf("The ball landed on %d %s. Hard luck.", number, color)
	}

	entry, err := e.round.Settle(ctx, payout, narration)
	if err != nil {
		return nil, err
	}

	return &Spin{
		Pick:      pick,
		Pocket:    pocket,
		Number:    number,
		Color:     color,
		Payout:    payout,
		Narration: narration,
		Entry:     entry,
	}, nil
}
