// Package hilo implements the higher-or-lower card game. Cards come from an
// infinite shoe and ties go to the player.
package hilo

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

type Guess string

const (
	Higher Guess = "HI"
	Lower  Guess = "LO"
)

// ParseGuess accepts HI/LO and the longer spellings
func ParseGuess(s string) (Guess, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HI", "HIGH", "HIGHER":
		return Higher, nil
	case "LO", "LOW", "LOWER":
		return Lower, nil
	}
	return "", types.NewGameError(types.ErrInvalidArgument, fmt.Sprintf("guess must be HI or LO, got %q", s))
}

// Wins reports whether guess is right for next against base. Equal ranks
// win either way.
func Wins(guess Guess, base, next *entities.Card) bool {
	if guess == Higher {
		return next.HighValue() >= base.HighValue()
	}
	return next.HighValue() <= base.HighValue()
}

// Hand is the state shown to the player
type Hand struct {
	Base      entities.Card
	Next      *entities.Card
	Guess     Guess
	Finished  bool
	Payout    int64
	Narration string
	Entry     *entities.HistoryEntry
}

type Engine struct {
	round *round.Round
	src   rng.Source
	base  *entities.Card
}

func NewEngine(wallet round.Wallet, src rng.Source) *Engine {
	return &Engine{
		round: round.New(entities.GameHiLo, wallet),
		src:   src,
	}
}

// Start stakes the wager and turns the base card
func (e *Engine) Start(ctx context.Context, wager int64) (*Hand, error) {
	if err := e.round.Begin(ctx, wager); err != nil {
		return nil, err
	}

	e.base = entities.RandomCard(e.src)
	return &Hand{
		Base:      *e.base,
		Narration: fmt.Sprintf("Base card is the %s. Higher or lower?", e.base),
	}, nil
}

// Guess turns the next card and settles
func (e *Engine) Guess(ctx context.Context, guess Guess, tc entities.TimeContext) (*Hand, error) {
	if guess != Higher && guess != Lower {
		return nil, types.NewGameError(types.ErrInvalidArgument, fmt.Sprintf("unknown guess %q", guess))
	}
	if err := e.round.RequireInProgress("guess"); err != nil {
		return nil, err
	}

	next := entities.RandomCard(e.src)

	var payout int64
	var narration string
	if Wins(guess, e.base, next) {
		payout = bonus.Payout(tc, e.round.Wager(), bonus.GameMultiplier(entities.GameHiLo, tc))
		narration = fmt.Sprintf("Correct! The %s was %s. You won $%d!", next, guess, payout)
	} else {
		narration = fmt.Sprintf("Wrong! The %s wasn't %s.", next, guess)
	}

	entry, err := e.round.Settle(ctx, payout, narration)
	if err != nil {
		return nil, err
	}

	return &Hand{
		Base:      *e.base,
		Next:      next,
		Guess:     guess,
		Finished:  true,
		Payout:    payout,
		Narration: narration,
		Entry:     entry,
	}, nil
}

// InProgress reports whether a base card is waiting for a guess
func (e *Engine) InProgress() bool {
	return e.round.InProgress()
}
