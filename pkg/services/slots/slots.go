// Package slots implements the three-reel slot machine.
package slots

import (
	"context"
	"fmt"

	"github.com/fadedpez/neonroyal/pkg/bonus"
	"github.com/fadedpez/neonroyal/pkg/entities"
	"github.com/fadedpez/neonroyal/pkg/rng"
	"github.com/fadedpez/neonroyal/pkg/services/round"
	"github.com/shopspring/decimal"
)

const Reels = 3

// Symbol is one face on a reel
type Symbol string

const (
	Cherry  Symbol = "CHERRY"
	Lemon   Symbol = "LEMON"
	Grapes  Symbol = "GRAPES"
	Bell    Symbol = "BELL"
	Diamond Symbol = "DIAMOND"
	Seven   Symbol = "SEVEN"
)

// PayLine is a symbol's three-of-a-kind multiplier and its reel weight
type PayLine struct {
	Symbol     Symbol
	Icon       string
	Multiplier int64
	Weight     int
}

// Paytable is ordered from most to least common
var Paytable = []PayLine{
	{Cherry, "🍒", 2, 30},
	{Lemon, "🍋", 5, 25},
	{Grapes, "🍇", 10, 20},
	{Bell, "🔔", 20, 12},
	{Diamond, "💎", 50, 8},
	{Seven, "7️⃣", 100, 5},
}

var pairMultiplier = decimal.RequireFromString("1.5")

var weights = func() []int {
	w := make([]int, len(Paytable))
	for i, line := range Paytable {
		w[i] = line.Weight
	}
	return w
}()

// Spin is the outcome of one pull
type Spin struct {
	Reels     [Reels]Symbol
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
		round: round.New(entities.GameSlots, wallet),
		src:   src,
	}
}

// Spin wagers, draws three reels and settles
func (e *Engine) Spin(ctx context.Context, wager int64, tc entities.TimeContext) (*Spin, error) {
	if err := e.round.Begin(ctx, wager); err != nil {
		return nil, err
	}

	var reels [Reels]Symbol
	for i := range reels {
		reels[i] = Paytable[rng.Weighted(e.src, weights)].Symbol
	}

	payout, narration := Evaluate(reels, wager, tc)
	entry, err := e.round.Settle(ctx, payout, narration)
	if err != nil {
		return nil, err
	}

	return &Spin{Reels: reels, Payout: payout, Narration: narration, Entry: entry}, nil
}

// Evaluate prices a set of reels. Three of a kind pays the symbol's
// multiplier, any pair pays 1.5x, the slots day rate scales both.
func Evaluate(reels [Reels]Symbol, wager int64, tc entities.TimeContext) (int64, string) {
	dayRate := bonus.GameMultiplier(entities.GameSlots, tc)

	if reels[0] == reels[1] && reels[1] == reels[2] {
		line, _ := Lookup(reels[0])
		payout := bonus.Payout(tc, wager, decimal.NewFromInt(line.Multiplier).Mul(dayRate))
		return payout, fmt.Sprintf("JACKPOT! Three %s in a row for $%d!", line.Icon, payout)
	}

	if reels[0] == reels[1] || reels[1] == reels[2] || reels[0] == reels[2] {
		payout := bonus.Payout(tc, wager, pairMultiplier.Mul(dayRate))
		return payout, fmt.Sprintf("Matched two! Won $%d.", payout)
	}

	return 0, "No luck this time."
}

// Lookup finds a symbol's pay line
func Lookup(symbol Symbol) (PayLine, bool) {
	for _, line := range Paytable {
		if line.Symbol == symbol {
			return line, true
		}
	}
	return PayLine{}, false
}

// InProgress reports whether a spin is mid-settlement
func (e *Engine) InProgress() bool {
	return e.round.InProgress()
}
