// Package holdem implements a heads-up hold'em variant where the showdown
// compares only the single highest card each side can use.
package holdem

import (
	"context"
	"fmt"

	"github.com/fadedpez/neonroyal/pkg/bonus"
	"github.com/fadedpez/neonroyal/pkg/entities"
	"github.com/fadedpez/neonroyal/pkg/rng"
	"github.com/fadedpez/neonroyal/pkg/services/round"
)

type Stage string

const (
	StageIdle     Stage = "IDLE"
	StageHole     Stage = "HOLE"
	StageFlop     Stage = "FLOP"
	StageTurn     Stage = "TURN"
	StageRiver    Stage = "RIVER"
	StageShowdown Stage = "SHOWDOWN"
)

// community cards revealed when entering each stage
var reveals = map[Stage]int{
	StageFlop:  3,
	StageTurn:  1,
	StageRiver: 1,
}

var nextStage = map[Stage]Stage{
	StageHole:  StageFlop,
	StageFlop:  StageTurn,
	StageTurn:  StageRiver,
	StageRiver: StageShowdown,
}

// HighCard returns the highest ace-high rank value among cards
func HighCard(cards ...[]*entities.Card) int {
	best := 0
	for _, set := range cards {
		for _, c := range set {
			if v := c.HighValue(); v > best {
				best = v
			}
		}
	}
	return best
}

// Board is the table as the player sees it
type Board struct {
	Stage      Stage
	Player     []entities.Card
	Dealer     []entities.Card // hidden until showdown
	Community  []entities.Card
	PlayerHigh int
	DealerHigh int
	Payout     int64
	Outcome    entities.Outcome
	Narration  string
	Entry      *entities.HistoryEntry
}

type Engine struct {
	round *round.Round
	src   rng.Source

	stage     Stage
	deck      *entities.Deck
	player    []*entities.Card
	dealer    []*entities.Card
	community []*entities.Card
}

func NewEngine(wallet round.Wallet, src rng.Source) *Engine {
	return &Engine{
		round: round.New(entities.GameHoldem, wallet),
		src:   src,
		stage: StageIdle,
	}
}

// Deal stakes the wager and deals two hole cards to each side
func (e *Engine) Deal(ctx context.Context, wager int64) (*Board, error) {
	if err := e.round.Begin(ctx, wager); err != nil {
		return nil, err
	}

	e.deck = entities.NewShuffledDeck(e.src)
	e.player = []*entities.Card{e.deck.Draw(), e.deck.Draw()}
	e.dealer = []*entities.Card{e.deck.Draw(), e.deck.Draw()}
	e.community = make([]*entities.Card, 0, 5)
	e.stage = StageHole

	return e.board("Dealing Texas Hold'em hands..."), nil
}

// Advance reveals the next street, or settles at the showdown after the river
func (e *Engine) Advance(ctx context.Context, tc entities.TimeContext) (*Board, error) {
	if err := e.round.RequireInProgress("advance"); err != nil {
		return nil, err
	}

	next := nextStage[e.stage]
	if next == StageShowdown {
		return e.showdown(ctx, tc)
	}

	for i := 0; i < reveals[next]; i++ {
		e.community = append(e.community, e.deck.Draw())
	}
	e.stage = next

	return e.board(fmt.Sprintf("The %s is out.", next)), nil
}

// Stage returns the current street
func (e *Engine) Stage() Stage {
	return e.stage
}

func (e *Engine) InProgress() bool {
	return e.round.InProgress()
}

func (e *Engine) showdown(ctx context.Context, tc entities.TimeContext) (*Board, error) {
	wager := e.round.Wager()
	playerHigh := HighCard(e.player, e.community)
	dealerHigh := HighCard(e.dealer, e.community)

	var payout int64
	var narration string
	switch {
	case playerHigh > dealerHigh:
		payout = bonus.Payout(tc, wager, bonus.GameMultiplier(entities.GameHoldem, tc))
		narration = fmt.Sprintf("Player wins with High Card %d! Payout: $%d", playerHigh, payout)
	case playerHigh < dealerHigh:
		narration = fmt.Sprintf("Dealer wins with High Card %d. Better luck next time.", dealerHigh)
	default:
		payout = wager
		narration = "It's a push! Tie on high card."
	}

	entry, err := e.round.Settle(ctx, payout, narration)
	if err != nil {
		return nil, err
	}
	e.stage = StageShowdown

	board := e.board(narration)
	board.Dealer = copyCards(e.dealer)
	board.DealerHigh = dealerHigh
	board.Payout = payout
	board.Outcome = entities.ClassifyPayout(wager, payout)
	board.Entry = entry
	return board, nil
}

func (e *Engine) board(narration string) *Board {
	return &Board{
		Stage:      e.stage,
		Player:     copyCards(e.player),
		Community:  copyCards(e.community),
		PlayerHigh: HighCard(e.player, e.community),
		Narration:  narration,
	}
}

func copyCards(cards []*entities.Card) []entities.Card {
	out := make([]entities.Card, len(cards))
	for i, c := range cards {
		out[i] = *c
	}
	return out
}
