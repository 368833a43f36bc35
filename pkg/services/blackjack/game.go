// Package blackjack implements single-player blackjack against a dealer who
// stands on 17.
package blackjack

import (
	"context"
	"fmt"

	"github.com/fadedpez/neonroyal/internal/types"
	"github.com/fadedpez/neonroyal/pkg/bonus"
	"github.com/fadedpez/neonroyal/pkg/entities"
	"github.com/fadedpez/neonroyal/pkg/rng"
	"github.com/fadedpez/neonroyal/pkg/services/round"
)

// DeckFactory builds the deck for a new hand
type DeckFactory func(src rng.Source) *entities.Deck

// Table is what the caller sees after each action. While the hand is live
// the dealer's second card stays face down.
type Table struct {
	Player      []entities.Card
	Dealer      []entities.Card
	PlayerScore int
	DealerScore int
	HoleHidden  bool
	Finished    bool
	Outcome     entities.Outcome
	Payout      int64
	Narration   string
	Entry       *entities.HistoryEntry
}

type Game struct {
	round   *round.Round
	src     rng.Source
	newDeck DeckFactory

	deck   *entities.Deck
	player *Hand
	dealer *Hand
	last   *Table
}

type Option func(*Game)

// WithDeckFactory replaces the shuffled 52 card deck, mostly so tests can
// stack the deck
func WithDeckFactory(factory DeckFactory) Option {
	return func(g *Game) {
		g.newDeck = factory
	}
}

func NewGame(wallet round.Wallet, src rng.Source, opts ...Option) *Game {
	g := &Game{
		round:   round.New(entities.GameBlackjack, wallet),
		src:     src,
		newDeck: entities.NewShuffledDeck,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Deal takes the wager and deals player, dealer, player, dealer
func (g *Game) Deal(ctx context.Context, wager int64) (*Table, error) {
	if err := g.round.Begin(ctx, wager); err != nil {
		return nil, err
	}

	g.deck = g.newDeck(g.src)
	g.player = NewHand()
	g.dealer = NewHand()

	for i := 0; i < 2; i++ {
		g.player.AddCard(g.draw())
		g.dealer.AddCard(g.draw())
	}

	return g.snapshot("Hit or Stand?"), nil
}

// Hit gives the player one card. Going over 21 ends the round as a loss.
func (g *Game) Hit(ctx context.Context, tc entities.TimeContext) (*Table, error) {
	if err := g.round.RequireInProgress("hit"); err != nil {
		return nil, err
	}
	if g.player.Status != StatusPlaying {
		return nil, types.NewGameError(types.ErrInvalidAction, "hand is over, stand to settle")
	}

	if err := g.player.AddCard(g.draw()); err != nil {
		return nil, types.WrapError(types.ErrInvalidAction, "cannot hit", err)
	}

	if g.player.Status == StatusBust {
		return g.finish(ctx, tc)
	}
	return g.snapshot(fmt.Sprintf("You have %d. Hit or Stand?", g.player.Value())), nil
}

// Stand plays out the dealer and settles. If a previous settle failed the
// finished hand is settled again without dealing more cards.
func (g *Game) Stand(ctx context.Context, tc entities.TimeContext) (*Table, error) {
	if err := g.round.RequireInProgress("stand"); err != nil {
		return nil, err
	}

	// a hand that is already over only needs settling again
	if g.player.Status == StatusPlaying {
		if err := g.player.Stand(); err != nil {
			return nil, types.WrapError(types.ErrInvalidAction, "cannot stand", err)
		}
		for DealerShouldDraw(g.dealer.Cards) {
			if err := g.dealer.AddCard(g.draw()); err != nil {
				return nil, types.WrapError(types.ErrInvalidAction, "dealer cannot draw", err)
			}
		}
	}

	return g.finish(ctx, tc)
}

// Current returns the last table shown, or nil before the first deal
func (g *Game) Current() *Table {
	return g.last
}

// InProgress reports whether a hand is being played
func (g *Game) InProgress() bool {
	return g.round.InProgress()
}

func (g *Game) finish(ctx context.Context, tc entities.TimeContext) (*Table, error) {
	wager := g.round.Wager()
	playerScore := g.player.Value()
	dealerScore := g.dealer.Value()

	var payout int64
	var narration string
	switch {
	case g.player.Status == StatusBust:
		narration = "Bust! Dealer takes the pot."
	case CompareHands(g.player.Cards, g.dealer.Cards) > 0:
		payout = bonus.Payout(tc, wager, bonus.GameMultiplier(entities.GameBlackjack, tc))
		if IsBust(g.dealer.Cards) {
			narration = fmt.Sprintf("Dealer busts with %d! You win $%d.", dealerScore, payout)
		} else {
			narration = fmt.Sprintf("Win! %d beats %d. You win $%d.", playerScore, dealerScore, payout)
		}
	case CompareHands(g.player.Cards, g.dealer.Cards) < 0:
		narration = fmt.Sprintf("Dealer wins with %d.", dealerScore)
	default:
		payout = wager
		narration = fmt.Sprintf("Draw at %d. Bet returned.", playerScore)
	}

	entry, err := g.round.Settle(ctx, payout, narration)
	if err != nil {
		return nil, err
	}

	table := g.snapshot(narration)
	table.Finished = true
	table.HoleHidden = false
	table.DealerScore = dealerScore
	table.Outcome = entities.ClassifyPayout(wager, payout)
	table.Payout = payout
	table.Entry = entry
	g.last = table
	return table, nil
}

func (g *Game) draw() *entities.Card {
	card := g.deck.Draw()
	if card == nil {
		// Only reachable with a short stacked deck
		g.deck = entities.NewShuffledDeck(g.src)
		card = g.deck.Draw()
	}
	return card
}

func (g *Game) snapshot(narration string) *Table {
	table := &Table{
		Player:      g.player.Copy(),
		Dealer:      g.dealer.Copy(),
		PlayerScore: g.player.Value(),
		HoleHidden:  true,
		Narration:   narration,
	}
	if len(g.dealer.Cards) > 0 {
		table.DealerScore = CalculateScore(g.dealer.Cards[:1])
	}
	g.last = table
	return table
}
