// Package casino is the player's entry point: one method per action, each
// resolving the current bonus state and staking the selected bet.
package casino

import (
	"context"
	"sync"

	"github.com/fadedpez/neonroyal/internal/logging"
	"github.com/fadedpez/neonroyal/pkg/bonus"
	"github.com/fadedpez/neonroyal/pkg/clock"
	"github.com/fadedpez/neonroyal/pkg/entities"
	"github.com/fadedpez/neonroyal/pkg/rng"
	"github.com/fadedpez/neonroyal/pkg/services/blackjack"
	"github.com/fadedpez/neonroyal/pkg/services/coinflip"
	"github.com/fadedpez/neonroyal/pkg/services/hilo"
	"github.com/fadedpez/neonroyal/pkg/services/holdem"
	"github.com/fadedpez/neonroyal/pkg/services/ledger"
	"github.com/fadedpez/neonroyal/pkg/services/plinko"
	"github.com/fadedpez/neonroyal/pkg/services/roulette"
	"github.com/fadedpez/neonroyal/pkg/services/slots"
)

// Floor owns one engine per game. Actions are serialized so no two rounds
// interleave.
type Floor struct {
	mu     sync.Mutex
	ledger *ledger.Service
	clock  clock.Clock
	logger *logging.Logger

	slots     *slots.Engine
	blackjack *blackjack.Game
	roulette  *roulette.Engine
	hilo      *hilo.Engine
	coinflip  *coinflip.Engine
	holdem    *holdem.Engine
	plinko    *plinko.Engine
}

type config struct {
	logger    *logging.Logger
	blackjack []blackjack.Option
}

// Option configures a Floor
type Option func(*config)

// WithLogger replaces the default logger
func WithLogger(l *logging.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithBlackjackOptions passes options through to the blackjack table
func WithBlackjackOptions(opts ...blackjack.Option) Option {
	return func(c *config) {
		c.blackjack = append(c.blackjack, opts...)
	}
}

// NewFloor builds every game on top of l, drawing from src
func NewFloor(l *ledger.Service, src rng.Source, clk clock.Clock, opts ...Option) *Floor {
	cfg := &config{logger: logging.Default}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Floor{
		ledger:    l,
		clock:     clk,
		logger:    cfg.logger,
		slots:     slots.NewEngine(l, src),
		blackjack: blackjack.NewGame(l, src, cfg.blackjack...),
		roulette:  roulette.NewEngine(l, src),
		hilo:      hilo.NewEngine(l, src),
		coinflip:  coinflip.NewEngine(l, src),
		holdem:    holdem.NewEngine(l, src),
		plinko:    plinko.NewEngine(l, src),
	}
}

// Ledger exposes the wallet behind the floor for rewards, the shop and reads
func (f *Floor) Ledger() *ledger.Service {
	return f.ledger
}

// TimeContext is the bonus state right now
func (f *Floor) TimeContext() entities.TimeContext {
	return bonus.Resolve(f.clock.Now())
}

// play runs one action under the floor lock with the current bonus state
// and stake. Rejections are logged and returned unchanged.
func play[T any](f *Floor, action string, fn func(tc entities.TimeContext, bet int64) (T, error)) (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	tc := f.TimeContext()
	result, err := fn(tc, f.ledger.CurrentBet())
	if err != nil {
		f.logger.Debug("%s rejected", action)
		f.logger.LogError(err)
	}
	return result, err
}

// SpinSlots spins the reels once
func (f *Floor) SpinSlots(ctx context.Context) (*slots.Spin, error) {
	return play(f, "slots spin", func(tc entities.TimeContext, bet int64) (*slots.Spin, error) {
		return f.slots.Spin(ctx, bet, tc)
	})
}

// DealBlackjack opens a blackjack hand
func (f *Floor) DealBlackjack(ctx context.Context) (*blackjack.Table, error) {
	return play(f, "blackjack deal", func(_ entities.TimeContext, bet int64) (*blackjack.Table, error) {
		return f.blackjack.Deal(ctx, bet)
	})
}

// Hit draws a card for the player
func (f *Floor) Hit(ctx context.Context) (*blackjack.Table, error) {
	return play(f, "blackjack hit", func(tc entities.TimeContext, _ int64) (*blackjack.Table, error) {
		return f.blackjack.Hit(ctx, tc)
	})
}

// Stand ends the player's turn and settles the hand
func (f *Floor) Stand(ctx context.Context) (*blackjack.Table, error) {
	return play(f, "blackjack stand", func(tc entities.TimeContext, _ int64) (*blackjack.Table, error) {
		return f.blackjack.Stand(ctx, tc)
	})
}

// SpinRoulette bets straight up on pick
func (f *Floor) SpinRoulette(ctx context.Context, pick int) (*roulette.Spin, error) {
	return play(f, "roulette spin", func(tc entities.TimeContext, bet int64) (*roulette.Spin, error) {
		return f.roulette.Spin(ctx, bet, pick, tc)
	})
}

// StartHiLo draws the base card
func (f *Floor) StartHiLo(ctx context.Context) (*hilo.Hand, error) {
	return play(f, "hi-lo start", func(_ entities.TimeContext, bet int64) (*hilo.Hand, error) {
		return f.hilo.Start(ctx, bet)
	})
}

// GuessHiLo resolves the open hi-lo hand
func (f *Floor) GuessHiLo(ctx context.Context, guess hilo.Guess) (*hilo.Hand, error) {
	return play(f, "hi-lo guess", func(tc entities.TimeContext, _ int64) (*hilo.Hand, error) {
		return f.hilo.Guess(ctx, guess, tc)
	})
}

// FlipCoin tosses once against pick
func (f *Floor) FlipCoin(ctx context.Context, pick coinflip.Side) (*coinflip.Flip, error) {
	return play(f, "coin flip", func(tc entities.TimeContext, bet int64) (*coinflip.Flip, error) {
		return f.coinflip.Flip(ctx, bet, pick, tc)
	})
}

// DealHoldem deals the hole cards
func (f *Floor) DealHoldem(ctx context.Context) (*holdem.Board, error) {
	return play(f, "hold'em deal", func(_ entities.TimeContext, bet int64) (*holdem.Board, error) {
		return f.holdem.Deal(ctx, bet)
	})
}

// AdvanceHoldem reveals the next street, or settles at the showdown
func (f *Floor) AdvanceHoldem(ctx context.Context) (*holdem.Board, error) {
	return play(f, "hold'em advance", func(tc entities.TimeContext, _ int64) (*holdem.Board, error) {
		return f.holdem.Advance(ctx, tc)
	})
}

// DropPlinko drops one ball
func (f *Floor) DropPlinko(ctx context.Context) (*plinko.Drop, error) {
	return play(f, "plinko drop", func(tc entities.TimeContext, bet int64) (*plinko.Drop, error) {
		return f.plinko.Drop(ctx, bet, tc)
	})
}

// Active lists the games with a round waiting on the player
func (f *Floor) Active() []entities.GameType {
	f.mu.Lock()
	defer f.mu.Unlock()

	var active []entities.GameType
	if f.blackjack.InProgress() {
		active = append(active, entities.GameBlackjack)
	}
	if f.hilo.InProgress() {
		active = append(active, entities.GameHiLo)
	}
	if f.holdem.InProgress() {
		active = append(active, entities.GameHoldem)
	}
	return active
}
