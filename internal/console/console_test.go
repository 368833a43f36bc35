package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fadedpez/neonroyal/internal/logging"
	"github.com/fadedpez/neonroyal/internal/types"
	"github.com/fadedpez/neonroyal/pkg/clock"
	"github.com/fadedpez/neonroyal/pkg/repositories/profile"
	"github.com/fadedpez/neonroyal/pkg/rng"
	"github.com/fadedpez/neonroyal/pkg/services/casino"
	"github.com/fadedpez/neonroyal/pkg/services/ledger"
	"github.com/fadedpez/neonroyal/pkg/services/statistics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ConsoleTestSuite struct {
	suite.Suite
	ctx     context.Context
	out     *bytes.Buffer
	clock   *clock.Fixed
	ledger  *ledger.Service
	console *Console
}

func TestConsoleSuite(t *testing.T) {
	suite.Run(t, new(ConsoleTestSuite))
}

func (s *ConsoleTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.out = &bytes.Buffer{}
	// Monday 3 March 2025, noon
	s.clock = clock.NewFixed(time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC))

	logger := logging.NewLoggerTo(&bytes.Buffer{}, logging.DEBUG)
	s.ledger = ledger.Open(s.ctx, profile.NewMemoryRepository(), s.clock, ledger.WithLogger(logger))
	floor := casino.NewFloor(s.ledger, rng.NewSequence(0.25), s.clock, casino.WithLogger(logger))
	s.console = New(floor, statistics.NewService(s.ledger), s.out, logger)
}

func (s *ConsoleTestSuite) exec(line string) string {
	out, err := s.console.Execute(s.ctx, line)
	s.Require().NoError(err, line)
	return out
}

func (s *ConsoleTestSuite) TestCommandsAreUniqueAndHandled() {
	seen := make(map[string]bool)
	for _, cmd := range Commands {
		s.NotEmpty(cmd.Description)
		s.False(seen[cmd.Name], "duplicate command %s", cmd.Name)
		seen[cmd.Name] = true
		if cmd.Name != "quit" {
			s.Contains(s.console.handlers, cmd.Name)
		}
	}
	s.Len(s.console.handlers, len(Commands)-1)
}

func (s *ConsoleTestSuite) TestHelp() {
	out := s.exec("help")
	s.Contains(out, "roulette <0-36>")
	s.Contains(out, "Claim Friday Fortune")
}

func (s *ConsoleTestSuite) TestBalanceAndBet() {
	s.Equal("Balance $1000 | Bet $10 | Theme Royal Gold", s.exec("balance"))
	s.Equal("Bet set to $25.", s.exec("bet $25"))
	s.Equal(int64(25), s.ledger.CurrentBet())

	_, err := s.console.Execute(s.ctx, "bet 30")
	s.True(types.IsGameError(err, types.ErrInvalidArgument))
	_, err = s.console.Execute(s.ctx, "bet lots")
	s.True(types.IsGameError(err, types.ErrInvalidArgument))
	_, err = s.console.Execute(s.ctx, "bet")
	s.True(types.IsGameError(err, types.ErrInvalidArgument))
}

func (s *ConsoleTestSuite) TestCoinFlipLoses() {
	out := s.exec("flip heads")
	s.Contains(out, "TAILS")
	s.Equal(int64(990), s.ledger.Balance())

	history := s.exec("history")
	s.Contains(history, "COIN_FLIP")
	s.Contains(history, "-$10")
}

func (s *ConsoleTestSuite) TestBlackjackHidesHoleCard() {
	out := s.exec("blackjack")
	s.Contains(out, "??")
	s.Contains(out, "Hit or Stand?")
	s.Contains(s.exec("balance"), "$10 riding")

	out = s.exec("stand")
	s.NotContains(out, "??")
	s.Empty(s.ledger.OpenWager())
}

func (s *ConsoleTestSuite) TestShopFlow() {
	_, err := s.console.Execute(s.ctx, "buy theme_solar")
	s.True(types.IsGameError(err, types.ErrInsufficientFunds))
	s.Equal("Solar Flare costs $10000, balance is $1000", Describe(err))

	s.Equal("You purchased the Lucky Dice!", s.exec("buy acc_dice"))
	s.Contains(s.exec("balance"), "🎲 Lucky Dice")
	s.Contains(s.exec("shop"), "equipped")

	_, err = s.console.Execute(s.ctx, "equip theme_pink")
	s.True(types.IsGameError(err, types.ErrNotOwned))
	s.Equal("Equipped Royal Gold.", s.exec("equip theme_default"))
}

func (s *ConsoleTestSuite) TestRewards() {
	s.Equal("Monday reward claimed! $300 added to balance.", s.exec("daily"))
	_, err := s.console.Execute(s.ctx, "daily")
	s.True(types.IsGameError(err, types.ErrTooSoon))

	_, err = s.console.Execute(s.ctx, "friday")
	s.True(types.IsGameError(err, types.ErrNotEligible))
}

func (s *ConsoleTestSuite) TestBonusCalendar() {
	out := s.exec("bonus")
	s.Contains(out, "Today (Monday, 12:00): 3x Daily Bonus ($300)")
	s.Contains(out, "* Monday")
	s.Contains(out, "Friday")
}

func (s *ConsoleTestSuite) TestStats() {
	s.Equal("No rounds played yet.", s.exec("stats"))
	s.exec("flip heads")
	out := s.exec("stats")
	s.Contains(out, "COIN_FLIP")
	s.Contains(out, "Recent: COIN_FLIP: LOSS ($10)")
}

func (s *ConsoleTestSuite) TestUnknownCommand() {
	_, err := s.console.Execute(s.ctx, "craps")
	s.True(types.IsGameError(err, types.ErrInvalidAction))

	out, err := s.console.Execute(s.ctx, "   ")
	s.NoError(err)
	s.Empty(out)
}

func (s *ConsoleTestSuite) TestRoulette() {
	_, err := s.console.Execute(s.ctx, "roulette 37")
	s.True(types.IsGameError(err, types.ErrInvalidArgument))
	s.Equal(int64(1000), s.ledger.Balance())

	out := s.exec("roulette 0")
	s.NotEmpty(out)
}

func (s *ConsoleTestSuite) TestReset() {
	s.exec("flip tails")
	s.Equal("Fresh start! Balance reset to $1000.", s.exec("reset"))
	s.Equal("No rounds played yet.", s.exec("history"))
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewFixed(time.Date(2025, time.March, 7, 17, 0, 0, 0, time.UTC))
	logger := logging.NewLoggerTo(&bytes.Buffer{}, logging.INFO)
	l := ledger.Open(ctx, profile.NewMemoryRepository(), clk, ledger.WithLogger(logger))
	floor := casino.NewFloor(l, rng.NewSequence(0.75), clk, casino.WithLogger(logger))

	out := &bytes.Buffer{}
	c := New(floor, statistics.NewService(l), out, logger)

	l.Publish(ledger.Event{Kind: ledger.EventBonusChanged, Narration: "Friday special: $500 Friday Fortune."})

	in := strings.NewReader("friday\nflip heads\nhit\nquit\nbalance\n")
	require.NoError(t, c.Run(ctx, in))

	text := out.String()
	assert.Contains(t, text, "📣 Friday special")
	assert.Contains(t, text, "Fortune Friday! $500 added to your account.")
	assert.Contains(t, text, "It's HEADS!")
	assert.Contains(t, text, "✖ cannot hit")
	assert.Contains(t, text, "See you next time.")
	assert.NotContains(t, text, "Balance $", "commands after quit are not run")
}
