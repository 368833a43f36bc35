// Package console is a line-oriented front end for the casino floor
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fadedpez/neonroyal/internal/logging"
	"github.com/fadedpez/neonroyal/internal/types"
	"github.com/fadedpez/neonroyal/pkg/bonus"
	"github.com/fadedpez/neonroyal/pkg/catalog"
	"github.com/fadedpez/neonroyal/pkg/entities"
	"github.com/fadedpez/neonroyal/pkg/services/casino"
	"github.com/fadedpez/neonroyal/pkg/services/coinflip"
	"github.com/fadedpez/neonroyal/pkg/services/hilo"
	"github.com/fadedpez/neonroyal/pkg/services/ledger"
	"github.com/fadedpez/neonroyal/pkg/services/slots"
	"github.com/fadedpez/neonroyal/pkg/services/statistics"
)

// ErrQuit is returned by Execute for the quit command
var ErrQuit = errors.New("quit")

type handler func(ctx context.Context, args []string) (string, error)

// Console reads commands and writes responses. Announcements from the
// scheduler are written as they arrive.
type Console struct {
	floor    *casino.Floor
	stats    *statistics.Service
	logger   *logging.Logger
	out      io.Writer
	outMu    sync.Mutex
	handlers map[string]handler
}

// New creates a console over floor. It subscribes to the ledger for bonus
// announcements.
func New(floor *casino.Floor, stats *statistics.Service, out io.Writer, logger *logging.Logger) *Console {
	if logger == nil {
		logger = logging.Default
	}

	c := &Console{
		floor:  floor,
		stats:  stats,
		logger: logger,
		out:    out,
	}

	c.handlers = map[string]handler{
		"help":      c.handleHelp,
		"balance":   c.handleBalance,
		"bet":       c.handleBet,
		"bonus":     c.handleBonus,
		"slots":     c.handleSlots,
		"blackjack": c.handleBlackjack,
		"hit":       c.handleHit,
		"stand":     c.handleStand,
		"roulette":  c.handleRoulette,
		"hilo":      c.handleHiLo,
		"guess":     c.handleGuess,
		"flip":      c.handleFlip,
		"holdem":    c.handleHoldem,
		"next":      c.handleNext,
		"plinko":    c.handlePlinko,
		"daily":     c.handleDaily,
		"friday":    c.handleFriday,
		"shop":      c.handleShop,
		"buy":       c.handleBuy,
		"equip":     c.handleEquip,
		"history":   c.handleHistory,
		"stats":     c.handleStats,
		"reset":     c.handleReset,
	}

	floor.Ledger().Subscribe(c.announce)
	return c
}

func (c *Console) announce(ev ledger.Event) {
	if ev.Kind != ledger.EventBonusChanged {
		return
	}
	c.println("📣 " + ev.Narration)
}

func (c *Console) println(s string) {
	c.outMu.Lock()
	defer c.outMu.Unlock()
	fmt.Fprintln(c.out, s)
}

// Run reads commands from in until EOF, quit or ctx is done
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	c.println("Welcome to the table. Place your bets to begin. Type 'help' for commands.")

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}

			response, err := c.Execute(ctx, line)
			if errors.Is(err, ErrQuit) {
				c.println("See you next time.")
				return nil
			}
			if err != nil {
				c.println("✖ " + Describe(err))
				continue
			}
			if response != "" {
				c.println(response)
			}
		}
	}
}

// Execute runs one command line and returns the text to show
func (c *Console) Execute(ctx context.Context, line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}

	name := strings.ToLower(fields[0])
	if name == "quit" || name == "exit" {
		return "", ErrQuit
	}

	h, ok := c.handlers[name]
	if !ok {
		return "", types.NewGameError(types.ErrInvalidAction, fmt.Sprintf("unknown command %q, try 'help'", name))
	}

	c.logger.Debug("Executing command %s %v", name, fields[1:])
	return h(ctx, fields[1:])
}

// Describe turns an error into the message shown to the player
func Describe(err error) string {
	var gameErr *types.GameError
	if types.As(err, &gameErr) {
		return gameErr.Message
	}
	return err.Error()
}

func requireArg(args []string, usage string) (string, error) {
	if len(args) == 0 {
		return "", types.NewGameError(types.ErrInvalidArgument, "usage: "+usage)
	}
	return args[0], nil
}

func (c *Console) handleHelp(ctx context.Context, args []string) (string, error) {
	var b strings.Builder
	for _, cmd := range Commands {
		usage := cmd.Name
		if cmd.Usage != "" {
			usage += " " + cmd.Usage
		}
		fmt.Fprintf(&b, "  %-20s %s\n", usage, cmd.Description)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (c *Console) handleBalance(ctx context.Context, args []string) (string, error) {
	snap := c.floor.Ledger().Snapshot()

	theme, _ := catalog.Lookup(snap.EquippedTheme)
	line := fmt.Sprintf("Balance $%d | Bet $%d | Theme %s", snap.Balance, snap.CurrentBet, theme.Name)
	if acc, ok := catalog.Lookup(snap.EquippedAccessory); ok {
		line += fmt.Sprintf(" | %s %s", acc.Value, acc.Name)
	}
	if open := c.floor.Ledger().OpenWager(); open > 0 {
		line += fmt.Sprintf(" | $%d riding", open)
	}
	return line, nil
}

func (c *Console) handleBet(ctx context.Context, args []string) (string, error) {
	arg, err := requireArg(args, "bet <amount>")
	if err != nil {
		return "", err
	}
	amount, err := strconv.ParseInt(strings.TrimPrefix(arg, "$"), 10, 64)
	if err != nil {
		return "", types.WrapError(types.ErrInvalidArgument, fmt.Sprintf("%q is not an amount", arg), err)
	}
	if err := c.floor.Ledger().SetBet(ctx, amount); err != nil {
		return "", err
	}
	return fmt.Sprintf("Bet set to $%d.", amount), nil
}

func (c *Console) handleBonus(ctx context.Context, args []string) (string, error) {
	tc := c.floor.TimeContext()

	var b strings.Builder
	fmt.Fprintf(&b, "Today (%s, %02d:00): %s", tc.Weekday, tc.Hour, tc.ActiveBonus)
	if tc.IsGoldenHour {
		b.WriteString(" | Golden hour 1.5x")
	}
	if tc.IsGraveyard {
		b.WriteString(" | Graveyard shift")
	}
	for day, label := range bonus.Schedule() {
		marker := " "
		if day == int(tc.Weekday) {
			marker = "*"
		}
		fmt.Fprintf(&b, "\n %s %-9s %s", marker, time.Weekday(day), label)
	}
	return b.String(), nil
}

func (c *Console) handleSlots(ctx context.Context, args []string) (string, error) {
	spin, err := c.floor.SpinSlots(ctx)
	if err != nil {
		return "", err
	}

	icons := make([]string, 0, len(spin.Reels))
	for _, symbol := range spin.Reels {
		line, _ := slots.Lookup(symbol)
		icons = append(icons, line.Icon)
	}
	return fmt.Sprintf("[ %s ] %s", strings.Join(icons, " | "), spin.Narration), nil
}

func (c *Console) handleBlackjack(ctx context.Context, args []string) (string, error) {
	table, err := c.floor.DealBlackjack(ctx)
	if err != nil {
		return "", err
	}
	return renderTable(table), nil
}

func (c *Console) handleHit(ctx context.Context, args []string) (string, error) {
	table, err := c.floor.Hit(ctx)
	if err != nil {
		return "", err
	}
	return renderTable(table), nil
}

func (c *Console) handleStand(ctx context.Context, args []string) (string, error) {
	table, err := c.floor.Stand(ctx)
	if err != nil {
		return "", err
	}
	return renderTable(table), nil
}

func (c *Console) handleRoulette(ctx context.Context, args []string) (string, error) {
	arg, err := requireArg(args, "roulette <0-36>")
	if err != nil {
		return "", err
	}
	pick, err := strconv.Atoi(arg)
	if err != nil {
		return "", types.WrapError(types.ErrInvalidArgument, fmt.Sprintf("%q is not a number", arg), err)
	}

	spin, err := c.floor.SpinRoulette(ctx, pick)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d %s. %s", spin.Number, spin.Color, spin.Narration), nil
}

func (c *Console) handleHiLo(ctx context.Context, args []string) (string, error) {
	hand, err := c.floor.StartHiLo(ctx)
	if err != nil {
		return "", err
	}
	return hand.Narration, nil
}

func (c *Console) handleGuess(ctx context.Context, args []string) (string, error) {
	arg, err := requireArg(args, "guess <hi|lo>")
	if err != nil {
		return "", err
	}
	guess, err := hilo.ParseGuess(arg)
	if err != nil {
		return "", err
	}

	hand, err := c.floor.GuessHiLo(ctx, guess)
	if err != nil {
		return "", err
	}
	return hand.Narration, nil
}

func (c *Console) handleFlip(ctx context.Context, args []string) (string, error) {
	arg, err := requireArg(args, "flip <heads|tails>")
	if err != nil {
		return "", err
	}
	side, err := coinflip.ParseSide(arg)
	if err != nil {
		return "", err
	}

	flip, err := c.floor.FlipCoin(ctx, side)
	if err != nil {
		return "", err
	}
	return flip.Narration, nil
}

func (c *Console) handleHoldem(ctx context.Context, args []string) (string, error) {
	board, err := c.floor.DealHoldem(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("You: %s\n%s", renderCards(board.Player), board.Narration), nil
}

func (c *Console) handleNext(ctx context.Context, args []string) (string, error) {
	board, err := c.floor.AdvanceHoldem(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Board: %s\nYou: %s", renderCards(board.Community), renderCards(board.Player))
	if len(board.Dealer) > 0 {
		fmt.Fprintf(&b, "\nDealer: %s", renderCards(board.Dealer))
	}
	fmt.Fprintf(&b, "\n%s", board.Narration)
	return b.String(), nil
}

func (c *Console) handlePlinko(ctx context.Context, args []string) (string, error) {
	drop, err := c.floor.DropPlinko(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Bucket %d (%sx). %s", drop.Bucket+1, drop.Multiplier.String(), drop.Narration), nil
}

func (c *Console) handleDaily(ctx context.Context, args []string) (string, error) {
	claim, err := c.floor.Ledger().ClaimDailyBonus(ctx)
	if err != nil {
		return "", err
	}
	return claim.Narration, nil
}

func (c *Console) handleFriday(ctx context.Context, args []string) (string, error) {
	claim, err := c.floor.Ledger().ClaimWeeklyBonus(ctx)
	if err != nil {
		return "", err
	}
	return claim.Narration, nil
}

func (c *Console) handleShop(ctx context.Context, args []string) (string, error) {
	snap := c.floor.Ledger().Snapshot()

	var b strings.Builder
	for _, item := range catalog.Items() {
		status := fmt.Sprintf("$%d", item.Price)
		switch {
		case item.ID == snap.EquippedTheme || item.ID == snap.EquippedAccessory:
			status = "equipped"
		case snap.Owns(item.ID):
			status = "owned"
		}
		fmt.Fprintf(&b, "  %-14s %-18s %-9s %s\n", item.ID, item.Name, item.Kind, status)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (c *Console) handleBuy(ctx context.Context, args []string) (string, error) {
	arg, err := requireArg(args, "buy <item>")
	if err != nil {
		return "", err
	}
	id := entities.ItemID(arg)
	if err := c.floor.Ledger().PurchaseItem(ctx, id); err != nil {
		return "", err
	}
	item, _ := catalog.Lookup(id)
	return fmt.Sprintf("You purchased the %s!", item.Name), nil
}

func (c *Console) handleEquip(ctx context.Context, args []string) (string, error) {
	arg, err := requireArg(args, "equip <item>")
	if err != nil {
		return "", err
	}
	id := entities.ItemID(arg)
	if err := c.floor.Ledger().EquipItem(ctx, id); err != nil {
		return "", err
	}
	item, _ := catalog.Lookup(id)
	return fmt.Sprintf("Equipped %s.", item.Name), nil
}

func (c *Console) handleHistory(ctx context.Context, args []string) (string, error) {
	entries := c.floor.Ledger().Snapshot().History
	if len(entries) == 0 {
		return "No rounds played yet.", nil
	}
	if len(entries) > 10 {
		entries = entries[:10]
	}

	var b strings.Builder
	for _, entry := range entries {
		sign := " "
		switch entry.Outcome {
		case entities.OutcomeWin:
			sign = "+"
		case entities.OutcomeLoss:
			sign = "-"
		}
		fmt.Fprintf(&b, "  %s %-12s %-4s %s$%d\n", entry.Timestamp.Format("15:04"), entry.Game, entry.Outcome, sign, entry.Amount)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (c *Console) handleStats(ctx context.Context, args []string) (string, error) {
	board, err := c.stats.Board(ctx, entities.HistoryCap)
	if err != nil {
		return "", err
	}
	if len(board.Games) == 0 {
		return "No rounds played yet.", nil
	}

	var b strings.Builder
	for _, g := range board.Games {
		tags := ""
		if g.IsHotTable {
			tags += " 🔥"
		}
		if g.IsFavorite {
			tags += " ⭐"
		}
		fmt.Fprintf(&b, "  %d. %-12s %3d rounds  %3.0f%% wins  net %+d%s\n", g.Rank, g.Game, g.Rounds, g.WinRate*100, g.Net, tags)
	}

	digest, err := c.stats.RecentAction(ctx)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(&b, "Recent: %s", digest)
	return b.String(), nil
}

func (c *Console) handleReset(ctx context.Context, args []string) (string, error) {
	if err := c.floor.Ledger().Reset(ctx); err != nil {
		return "", err
	}
	return fmt.Sprintf("Fresh start! Balance reset to $%d.", c.floor.Ledger().Balance()), nil
}
