// Package ledger owns the player's balance, history, cosmetics and reward
// cooldowns. Every change goes through a Service method, is saved through the
// profile repository and then announced to listeners.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fadedpez/neonroyal/internal/logging"
	"github.com/fadedpez/neonroyal/internal/types"
	"github.com/fadedpez/neonroyal/pkg/bonus"
	"github.com/fadedpez/neonroyal/pkg/catalog"
	"github.com/fadedpez/neonroyal/pkg/clock"
	"github.com/fadedpez/neonroyal/pkg/entities"
	"github.com/fadedpez/neonroyal/pkg/repositories/archive"
	"github.com/fadedpez/neonroyal/pkg/repositories/profile"
	"github.com/google/uuid"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNonPositive       = errors.New("amount must be positive")
)

// Service handles ledger business logic
type Service struct {
	mu        sync.Mutex
	state     *entities.PlayerLedger
	openWager int64

	repo     profile.Repository
	archive  archive.Archive
	archived bool
	clock    clock.Clock
	logger   *logging.Logger
	newID    func() string

	listenersMu sync.RWMutex
	listeners   []Listener
}

// Option configures a Service
type Option func(*Service)

// WithArchive records every settled round in a
func WithArchive(a archive.Archive) Option {
	return func(s *Service) {
		s.archive = a
		s.archived = true
	}
}

// WithLogger replaces the default logger
func WithLogger(l *logging.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithIDGenerator replaces the uuid generator for history entry ids
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		s.newID = fn
	}
}

// Open loads the profile from repo. Absent, unreadable or invalid data is
// replaced by a fresh default ledger; Open itself never fails.
func Open(ctx context.Context, repo profile.Repository, clk clock.Clock, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		archive: archive.Nop{},
		clock:   clk,
		logger:  logging.Default,
		newID:   func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}

	s.state = s.load(ctx)
	return s
}

func (s *Service) load(ctx context.Context) *entities.PlayerLedger {
	state, err := s.repo.Load(ctx)
	switch {
	case errors.Is(err, profile.ErrProfileNotFound):
		s.logger.Info("No saved profile, starting with $%d", entities.InitialBalance)
		return entities.NewPlayerLedger()
	case err != nil:
		s.logger.LogError(types.WrapError(types.ErrCorruptState, "saved profile could not be loaded, starting fresh", err))
		return entities.NewPlayerLedger()
	}

	if err := state.Validate(catalog.KindOf); err != nil {
		s.logger.LogError(types.WrapError(types.ErrCorruptState, "saved profile is invalid, starting fresh", err))
		return entities.NewPlayerLedger()
	}

	s.logger.Info("Loaded profile: balance=$%d, bet=$%d, %d rounds in history", state.Balance, state.CurrentBet, len(state.History))
	return state
}

// save writes the current state. It must be called with s.mu held. A failed
// save is logged and the in-memory state stays authoritative.
func (s *Service) save(ctx context.Context) {
	if err := s.repo.Save(ctx, s.state); err != nil {
		s.logger.LogError(types.WrapError(types.ErrStorageError, "failed to save profile", err))
	}
}

// Save flushes the current state and reports any failure
func (s *Service) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Save(ctx, s.state); err != nil {
		return types.WrapError(types.ErrStorageError, "failed to save profile", err)
	}
	return nil
}

// event builds an event stamped with the current balance. It must be called
// with s.mu held.
func (s *Service) event(kind EventKind, narration string, at time.Time) Event {
	return Event{
		Kind:      kind,
		Narration: narration,
		Balance:   s.state.Balance,
		At:        at,
	}
}

// PlaceWager debits amount and opens a round. Only one wager may be open at
// a time across all games.
func (s *Service) PlaceWager(ctx context.Context, amount int64) error {
	s.mu.Lock()

	if amount <= 0 {
		s.mu.Unlock()
		return types.WrapError(types.ErrInvalidArgument, fmt.Sprintf("wager must be positive, got %d", amount), ErrNonPositive)
	}
	if s.openWager > 0 {
		s.mu.Unlock()
		return types.NewGameError(types.ErrRoundInProgress, fmt.Sprintf("a $%d wager is already riding", s.openWager))
	}
	if amount > s.state.Balance {
		s.mu.Unlock()
		return types.WrapError(types.ErrInsufficientFunds,
			fmt.Sprintf("wager of $%d exceeds balance of $%d", amount, s.state.Balance), ErrInsufficientFunds)
	}

	s.state.Balance -= amount
	s.openWager = amount
	s.logger.Debug("Wager placed: $%d, balance now $%d", amount, s.state.Balance)
	s.save(ctx)

	ev := s.event(EventWagerPlaced, fmt.Sprintf("$%d on the table.", amount), s.clock.Now())
	s.mu.Unlock()

	s.Publish(ev)
	return nil
}

// SettleRound credits payout against the open wager and records the round.
// The entry amount is the magnitude of the net change.
func (s *Service) SettleRound(ctx context.Context, game entities.GameType, payout int64, narration string) (*entities.HistoryEntry, error) {
	s.mu.Lock()

	if payout < 0 {
		s.mu.Unlock()
		return nil, types.NewGameError(types.ErrInvalidArgument, fmt.Sprintf("payout cannot be negative, got %d", payout))
	}
	if s.openWager == 0 {
		s.mu.Unlock()
		return nil, types.NewGameError(types.ErrNoRoundInProgress, "no wager to settle")
	}

	wager := s.openWager
	net := payout - wager
	if net < 0 {
		net = -net
	}

	now := s.clock.Now()
	entry := entities.HistoryEntry{
		ID:        s.newID(),
		Game:      game,
		Amount:    net,
		Outcome:   entities.ClassifyPayout(wager, payout),
		Narration: narration,
		Timestamp: now,
	}

	s.state.Balance += payout
	s.state.PushHistory(entry)
	s.openWager = 0
	s.logger.Info("[%s] %s $%d (wager $%d, payout $%d), balance $%d", game, entry.Outcome, net, wager, payout, s.state.Balance)
	s.save(ctx)

	ev := s.event(EventRoundSettled, narration, now)
	ev.Entry = &entry
	s.mu.Unlock()

	if err := s.archive.Record(ctx, &entry); err != nil {
		s.logger.Warn("Failed to archive round %s: %v", entry.ID, err)
	}

	s.Publish(ev)
	return &entry, nil
}

// Claim is the result of a bonus claim
type Claim struct {
	Amount    int64
	Balance   int64
	Narration string
}

// ClaimDailyBonus credits the daily check-in if strictly more than 24 hours
// have passed since the last claim
func (s *Service) ClaimDailyBonus(ctx context.Context) (*Claim, error) {
	s.mu.Lock()

	now := s.clock.Now()
	if elapsed := now.Sub(s.state.LastDailyClaim); elapsed <= bonus.DailyCooldown {
		s.mu.Unlock()
		wait := (bonus.DailyCooldown - elapsed).Truncate(time.Minute)
		return nil, types.NewGameError(types.ErrTooSoon, fmt.Sprintf("daily bonus available again in %s", wait))
	}

	amount := bonus.DailyBonus(bonus.Resolve(now))
	s.state.Balance += amount
	s.state.LastDailyClaim = now
	s.save(ctx)

	ev := s.event(EventBonusClaimed, fmt.Sprintf("%s reward claimed! $%d added to balance.", now.Weekday(), amount), now)
	s.mu.Unlock()

	s.Publish(ev)
	return &Claim{Amount: amount, Balance: ev.Balance, Narration: ev.Narration}, nil
}

// ClaimWeeklyBonus credits Friday Fortune. It is only offered on Friday and
// at most once every seven days.
func (s *Service) ClaimWeeklyBonus(ctx context.Context) (*Claim, error) {
	s.mu.Lock()

	now := s.clock.Now()
	if now.Weekday() != bonus.WeeklyBonusDay {
		s.mu.Unlock()
		return nil, types.NewGameError(types.ErrNotEligible, fmt.Sprintf("Friday Fortune is only paid on %s", bonus.WeeklyBonusDay))
	}
	if now.Sub(s.state.LastWeeklyClaim) <= bonus.WeeklyCooldown {
		s.mu.Unlock()
		return nil, types.NewGameError(types.ErrNotEligible, "Friday Fortune already claimed this week")
	}

	amount := bonus.WeeklyBonusAmount
	s.state.Balance += amount
	s.state.LastWeeklyClaim = now
	s.save(ctx)

	ev := s.event(EventBonusClaimed, fmt.Sprintf("Fortune Friday! $%d added to your account.", amount), now)
	s.mu.Unlock()

	s.Publish(ev)
	return &Claim{Amount: amount, Balance: ev.Balance, Narration: ev.Narration}, nil
}

// equip puts item in its slot. It must be called with s.mu held.
func (s *Service) equip(item entities.ShopItem) {
	switch item.Kind {
	case entities.KindTheme:
		s.state.EquippedTheme = item.ID
	case entities.KindAccessory:
		s.state.EquippedAccessory = item.ID
	}
}

// PurchaseItem buys id from the catalog and equips it in its slot
func (s *Service) PurchaseItem(ctx context.Context, id entities.ItemID) error {
	item, ok := catalog.Lookup(id)
	if !ok {
		return types.NewGameError(types.ErrNotFound, fmt.Sprintf("no shop item %q", id))
	}

	s.mu.Lock()

	if s.state.Owns(id) {
		s.mu.Unlock()
		return types.NewGameError(types.ErrAlreadyOwned, fmt.Sprintf("%s is already in your collection", item.Name))
	}
	if item.Price > s.state.Balance {
		s.mu.Unlock()
		return types.WrapError(types.ErrInsufficientFunds,
			fmt.Sprintf("%s costs $%d, balance is $%d", item.Name, item.Price, s.state.Balance), ErrInsufficientFunds)
	}

	s.state.Balance -= item.Price
	s.state.OwnedItems = append(s.state.OwnedItems, id)
	s.equip(item)
	s.logger.Info("Purchased %s for $%d", item.ID, item.Price)
	s.save(ctx)

	ev := s.event(EventItemPurchased, fmt.Sprintf("You purchased the %s!", item.Name), s.clock.Now())
	s.mu.Unlock()

	s.Publish(ev)
	return nil
}

// EquipItem moves an owned item into its slot; the other slot is untouched
func (s *Service) EquipItem(ctx context.Context, id entities.ItemID) error {
	item, ok := catalog.Lookup(id)
	if !ok {
		return types.NewGameError(types.ErrNotFound, fmt.Sprintf("no shop item %q", id))
	}

	s.mu.Lock()

	if !s.state.Owns(id) {
		s.mu.Unlock()
		return types.NewGameError(types.ErrNotOwned, fmt.Sprintf("you do not own %s", item.Name))
	}

	s.equip(item)
	s.save(ctx)

	ev := s.event(EventItemEquipped, fmt.Sprintf("Equipped %s.", item.Name), s.clock.Now())
	s.mu.Unlock()

	s.Publish(ev)
	return nil
}

// SetBet selects the stake for subsequent rounds. It must be one of the
// table stakes; affordability is checked when the wager is placed.
func (s *Service) SetBet(ctx context.Context, amount int64) error {
	valid := false
	for _, stake := range entities.TableStakes {
		if amount == stake {
			valid = true
			break
		}
	}
	if !valid {
		return types.NewGameError(types.ErrInvalidArgument, fmt.Sprintf("$%d is not a table stake (choose from %v)", amount, entities.TableStakes))
	}

	s.mu.Lock()
	s.state.CurrentBet = amount
	s.save(ctx)
	ev := s.event(EventBetChanged, fmt.Sprintf("Bet set to $%d.", amount), s.clock.Now())
	s.mu.Unlock()

	s.Publish(ev)
	return nil
}

// Reset wipes the profile back to a new player's state. It is refused while
// a wager is open.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()

	if s.openWager > 0 {
		s.mu.Unlock()
		return types.NewGameError(types.ErrRoundInProgress, "finish the current round before resetting")
	}

	s.state = entities.NewPlayerLedger()
	s.logger.Info("Profile reset to defaults")
	s.save(ctx)

	ev := s.event(EventLedgerReset, fmt.Sprintf("Fresh start! Balance reset to $%d.", s.state.Balance), s.clock.Now())
	s.mu.Unlock()

	s.Publish(ev)
	return nil
}

// Snapshot returns a deep copy of the ledger
func (s *Service) Snapshot() entities.PlayerLedger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.state.Clone()
}

// Balance returns the current balance
func (s *Service) Balance() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Balance
}

// CurrentBet returns the selected stake
func (s *Service) CurrentBet() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CurrentBet
}

// OpenWager returns the stake of the open round, or 0
func (s *Service) OpenWager() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openWager
}

// RecentRounds returns up to limit archived rounds, newest first. Without an
// archive it falls back to the bounded in-ledger history.
func (s *Service) RecentRounds(ctx context.Context, limit int) ([]entities.HistoryEntry, error) {
	if limit <= 0 {
		limit = entities.HistoryCap
	}

	if s.archived {
		entries, err := s.archive.Recent(ctx, limit)
		if err != nil {
			return nil, types.WrapError(types.ErrStorageError, "failed to read round archive", err)
		}
		return entries, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	history := s.state.History
	if limit < len(history) {
		history = history[:limit]
	}
	return append([]entities.HistoryEntry(nil), history...), nil
}

// Close flushes the profile and releases the stores
func (s *Service) Close(ctx context.Context) error {
	var errs []error
	if err := s.Save(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := s.archive.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing archive: %w", err))
	}
	if err := s.repo.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing profile store: %w", err))
	}
	return errors.Join(errs...)
}
