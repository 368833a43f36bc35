package entities

import (
	"errors"
	"fmt"
	"time"
)

const (
	InitialBalance = 1000
	DefaultBet     = 10
	HistoryCap     = 50
)

// TableStakes are the bet sizes a player can select
var TableStakes = []int64{1, 5, 10, 25, 100, 500}

// HistoryEntry is the immutable record of one settled round. Amount is the
// magnitude of the net balance change.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Game      GameType  `json:"game"`
	Amount    int64     `json:"amount"`
	Outcome   Outcome   `json:"outcome"`
	Narration string    `json:"narration,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// PlayerLedger is the full persisted state of the player profile
type PlayerLedger struct {
	Balance           int64          `json:"balance"`
	CurrentBet        int64          `json:"current_bet"`
	History           []HistoryEntry `json:"history"`
	OwnedItems        []ItemID       `json:"owned_items"`
	EquippedTheme     ItemID         `json:"equipped_theme"`
	EquippedAccessory ItemID         `json:"equipped_accessory,omitempty"`
	LastDailyClaim    time.Time      `json:"last_daily_claim"`
	LastWeeklyClaim   time.Time      `json:"last_weekly_claim"`
}

// NewPlayerLedger returns the state of a brand new profile
func NewPlayerLedger() *PlayerLedger {
	return &PlayerLedger{
		Balance:       InitialBalance,
		CurrentBet:    DefaultBet,
		History:       make([]HistoryEntry, 0, HistoryCap),
		OwnedItems:    []ItemID{DefaultTheme},
		EquippedTheme: DefaultTheme,
	}
}

// Owns reports whether the item is in the owned set
func (p *PlayerLedger) Owns(id ItemID) bool {
	for _, owned := range p.OwnedItems {
		if owned == id {
			return true
		}
	}
	return false
}

// PushHistory prepends an entry and drops the oldest beyond HistoryCap
func (p *PlayerLedger) PushHistory(entry HistoryEntry) {
	history := make([]HistoryEntry, 0, HistoryCap)
	history = append(history, entry)
	history = append(history, p.History...)
	if len(history) > HistoryCap {
		history = history[:HistoryCap]
	}
	p.History = history
}

// Clone returns a deep copy
func (p *PlayerLedger) Clone() *PlayerLedger {
	clone := *p
	clone.History = append([]HistoryEntry(nil), p.History...)
	clone.OwnedItems = append([]ItemID(nil), p.OwnedItems...)
	return &clone
}

// Validate checks the invariants a loaded profile must satisfy. kindOf
// resolves an item's slot from the catalog and reports false for unknown ids.
func (p *PlayerLedger) Validate(kindOf func(ItemID) (ItemKind, bool)) error {
	var errs []error

	if p.Balance < 0 {
		errs = append(errs, fmt.Errorf("negative balance %d", p.Balance))
	}
	if p.CurrentBet <= 0 {
		errs = append(errs, fmt.Errorf("non-positive bet %d", p.CurrentBet))
	}
	if !p.Owns(DefaultTheme) {
		errs = append(errs, errors.New("default theme not owned"))
	}
	for _, id := range p.OwnedItems {
		if _, ok := kindOf(id); !ok {
			errs = append(errs, fmt.Errorf("unknown owned item %q", id))
		}
	}

	if kind, ok := kindOf(p.EquippedTheme); !ok || kind != KindTheme {
		errs = append(errs, fmt.Errorf("equipped theme %q is not a theme", p.EquippedTheme))
	} else if !p.Owns(p.EquippedTheme) {
		errs = append(errs, fmt.Errorf("equipped theme %q not owned", p.EquippedTheme))
	}

	if p.EquippedAccessory != "" {
		if kind, ok := kindOf(p.EquippedAccessory); !ok || kind != KindAccessory {
			errs = append(errs, fmt.Errorf("equipped accessory %q is not an accessory", p.EquippedAccessory))
		} else if !p.Owns(p.EquippedAccessory) {
			errs = append(errs, fmt.Errorf("equipped accessory %q not owned", p.EquippedAccessory))
		}
	}

	if len(p.History) > HistoryCap {
		errs = append(errs, fmt.Errorf("history holds %d entries, cap is %d", len(p.History), HistoryCap))
	}
	for i, entry := range p.History {
		if !entry.Game.Valid() || !entry.Outcome.Valid() || entry.Amount < 0 {
			errs = append(errs, fmt.Errorf("history entry %d is malformed", i))
		}
	}

	return errors.Join(errs...)
}
