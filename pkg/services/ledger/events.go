package ledger

import (
	"time"

	"github.com/fadedpez/neonroyal/pkg/entities"
)

// EventKind names what changed in the ledger
type EventKind string

const (
	EventWagerPlaced   EventKind = "WAGER_PLACED"
	EventRoundSettled  EventKind = "ROUND_SETTLED"
	EventBonusClaimed  EventKind = "BONUS_CLAIMED"
	EventItemPurchased EventKind = "ITEM_PURCHASED"
	EventItemEquipped  EventKind = "ITEM_EQUIPPED"
	EventBetChanged    EventKind = "BET_CHANGED"
	EventLedgerReset   EventKind = "LEDGER_RESET"
	EventBonusChanged  EventKind = "BONUS_CHANGED"
)

// Event is published after a ledger mutation has been committed. Entry is set
// only for settled rounds.
type Event struct {
	Kind      EventKind
	Narration string
	Balance   int64
	Entry     *entities.HistoryEntry
	At        time.Time
}

// Listener receives events synchronously, in the order they were committed
type Listener func(Event)

// Subscribe registers l for every subsequent event
func (s *Service) Subscribe(l Listener) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Publish delivers ev to every listener. The ledger calls it itself after
// each mutation; other components use it for announcements such as a change
// of the active bonus.
func (s *Service) Publish(ev Event) {
	s.listenersMu.RLock()
	listeners := append([]Listener(nil), s.listeners...)
	s.listenersMu.RUnlock()

	for _, l := range listeners {
		l(ev)
	}
}

// Announce publishes an event that did not mutate the ledger, stamped with
// the current balance
func (s *Service) Announce(kind EventKind, narration string, at time.Time) {
	s.mu.Lock()
	ev := s.event(kind, narration, at)
	s.mu.Unlock()

	s.Publish(ev)
}
