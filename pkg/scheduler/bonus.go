package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fadedpez/neonroyal/pkg/bonus"
	"github.com/fadedpez/neonroyal/pkg/clock"
	"github.com/fadedpez/neonroyal/pkg/entities"
	"github.com/fadedpez/neonroyal/pkg/services/ledger"
)

// Publisher delivers announcements to the ledger's listeners
type Publisher interface {
	Announce(kind ledger.EventKind, narration string, at time.Time)
}

// BonusWatcher recomputes the TimeContext on every tick and announces when
// the day's bonus or the hour's modifiers change
type BonusWatcher struct {
	mu    sync.Mutex
	clock clock.Clock
	pub   Publisher
	last  *entities.TimeContext
}

func NewBonusWatcher(clk clock.Clock, pub Publisher) *BonusWatcher {
	return &BonusWatcher{clock: clk, pub: pub}
}

// Check publishes EventBonusChanged if the bonus state differs from the
// previous check. The first check always announces.
func (w *BonusWatcher) Check(ctx context.Context) error {
	now := w.clock.Now()
	tc := bonus.Resolve(now)

	w.mu.Lock()
	changed := w.last == nil ||
		w.last.ActiveBonus != tc.ActiveBonus ||
		w.last.IsGoldenHour != tc.IsGoldenHour ||
		w.last.IsGraveyard != tc.IsGraveyard
	w.last = &tc
	w.mu.Unlock()

	if !changed {
		return nil
	}

	w.pub.Announce(ledger.EventBonusChanged, Announcement(tc), now)
	return nil
}

// Current returns the state seen by the last check
func (w *BonusWatcher) Current() (entities.TimeContext, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.last == nil {
		return entities.TimeContext{}, false
	}
	return *w.last, true
}

// Announcement describes tc for the dealer log
func Announcement(tc entities.TimeContext) string {
	parts := []string{fmt.Sprintf("%s special: %s.", tc.Weekday, tc.ActiveBonus)}
	if tc.IsGoldenHour {
		parts = append(parts, "Golden hour! Winnings pay 1.5x.")
	}
	if tc.IsGraveyard {
		parts = append(parts, "Graveyard shift. The floor is quiet.")
	}
	return strings.Join(parts, " ")
}
