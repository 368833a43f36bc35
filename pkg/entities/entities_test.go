package entities

import (
	"fmt"
	"testing"
	"time"

	"github.com/fadedpez/neonroyal/pkg/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardValues(t *testing.T) {
	testCases := []struct {
		rank      Rank
		blackjack int
		high      int
	}{
		{Ace, 11, 14},
		{Two, 2, 2},
		{Nine, 9, 9},
		{Ten, 10, 10},
		{Jack, 10, 11},
		{Queen, 10, 12},
		{King, 10, 13},
	}

	for _, tc := range testCases {
		t.Run(string(tc.rank), func(t *testing.T) {
			card := NewCard(Spades, tc.rank)
			assert.Equal(t, tc.blackjack, card.BlackjackValue())
			assert.Equal(t, tc.high, card.HighValue())
		})
	}

	assert.True(t, NewCard(Hearts, Two).IsRed())
	assert.False(t, NewCard(Clubs, Two).IsRed())
	assert.Equal(t, "Q of DIAMONDS", NewCard(Diamonds, Queen).String())
}

func TestDeck(t *testing.T) {
	deck := NewShuffledDeck(rng.NewSeeded(11))
	require.Equal(t, 52, deck.Remaining())

	seen := make(map[string]bool)
	for deck.Remaining() > 0 {
		seen[deck.Draw().String()] = true
	}
	assert.Len(t, seen, 52, "every card should appear exactly once")
	assert.Nil(t, deck.Draw(), "empty deck should draw nil")
}

func TestRandomCard(t *testing.T) {
	card := RandomCard(rng.NewSequence(rng.ForIndex(2, 4), rng.ForIndex(0, 13)))
	assert.Equal(t, Clubs, card.Suit)
	assert.Equal(t, Ace, card.Rank)
}

func TestClassifyPayout(t *testing.T) {
	assert.Equal(t, OutcomeWin, ClassifyPayout(10, 20))
	assert.Equal(t, OutcomePush, ClassifyPayout(10, 10))
	assert.Equal(t, OutcomeLoss, ClassifyPayout(10, 5))
	assert.Equal(t, OutcomeLoss, ClassifyPayout(10, 0))
}

func TestPushHistoryIsBounded(t *testing.T) {
	ledger := NewPlayerLedger()
	for i := 0; i < HistoryCap+5; i++ {
		ledger.PushHistory(HistoryEntry{ID: fmt.Sprint(i), Game: GameSlots, Outcome: OutcomeLoss})
	}

	require.Len(t, ledger.History, HistoryCap)
	assert.Equal(t, fmt.Sprint(HistoryCap+4), ledger.History[0].ID, "newest entry should be first")
	assert.Equal(t, "5", ledger.History[HistoryCap-1].ID, "oldest entries should be evicted")
}

func TestCloneIsDeep(t *testing.T) {
	ledger := NewPlayerLedger()
	ledger.PushHistory(HistoryEntry{ID: "a", Game: GameSlots, Outcome: OutcomeWin})

	clone := ledger.Clone()
	clone.OwnedItems[0] = "theme_pink"
	clone.History[0].ID = "b"

	assert.Equal(t, DefaultTheme, ledger.OwnedItems[0])
	assert.Equal(t, "a", ledger.History[0].ID)
}

func TestValidate(t *testing.T) {
	kinds := map[ItemID]ItemKind{
		DefaultTheme: KindTheme,
		"theme_pink": KindTheme,
		"acc_dice":   KindAccessory,
	}
	kindOf := func(id ItemID) (ItemKind, bool) {
		kind, ok := kinds[id]
		return kind, ok
	}

	testCases := []struct {
		name    string
		mutate  func(*PlayerLedger)
		wantErr bool
	}{
		{"Fresh profile", func(*PlayerLedger) {}, false},
		{"Owned accessory equipped", func(p *PlayerLedger) {
			p.OwnedItems = append(p.OwnedItems, "acc_dice")
			p.EquippedAccessory = "acc_dice"
		}, false},
		{"Negative balance", func(p *PlayerLedger) { p.Balance = -1 }, true},
		{"Zero bet", func(p *PlayerLedger) { p.CurrentBet = 0 }, true},
		{"Default theme missing", func(p *PlayerLedger) {
			p.OwnedItems = []ItemID{"theme_pink"}
			p.EquippedTheme = "theme_pink"
		}, true},
		{"Unowned theme equipped", func(p *PlayerLedger) { p.EquippedTheme = "theme_pink" }, true},
		{"Accessory in theme slot", func(p *PlayerLedger) {
			p.OwnedItems = append(p.OwnedItems, "acc_dice")
			p.EquippedTheme = "acc_dice"
		}, true},
		{"Unknown item owned", func(p *PlayerLedger) { p.OwnedItems = append(p.OwnedItems, "acc_unicorn") }, true},
		{"Malformed history", func(p *PlayerLedger) {
			p.History = []HistoryEntry{{ID: "x", Game: "POKER", Outcome: OutcomeWin, Timestamp: time.Now()}}
		}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ledger := NewPlayerLedger()
			tc.mutate(ledger)
			err := ledger.Validate(kindOf)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
